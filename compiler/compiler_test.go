package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/weaver/router"
	"github.com/viant/weaver/sdd"
	"github.com/viant/weaver/wspec"
)

type recordingWriter struct {
	stored *wspec.WSpec
}

func (w *recordingWriter) Store(_ context.Context, spec *wspec.WSpec) error {
	w.stored = spec
	return nil
}

func TestCompileTwoNodeSingleAggregation(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{
			{ID: "a", Processes: []string{"a"}},
			{ID: "b", Processes: []string{"b"}},
		},
		Bundles:  []*sdd.Bundle{{Origin: 0, Source: "a", Target: "b"}},
		Ordering: sdd.Ordering{{{"a"}}, {{"b"}}},
	}

	w, err := Compile(def)
	require.NoError(t, err)

	assert.Equal(t, wspec.Version, w.Version)
	require.Len(t, w.Edges, 1)
	assert.Equal(t, "a", *w.Edges[0].Source)
	assert.Equal(t, "b", *w.Edges[0].Target)
	assert.Equal(t, wspec.Wildcard, w.Edges[0].Type)
	assert.Equal(t, wspec.Wildcard, w.Edges[0].Time)
	assert.Equal(t, []int{0}, w.Edges[0].BundleIDs)

	assert.Equal(t, []int{0}, router.Route(router.Row{"source": "a", "target": "b"}, w.Routing))
	assert.Nil(t, router.Route(router.Row{"source": "x", "target": "b"}, w.Routing))
}

func TestCompileElsewhereWithWaypoint(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{{ID: "a", Processes: []string{"a"}}},
		Waypoints:     []*sdd.Waypoint{{ID: "w"}},
		Bundles:       []*sdd.Bundle{{Origin: 0, Source: sdd.Elsewhere, Target: "a", Waypoints: []sdd.NodeID{"w"}}},
		Ordering:      sdd.Ordering{{{"w"}}, {{"a"}}},
	}

	w, err := Compile(def)
	require.NoError(t, err)
	require.Len(t, w.Edges, 2, "two segments: elsewhere->w, w->a")

	ids := router.Route(router.Row{"source": "x", "target": "a"}, w.Routing)
	assert.Len(t, ids, 2)

	assert.Nil(t, router.Route(router.Row{"source": "a", "target": "a"}, w.Routing), "recheck excludes a->a self loop")
}

func TestCompileTargetPartition(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{
			{ID: "i", Processes: []string{"i"}},
			{ID: "j", Processes: []string{"j"}, Partition: &sdd.Partition{
				Dimension: "weekday",
				Groups: []sdd.PartitionGroup{
					{Label: "weekday", Values: []string{"mon", "tue", "wed", "thu", "fri"}},
					{Label: "weekend", Values: []string{"sat", "sun"}},
				},
			}},
		},
		Bundles:  []*sdd.Bundle{{Origin: 0, Source: "i", Target: "j"}},
		Ordering: sdd.Ordering{{{"i"}}, {{"j"}}},
	}

	w, err := Compile(def)
	require.NoError(t, err)
	require.Len(t, w.Edges, 2)

	require.Len(t, w.Groups, 1)
	assert.Equal(t, "j", w.Groups[0].ID)
	assert.ElementsMatch(t, []string{"j^weekday", "j^weekend"}, w.Groups[0].Nodes)

	assert.Equal(t, []string{"i"}, w.Ordering[0][0])
	assert.ElementsMatch(t, []string{"j^weekday", "j^weekend"}, w.Ordering[1][0])

	idsMon := router.Route(router.Row{"source": "i", "target": "j", "weekday": "mon"}, w.Routing)
	idsSat := router.Route(router.Row{"source": "i", "target": "j", "weekday": "sat"}, w.Routing)
	require.Len(t, idsMon, 1)
	require.Len(t, idsSat, 1)
	assert.NotEqual(t, idsMon[0], idsSat[0])
}

func TestCompileFlowSelectionCatchAll(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{{ID: "src", Processes: []string{"src"}}},
		Waypoints:     []*sdd.Waypoint{{ID: "w"}},
		Bundles: []*sdd.Bundle{
			{Origin: 0, Source: "src", Target: sdd.Elsewhere, Waypoints: []sdd.NodeID{"w"}, FlowSelectionAttr: "material", FlowSelectionValues: []string{"m1"}},
			{Origin: 1, Source: "src", Target: sdd.Elsewhere},
		},
		Ordering: sdd.Ordering{{{"src"}}, {{"w"}}},
	}

	w, err := Compile(def)
	require.NoError(t, err)

	m1 := router.Route(router.Row{"source": "src", "target": "q", "material": "m1"}, w.Routing)
	m2 := router.Route(router.Row{"source": "src", "target": "q", "material": "m2"}, w.Routing)
	require.Len(t, m1, 2, "routed through the waypoint bundle")
	require.Len(t, m2, 1, "falls back to the generic src->elsewhere bundle")
}

func TestCompileWithDocumentWriterStoresResult(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{
			{ID: "a", Processes: []string{"a"}},
			{ID: "b", Processes: []string{"b"}},
		},
		Bundles:  []*sdd.Bundle{{Origin: 0, Source: "a", Target: "b"}},
		Ordering: sdd.Ordering{{{"a"}}, {{"b"}}},
	}

	writer := &recordingWriter{}
	w, err := Compile(def, WithDocumentWriter(context.Background(), writer))
	require.NoError(t, err)
	require.NotNil(t, writer.stored)
	assert.Same(t, w, writer.stored)
}

func TestCompileInvalidSDD(t *testing.T) {
	def := &sdd.Definition{
		Bundles: []*sdd.Bundle{{Origin: 0, Source: "missing", Target: "also-missing"}},
	}
	_, err := Compile(def)
	assert.Error(t, err)
}
