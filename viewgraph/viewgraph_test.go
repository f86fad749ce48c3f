package viewgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/weaver/sdd"
)

func TestExpandWaypointChain(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{{ID: "a"}, {ID: "b"}},
		Waypoints:     []*sdd.Waypoint{{ID: "w1"}, {ID: "w2"}},
		Bundles: []*sdd.Bundle{
			{Origin: 0, Source: "a", Target: "b", Waypoints: []sdd.NodeID{"w1", "w2"}},
		},
	}

	segs, err := Expand(def)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, sdd.NodeID("a"), segs[0].Source.ID)
	assert.Equal(t, sdd.NodeID("w1"), segs[0].Target.ID)
	assert.Equal(t, sdd.NodeID("w1"), segs[1].Source.ID)
	assert.Equal(t, sdd.NodeID("w2"), segs[1].Target.ID)
	assert.Equal(t, sdd.NodeID("w2"), segs[2].Source.ID)
	assert.Equal(t, sdd.NodeID("b"), segs[2].Target.ID)

	for _, s := range segs {
		assert.Equal(t, 0, s.BundleOrigin)
	}
	assert.Equal(t, []int{0, 1, 2}, []int{segs[0].Segment, segs[1].Segment, segs[2].Segment})
}

func TestExpandElsewhereWithWaypoint(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{{ID: "src"}},
		Waypoints:     []*sdd.Waypoint{{ID: "w"}},
		Bundles: []*sdd.Bundle{
			{Origin: 0, Source: "src", Target: sdd.Elsewhere, Waypoints: []sdd.NodeID{"w"}},
		},
	}

	segs, err := Expand(def)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, sdd.NodeID("src"), segs[0].Source.ID)
	assert.Equal(t, sdd.NodeID("w"), segs[0].Target.ID)
	assert.Equal(t, sdd.NodeID("w"), segs[1].Source.ID)
	assert.True(t, segs[1].Target.ID.IsElsewhere())
}

func TestExpandCyclicSegment(t *testing.T) {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{{ID: "a"}},
		Bundles: []*sdd.Bundle{
			{Origin: 0, Source: "a", Target: "a"},
		},
	}

	_, err := Expand(def)
	assert.EqualError(t, err, `viewgraph: bundle 0 segment 0 is cyclic: "a" immediately follows itself`)
}
