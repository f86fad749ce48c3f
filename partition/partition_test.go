package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/weaver/sdd"
	"github.com/viant/weaver/viewgraph"
)

func weekdayPartition() *sdd.Partition {
	return &sdd.Partition{
		Dimension: "weekday",
		Groups: []sdd.PartitionGroup{
			{Label: "weekday"},
			{Label: "weekend"},
		},
	}
}

func TestCrossUnpartitioned(t *testing.T) {
	seg := viewgraph.Bundle{
		Source: viewgraph.NodeEndpoint{ID: "a"},
		Target: viewgraph.NodeEndpoint{ID: "b"},
	}

	edges := Cross(seg, nil, nil)
	assert.Len(t, edges, 1)
	assert.Equal(t, "", edges[0].SourceSub)
	assert.Equal(t, "*", edges[0].FlowLabel)
	assert.Equal(t, "*", edges[0].TimeLabel)
	assert.Equal(t, "a", SubNodeID(edges[0].SourceID, edges[0].SourceSub))
}

func TestCrossTargetPartition(t *testing.T) {
	seg := viewgraph.Bundle{
		Source: viewgraph.NodeEndpoint{ID: "i"},
		Target: viewgraph.NodeEndpoint{ID: "j", Partition: weekdayPartition()},
	}

	edges := Cross(seg, nil, nil)
	assert.Len(t, edges, 2)
	assert.Equal(t, "weekday", edges[0].TargetSub)
	assert.Equal(t, "j^weekday", SubNodeID(edges[0].TargetID, edges[0].TargetSub))
	assert.Equal(t, "weekend", edges[1].TargetSub)
	assert.Equal(t, "j^weekend", SubNodeID(edges[1].TargetID, edges[1].TargetSub))
}

func TestCrossElsewhereCollapses(t *testing.T) {
	seg := viewgraph.Bundle{
		Source: viewgraph.NodeEndpoint{ID: sdd.Elsewhere},
		Target: viewgraph.NodeEndpoint{ID: "a", Partition: weekdayPartition()},
	}

	edges := Cross(seg, nil, nil)
	// Elsewhere never expands, target partition still does.
	assert.Len(t, edges, 2)
	for _, e := range edges {
		assert.True(t, e.SourceIsElsewhere)
		assert.Equal(t, "", e.SourceSub)
	}
}

func TestCrossFlowPartitionOverride(t *testing.T) {
	flowPartition := &sdd.Partition{Dimension: "material", Groups: []sdd.PartitionGroup{{Label: "m1"}, {Label: "m2"}}}
	seg := viewgraph.Bundle{
		Source:        viewgraph.NodeEndpoint{ID: "a"},
		Target:        viewgraph.NodeEndpoint{ID: "b"},
		FlowPartition: flowPartition,
	}

	edges := Cross(seg, nil, nil)
	assert.Len(t, edges, 2)
	assert.Equal(t, "m1", edges[0].FlowLabel)
	assert.Equal(t, "m2", edges[1].FlowLabel)
}
