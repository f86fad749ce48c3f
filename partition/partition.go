// Package partition cross-products a ViewGraph segment's source, target,
// flow and time partitions into the set of concrete edges the segment
// expands to.
package partition

import (
	"github.com/viant/weaver/sdd"
	"github.com/viant/weaver/viewgraph"
)

// ConcreteEdge is one (src_sub, tgt_sub, flow_label, time_label) tuple
// produced by crossing a segment's partitions, carrying the ordering indices
// the compiler needs to assign deterministic edge ids.
type ConcreteEdge struct {
	BundleOrigin int
	Segment      int

	SourceID          sdd.NodeID
	SourceSub         string // "" when unpartitioned or Elsewhere
	SourceIsElsewhere bool
	SourceSubIndex    int

	TargetID          sdd.NodeID
	TargetSub         string
	TargetIsElsewhere bool
	TargetSubIndex    int

	FlowLabel string
	FlowIndex int

	TimeLabel string
	TimeIndex int

	FlowSelectionAttr   string
	FlowSelectionValues []string
}

// subAxis describes one endpoint's iteration over its partition groups (or a
// single empty-label identity, or the Elsewhere identity, when there is no
// partition to expand).
type subAxis struct {
	labels      []string
	isElsewhere bool
}

func axisFor(ep viewgraph.NodeEndpoint) subAxis {
	if ep.ID.IsElsewhere() {
		return subAxis{labels: []string{""}, isElsewhere: true}
	}
	if ep.Partition == nil {
		return subAxis{labels: []string{""}}
	}
	return subAxis{labels: ep.Partition.Labels()}
}

func axisLabelFor(label string, elsewhere bool) string {
	if elsewhere {
		return ""
	}
	return label
}

// Cross expands seg across its source/target partitions (from the SDD nodes
// themselves), its effective flow partition (seg.FlowPartition, falling back
// to defaultFlow) and the time partition, in the deterministic order spec
// §4.3 requires: (src_sub, tgt_sub, flow, time) nested, outermost-first.
func Cross(seg viewgraph.Bundle, defaultFlow, defaultTime *sdd.Partition) []ConcreteEdge {
	flowPartition := seg.FlowPartition
	if flowPartition == nil {
		flowPartition = defaultFlow
	}

	srcAxis := axisFor(seg.Source)
	tgtAxis := axisFor(seg.Target)
	flowLabels := labelsOrWildcard(flowPartition)
	timeLabels := labelsOrWildcard(defaultTime)

	var edges []ConcreteEdge
	for si, srcLabel := range srcAxis.labels {
		for ti, tgtLabel := range tgtAxis.labels {
			for fi, flowLabel := range flowLabels {
				for tmi, timeLabel := range timeLabels {
					edges = append(edges, ConcreteEdge{
						BundleOrigin: seg.BundleOrigin,
						Segment:      seg.Segment,

						SourceID:          seg.Source.ID,
						SourceSub:         axisLabelFor(srcLabel, srcAxis.isElsewhere),
						SourceIsElsewhere: srcAxis.isElsewhere,
						SourceSubIndex:    si,

						TargetID:          seg.Target.ID,
						TargetSub:         axisLabelFor(tgtLabel, tgtAxis.isElsewhere),
						TargetIsElsewhere: tgtAxis.isElsewhere,
						TargetSubIndex:    ti,

						FlowLabel: flowLabel,
						FlowIndex: fi,

						TimeLabel: timeLabel,
						TimeIndex: tmi,

						FlowSelectionAttr:   seg.FlowSelectionAttr,
						FlowSelectionValues: seg.FlowSelectionValues,
					})
				}
			}
		}
	}
	return edges
}

func labelsOrWildcard(p *sdd.Partition) []string {
	labels := p.Labels()
	if len(labels) == 0 {
		return []string{wspecWildcard}
	}
	return labels
}

// wspecWildcard mirrors wspec.Wildcard without importing wspec, keeping this
// package dependency-free of the compiled output model.
const wspecWildcard = "*"

// SubNodeID builds the "nodeId^label" convention for a partitioned sub-node,
// or reuses the node id verbatim when unpartitioned / Elsewhere.
func SubNodeID(id sdd.NodeID, sub string) string {
	if sub == "" {
		return string(id)
	}
	return string(id) + "^" + sub
}
