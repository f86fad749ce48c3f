// Package compiler assembles an SDD Definition into a WSpec: it expands
// waypoint chains, cross-products partitions into concrete edges, merges
// duplicate edges, and builds the routing decision tree that dispatches flow
// rows to those edges at execution time.
package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/weaver/partition"
	"github.com/viant/weaver/router"
	"github.com/viant/weaver/sdd"
	"github.com/viant/weaver/viewgraph"
	"github.com/viant/weaver/wspec"
)

// Compile validates def and produces its WSpec. A non-nil error means no
// WSpec is produced; the SDD must be fixed and recompiled.
func Compile(def *sdd.Definition, opts ...Option) (*wspec.WSpec, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}

	segments, err := viewgraph.Expand(def)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}

	meta := metaIndex(def)

	segsByOrigin := map[int][]viewgraph.Bundle{}
	var origins []int
	for _, seg := range segments {
		if _, ok := segsByOrigin[seg.BundleOrigin]; !ok {
			origins = append(origins, seg.BundleOrigin)
		}
		segsByOrigin[seg.BundleOrigin] = append(segsByOrigin[seg.BundleOrigin], seg)
	}
	sort.Ints(origins)

	bundleByOrigin := map[int]*sdd.Bundle{}
	for _, b := range def.Bundles {
		bundleByOrigin[b.Origin] = b
	}

	b := &builder{
		def:         def,
		meta:        meta,
		nodes:       map[string]*wspec.NodeSpec{},
		groupByNode: map[sdd.NodeID]*wspec.GroupSpec{},
		sigToID:     map[string]int{},
		segEdgeID:   map[segKey]int{},
	}

	for _, origin := range origins {
		segs := segsByOrigin[origin]
		for segIdx, seg := range segs {
			for _, ce := range partition.Cross(seg, def.DefaultFlowPartition, def.TimePartition) {
				b.addConcreteEdge(origin, segIdx, ce)
			}
		}
	}

	var rules []router.Rule
	var attrOrder []string
	seenAttr := map[string]bool{}
	addAttr := func(a string) {
		if a == "" || seenAttr[a] {
			return
		}
		seenAttr[a] = true
		attrOrder = append(attrOrder, a)
	}
	addAttr("source")
	addAttr("target")
	for _, origin := range origins {
		if bd := bundleByOrigin[origin]; bd.HasFlowSelection() {
			addAttr(bd.FlowSelectionAttr)
		}
	}
	for _, origin := range origins {
		bd := bundleByOrigin[origin]
		if p := def.PartitionOf(bd.Source); p != nil && !bd.Source.IsElsewhere() {
			addAttr(p.Dimension)
		}
		if p := def.PartitionOf(bd.Target); p != nil && !bd.Target.IsElsewhere() {
			addAttr(p.Dimension)
		}
		if p := effectiveFlowPartition(def, bd); p != nil {
			addAttr(p.Dimension)
		}
		if def.TimePartition != nil {
			addAttr(def.TimePartition.Dimension)
		}
	}

	for _, origin := range origins {
		bd := bundleByOrigin[origin]
		segs := segsByOrigin[origin]
		rules = append(rules, b.buildRule(bd, segs))
	}

	tree := router.Build(attrOrder, rules)

	wOrdering := make([][][]string, len(def.Ordering))
	for li, layer := range def.Ordering {
		wOrdering[li] = make([][]string, len(layer))
		for bi, band := range layer {
			var ids []string
			for _, id := range band {
				ids = append(ids, b.expandNodeID(id)...)
			}
			wOrdering[li][bi] = ids
		}
	}

	out := &wspec.WSpec{
		Version:  wspec.Version,
		Nodes:    b.nodes,
		Groups:   b.groups,
		Edges:    b.edges,
		Ordering: wOrdering,
		Measures: cfg.measures,
		Display:  wspec.DisplaySpec{LinkWidth: cfg.linkWidth, LinkColor: cfg.linkColor},
		Routing:  tree,
	}

	if cfg.writer != nil {
		if err := cfg.writer.Store(cfg.writerCtx, out); err != nil {
			return nil, fmt.Errorf("compiler: document writer: %w", err)
		}
	}

	return out, nil
}

func effectiveFlowPartition(def *sdd.Definition, b *sdd.Bundle) *sdd.Partition {
	if b.FlowPartition != nil {
		return b.FlowPartition
	}
	return def.DefaultFlowPartition
}

// segKey identifies one segment's concrete-edge slot by the raw sub/flow/time
// labels it was crossed with, so router rule construction can look back up
// the final (possibly merged) edge id for an exact combination.
type segKey struct {
	origin, segment        int
	srcSub, tgtSub         string
	flowLabel, timeLabel   string
}

type builder struct {
	def         *sdd.Definition
	meta        map[sdd.NodeID]nodeMeta
	nodes       map[string]*wspec.NodeSpec
	groups      []*wspec.GroupSpec
	groupByNode map[sdd.NodeID]*wspec.GroupSpec
	edges       []*wspec.EdgeSpec
	sigToID     map[string]int
	segEdgeID   map[segKey]int
}

func (b *builder) ensureNode(id sdd.NodeID, sub string) string {
	nodeID := partition.SubNodeID(id, sub)
	if _, ok := b.nodes[nodeID]; ok {
		return nodeID
	}
	m := b.meta[id]
	title := m.title
	group := ""
	if m.partition != nil {
		group = string(id)
		gs, ok := b.groupByNode[id]
		if !ok {
			gs = &wspec.GroupSpec{ID: string(id), Title: m.title}
			b.groupByNode[id] = gs
			b.groups = append(b.groups, gs)
		}
		gs.Nodes = append(gs.Nodes, nodeID)
		if sub != "" {
			title = fmt.Sprintf("%s (%s)", m.title, sub)
		}
	}
	b.nodes[nodeID] = &wspec.NodeSpec{
		ID:        nodeID,
		Kind:      wspec.NodeKind(m.kind),
		Title:     title,
		Direction: wspec.Direction(m.direction),
		Hidden:    m.kind == sdd.KindWaypoint,
		Style:     m.style,
		Group:     group,
	}
	return nodeID
}

// expandNodeID rewrites one SDD ordering entry into its WSpec sub-node ids,
// in partition-group declaration order, or a single entry when unpartitioned.
func (b *builder) expandNodeID(id sdd.NodeID) []string {
	m := b.meta[id]
	if m.partition == nil {
		return []string{string(id)}
	}
	out := make([]string, 0, len(m.partition.Groups))
	for _, g := range m.partition.Groups {
		out = append(out, partition.SubNodeID(id, g.Label))
	}
	return out
}

func edgeSignature(src, tgt *string, typ, tm string) string {
	s, t := "\x00", "\x00"
	if src != nil {
		s = *src
	}
	if tgt != nil {
		t = *tgt
	}
	return strings.Join([]string{s, t, typ, tm}, "\x1f")
}

func (b *builder) addConcreteEdge(origin, segIdx int, ce partition.ConcreteEdge) {
	var srcPtr, tgtPtr *string
	if !ce.SourceIsElsewhere {
		id := b.ensureNode(ce.SourceID, ce.SourceSub)
		srcPtr = &id
	}
	if !ce.TargetIsElsewhere {
		id := b.ensureNode(ce.TargetID, ce.TargetSub)
		tgtPtr = &id
	}

	sig := edgeSignature(srcPtr, tgtPtr, ce.FlowLabel, ce.TimeLabel)
	id, exists := b.sigToID[sig]
	if !exists {
		id = len(b.edges)
		b.sigToID[sig] = id
		b.edges = append(b.edges, &wspec.EdgeSpec{
			ID:        id,
			Source:    srcPtr,
			Target:    tgtPtr,
			Type:      ce.FlowLabel,
			Time:      ce.TimeLabel,
			BundleIDs: []int{origin},
		})
	} else if !containsInt(b.edges[id].BundleIDs, origin) {
		b.edges[id].BundleIDs = append(b.edges[id].BundleIDs, origin)
	}

	b.segEdgeID[segKey{origin, segIdx, ce.SourceSub, ce.TargetSub, ce.FlowLabel, ce.TimeLabel}] = id
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// buildRule assembles the router.Rule describing how rows are dispatched to
// this bundle's (possibly several, if waypointed) segment edges.
func (b *builder) buildRule(bd *sdd.Bundle, segs []viewgraph.Bundle) router.Rule {
	def := b.def
	sourceElsewhere := bd.Source.IsElsewhere()
	targetElsewhere := bd.Target.IsElsewhere()

	gates := map[string]*router.Gate{}
	if sourceElsewhere {
		gates["source"] = &router.Gate{Exclude: def.ProcessesOf(bd.Target)}
	} else {
		gates["source"] = &router.Gate{Values: def.ProcessesOf(bd.Source)}
	}
	if targetElsewhere {
		gates["target"] = &router.Gate{Exclude: def.ProcessesOf(bd.Source)}
	} else {
		gates["target"] = &router.Gate{Values: def.ProcessesOf(bd.Target)}
	}
	if bd.HasFlowSelection() {
		gates[bd.FlowSelectionAttr] = &router.Gate{Values: bd.FlowSelectionValues}
	}

	sourcePartition := def.PartitionOf(bd.Source)
	if sourceElsewhere {
		sourcePartition = nil
	}
	targetPartition := def.PartitionOf(bd.Target)
	if targetElsewhere {
		targetPartition = nil
	}
	flowPartition := effectiveFlowPartition(def, bd)
	timePartition := def.TimePartition

	var relevantDims []string
	type axis struct {
		attr   string
		values []valueLabel
	}
	var axes []axis
	if sourcePartition != nil {
		relevantDims = append(relevantDims, sourcePartition.Dimension)
		gates[sourcePartition.Dimension] = &router.Gate{Values: allValues(sourcePartition)}
		axes = append(axes, axis{attr: sourcePartition.Dimension, values: valueLabels(sourcePartition)})
	}
	if targetPartition != nil {
		relevantDims = append(relevantDims, targetPartition.Dimension)
		gates[targetPartition.Dimension] = &router.Gate{Values: allValues(targetPartition)}
		axes = append(axes, axis{attr: targetPartition.Dimension, values: valueLabels(targetPartition)})
	}
	if flowPartition != nil {
		relevantDims = append(relevantDims, flowPartition.Dimension)
		gates[flowPartition.Dimension] = &router.Gate{Values: allValues(flowPartition)}
		axes = append(axes, axis{attr: flowPartition.Dimension, values: valueLabels(flowPartition)})
	}
	if timePartition != nil {
		relevantDims = append(relevantDims, timePartition.Dimension)
		gates[timePartition.Dimension] = &router.Gate{Values: allValues(timePartition)}
		axes = append(axes, axis{attr: timePartition.Dimension, values: valueLabels(timePartition)})
	}

	edgeTable := map[string][]int{}
	resolved := map[string]string{}

	var walk func(i int)
	walk = func(i int) {
		if i == len(axes) {
			var ids []int
			for segIdx := range segs {
				isFirst := segIdx == 0
				isLast := segIdx == len(segs)-1
				srcSub, tgtSub := "", ""
				if isFirst && sourcePartition != nil {
					srcSub = resolved[sourcePartition.Dimension]
					if label, ok := sourcePartition.LabelFor(srcSub); ok {
						srcSub = label
					}
				}
				if isLast && targetPartition != nil {
					tgtSub = resolved[targetPartition.Dimension]
					if label, ok := targetPartition.LabelFor(tgtSub); ok {
						tgtSub = label
					}
				}
				flowLabel := wspec.Wildcard
				if flowPartition != nil {
					if label, ok := flowPartition.LabelFor(resolved[flowPartition.Dimension]); ok {
						flowLabel = label
					}
				}
				timeLabel := wspec.Wildcard
				if timePartition != nil {
					if label, ok := timePartition.LabelFor(resolved[timePartition.Dimension]); ok {
						timeLabel = label
					}
				}
				if id, ok := b.segEdgeID[segKey{bd.Origin, segIdx, srcSub, tgtSub, flowLabel, timeLabel}]; ok {
					ids = append(ids, id)
				}
			}
			if len(ids) > 0 {
				edgeTable[router.Key(relevantDims, resolved)] = ids
			}
			return
		}
		a := axes[i]
		for _, vl := range a.values {
			resolved[a.attr] = vl.value
			walk(i + 1)
			delete(resolved, a.attr)
		}
	}
	walk(0)

	return router.Rule{
		BundleOrigin: bd.Origin,
		Elsewhere:    sourceElsewhere || targetElsewhere,
		Gates:        gates,
		RelevantDims: relevantDims,
		EdgeTable:    edgeTable,
	}
}

type valueLabel struct {
	value string
	label string
}

func valueLabels(p *sdd.Partition) []valueLabel {
	var out []valueLabel
	for _, g := range p.Groups {
		for _, v := range g.Values {
			out = append(out, valueLabel{value: v, label: g.Label})
		}
	}
	return out
}

func allValues(p *sdd.Partition) []string {
	var out []string
	for _, g := range p.Groups {
		out = append(out, g.Values...)
	}
	return out
}
