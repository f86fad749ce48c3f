// Package sdd defines the declarative Sankey Diagram Definition (SDD): the
// structural description of process groups, waypoints, bundles and ordering
// that the compiler turns into a WSpec.
package sdd

import "fmt"

// Direction is the horizontal placement of a node.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
)

// Elsewhere is the sentinel endpoint denoting flows leaving or entering the
// system boundary. It is a first-class value distinct from any node id, and
// only rendered as null at the WSpec document boundary.
const Elsewhere = NodeID("\x00elsewhere")

// NodeID identifies a node (process group or waypoint) declared in the SDD.
type NodeID string

// IsElsewhere reports whether id is the Elsewhere sentinel.
func (id NodeID) IsElsewhere() bool { return id == Elsewhere }

// PartitionGroup is one labelled group of values within a Partition. Values
// is the explicit, closed set of raw dimension values that belong to this
// group — partitions are membership sets, not arbitrary predicates, so that
// a compiled WSpec's routing tree can branch on them as plain data.
type PartitionGroup struct {
	Label  string   `json:"label" yaml:"label"`
	Values []string `json:"values" yaml:"values"`
}

// Partition is a dimension name plus an ordered list of labelled value groups.
type Partition struct {
	Dimension string           `json:"dimension" yaml:"dimension"`
	Groups    []PartitionGroup `json:"groups" yaml:"groups"`
}

// Labels returns the groups' labels in declaration order.
func (p *Partition) Labels() []string {
	if p == nil {
		return nil
	}
	labels := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		labels[i] = g.Label
	}
	return labels
}

// LabelFor returns the label of the first group whose Values contains value,
// or "", false if none match.
func (p *Partition) LabelFor(value string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, g := range p.Groups {
		for _, v := range g.Values {
			if v == value {
				return g.Label, true
			}
		}
	}
	return "", false
}

// Style is an open bag of front-end styling hints. This module never
// interprets it; it is carried through to the WSpec verbatim.
type Style map[string]string

// ProcessGroup is an SDD node that selects a set of raw process ids from the
// flow dataset, optionally partitioned into labelled sub-groups.
type ProcessGroup struct {
	ID        NodeID     `json:"id" yaml:"id"`
	Processes []string   `json:"processes" yaml:"processes"`
	Partition *Partition `json:"partition,omitempty" yaml:"partition,omitempty"`
	Direction Direction  `json:"direction,omitempty" yaml:"direction,omitempty"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Style     Style      `json:"style,omitempty" yaml:"style,omitempty"`
}

// Waypoint is a routing-only SDD node: it has no process selection.
type Waypoint struct {
	ID        NodeID     `json:"id" yaml:"id"`
	Partition *Partition `json:"partition,omitempty" yaml:"partition,omitempty"`
	Direction Direction  `json:"direction,omitempty" yaml:"direction,omitempty"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Style     Style      `json:"style,omitempty" yaml:"style,omitempty"`
}

// Bundle is a declared route of flows from one node to another, optionally
// through a chain of waypoints.
type Bundle struct {
	// Origin is a stable tie-break index assigned at SDD construction time
	// (declaration order), used deterministically by the router and the
	// edge-id ordering contract.
	Origin int `json:"origin" yaml:"origin"`

	Source NodeID `json:"source" yaml:"source"`
	Target NodeID `json:"target" yaml:"target"`

	// Waypoints is the ordered chain of waypoint ids the bundle routes
	// through, if any.
	Waypoints []NodeID `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`

	// FlowSelectionAttr restricts which rows travel along this bundle to
	// those whose row[FlowSelectionAttr] is one of FlowSelectionValues.
	// Empty FlowSelectionAttr means "no selection" (matches any row not
	// otherwise claimed by a more specific bundle).
	FlowSelectionAttr   string   `json:"flow_selection_attr,omitempty" yaml:"flowSelectionAttr,omitempty"`
	FlowSelectionValues []string `json:"flow_selection_values,omitempty" yaml:"flowSelectionValues,omitempty"`

	// FlowPartition overrides the SDD-level default flow partition for this
	// bundle's segments. Nil means "use the default".
	FlowPartition *Partition `json:"flow_partition,omitempty" yaml:"flowPartition,omitempty"`
}

// HasFlowSelection reports whether b restricts rows by an explicit attribute.
func (b *Bundle) HasFlowSelection() bool {
	return b.FlowSelectionAttr != ""
}

// Ordering fixes layer -> band -> node-id layout. Layers are horizontal
// positions, bands are vertical groups within a layer, and the node list
// within a band is the vertical order.
type Ordering [][][]NodeID

// Definition is the root SDD: nodes, bundles, ordering and the SDD-level
// default partitions.
type Definition struct {
	ProcessGroups []*ProcessGroup `json:"process_groups,omitempty" yaml:"processGroups,omitempty"`
	Waypoints     []*Waypoint     `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
	Bundles       []*Bundle       `json:"bundles,omitempty" yaml:"bundles,omitempty"`
	Ordering      Ordering        `json:"ordering,omitempty" yaml:"ordering,omitempty"`

	DefaultFlowPartition *Partition `json:"default_flow_partition,omitempty" yaml:"defaultFlowPartition,omitempty"`
	TimePartition        *Partition `json:"time_partition,omitempty" yaml:"timePartition,omitempty"`
}

// NodeKind distinguishes a process group from a waypoint among SDD nodes.
type NodeKind string

const (
	KindProcess  NodeKind = "process"
	KindWaypoint NodeKind = "waypoint"
)

// nodeIndex is built once per Definition to answer id -> (kind, partition)
// queries in O(1) during validation and compilation.
type nodeIndex struct {
	kind      map[NodeID]NodeKind
	partition map[NodeID]*Partition
	processes map[NodeID][]string
}

func (d *Definition) index() nodeIndex {
	idx := nodeIndex{
		kind:      map[NodeID]NodeKind{},
		partition: map[NodeID]*Partition{},
		processes: map[NodeID][]string{},
	}
	for _, pg := range d.ProcessGroups {
		idx.kind[pg.ID] = KindProcess
		idx.partition[pg.ID] = pg.Partition
		idx.processes[pg.ID] = pg.Processes
	}
	for _, wp := range d.Waypoints {
		idx.kind[wp.ID] = KindWaypoint
		idx.partition[wp.ID] = wp.Partition
	}
	return idx
}

// PartitionOf returns the declared partition (possibly nil) for a node id, or
// nil if the id is unknown or Elsewhere.
func (d *Definition) PartitionOf(id NodeID) *Partition {
	if id.IsElsewhere() {
		return nil
	}
	return d.index().partition[id]
}

// ProcessesOf returns the raw process ids a ProcessGroup selects, or nil for
// a Waypoint, an unknown id, or Elsewhere.
func (d *Definition) ProcessesOf(id NodeID) []string {
	if id.IsElsewhere() {
		return nil
	}
	return d.index().processes[id]
}

// Validate checks the invariants named in spec §4.5 step 1: every bundle
// endpoint is Elsewhere or a declared node id, every waypoint id referenced by
// a bundle is declared as a Waypoint, and every ordering entry refers to a
// declared node. Validation failure is fatal; no WSpec is produced from an
// invalid SDD.
func (d *Definition) Validate() error {
	idx := d.index()

	checkEndpoint := func(id NodeID, ctx string) error {
		if id.IsElsewhere() {
			return nil
		}
		if _, ok := idx.kind[id]; !ok {
			return fmt.Errorf("sdd: %s references unknown node id %q", ctx, id)
		}
		return nil
	}

	for _, b := range d.Bundles {
		if err := checkEndpoint(b.Source, fmt.Sprintf("bundle %d source", b.Origin)); err != nil {
			return err
		}
		if err := checkEndpoint(b.Target, fmt.Sprintf("bundle %d target", b.Origin)); err != nil {
			return err
		}
		for _, wp := range b.Waypoints {
			kind, ok := idx.kind[wp]
			if !ok {
				return fmt.Errorf("sdd: bundle %d references undeclared waypoint %q", b.Origin, wp)
			}
			if kind != KindWaypoint {
				return fmt.Errorf("sdd: bundle %d references %q as a waypoint, but it is a process group", b.Origin, wp)
			}
		}
	}

	seenLabels := func(p *Partition, ctx string) error {
		if p == nil {
			return nil
		}
		seen := map[string]bool{}
		for _, g := range p.Groups {
			if seen[g.Label] {
				return fmt.Errorf("sdd: %s has duplicate partition label %q", ctx, g.Label)
			}
			seen[g.Label] = true
		}
		return nil
	}
	for _, pg := range d.ProcessGroups {
		if err := seenLabels(pg.Partition, fmt.Sprintf("node %q", pg.ID)); err != nil {
			return err
		}
	}
	for _, wp := range d.Waypoints {
		if err := seenLabels(wp.Partition, fmt.Sprintf("node %q", wp.ID)); err != nil {
			return err
		}
	}

	for li, layer := range d.Ordering {
		for bi, band := range layer {
			for _, id := range band {
				if _, ok := idx.kind[id]; !ok {
					return fmt.Errorf("sdd: ordering[%d][%d] references unknown node id %q", li, bi, id)
				}
			}
		}
	}

	return nil
}
