// Package wspec defines the compiled, data-independent Weaver Specification
// (WSpec): typed nodes, a flat edge list, a routing decision tree, measure
// aggregation rules and a display description. A WSpec is immutable once
// produced by the compiler; the executor only ever reads it.
package wspec

// Version is the wire-document version tag WSpec currently emits.
const Version = "2.0"

// NodeKind distinguishes a process node from a waypoint node.
type NodeKind string

const (
	KindProcess  NodeKind = "process"
	KindWaypoint NodeKind = "waypoint"
)

// Direction is the horizontal placement of a node.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
)

// NodeSpec is a compiled node: either a partition-expanded sub-node of an SDD
// process group/waypoint, or the node itself when unpartitioned.
type NodeSpec struct {
	ID        string            `json:"id" yaml:"id"`
	Kind      NodeKind          `json:"type" yaml:"type"`
	Title     string            `json:"title" yaml:"title"`
	Direction Direction         `json:"direction" yaml:"direction"`
	Hidden    bool              `json:"hidden" yaml:"hidden"`
	Style     map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	Group     string            `json:"group,omitempty" yaml:"group,omitempty"`
}

// GroupSpec collects the sub-nodes formed by partition expansion of a single
// SDD node.
type GroupSpec struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Nodes []string `json:"nodes" yaml:"nodes"`
}

// Wildcard is the type/time label used for an ungrouped dimension.
const Wildcard = "*"

// EdgeSpec is a concrete (source-sub, target-sub, type, time) segment. A nil
// Source or Target marks a from-Elsewhere / to-Elsewhere edge respectively.
type EdgeSpec struct {
	ID        int      `json:"id" yaml:"id"`
	Source    *string  `json:"source" yaml:"source"`
	Target    *string  `json:"target" yaml:"target"`
	Type      string   `json:"type" yaml:"type"`
	Time      string   `json:"time" yaml:"time"`
	BundleIDs []int    `json:"bundle_ids" yaml:"bundleIds"`
}

// Aggregation is the reduction applied to a measure column.
type Aggregation string

const (
	Sum  Aggregation = "sum"
	Mean Aggregation = "mean"
)

// MeasureSpec names a dataset column and how it is aggregated per edge.
type MeasureSpec struct {
	Column      string      `json:"column" yaml:"column"`
	Aggregation Aggregation `json:"aggregation" yaml:"aggregation"`
}

// ColorKind distinguishes the two ColorSpec shapes.
type ColorKind string

const (
	ColorCategorical  ColorKind = "categorical"
	ColorQuantitative ColorKind = "quantitative"
)

// ColorSpec describes how link colour is derived. Exactly one of the two
// shapes is populated, selected by Kind.
type ColorSpec struct {
	Kind ColorKind `json:"type" yaml:"type"`

	// Attr is read by both shapes; Lookup and Default are categorical fields.
	Attr    string            `json:"attr" yaml:"attr"`
	Lookup  map[string]string `json:"lookup,omitempty" yaml:"lookup,omitempty"`
	Default string            `json:"default,omitempty" yaml:"default,omitempty"`

	// Quantitative fields.
	Intensity *string   `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Domain    []float64 `json:"domain,omitempty" yaml:"domain,omitempty"`
	Palette   []string  `json:"palette,omitempty" yaml:"palette,omitempty"`
}

// DisplaySpec is the link-width column plus the colour rule.
type DisplaySpec struct {
	LinkWidth string    `json:"link_width" yaml:"linkWidth"`
	LinkColor ColorSpec `json:"link_color" yaml:"linkColor"`
}

// WSpec is the complete frozen compilation output.
type WSpec struct {
	Version    string                `json:"version" yaml:"version"`
	Nodes      map[string]*NodeSpec  `json:"nodes" yaml:"nodes"`
	Groups     []*GroupSpec          `json:"groups" yaml:"groups"`
	Edges      []*EdgeSpec           `json:"edges" yaml:"edges"`
	Ordering   [][][]string          `json:"ordering" yaml:"ordering"`
	Measures   []MeasureSpec         `json:"measures" yaml:"measures"`
	Display    DisplaySpec           `json:"display" yaml:"display"`
	Routing    *Tree                 `json:"routing_tree" yaml:"routingTree"`
}
