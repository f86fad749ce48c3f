// Package executor routes a flow dataset through a compiled WSpec, aggregates
// measures per edge, applies colour and produces the pruned Sankey diagram
// data a front end renders.
package executor

import "github.com/viant/weaver/wspec"

// SankeyNode is a node survivng pruning, with its Elsewhere link attachments.
type SankeyNode struct {
	ID                 string            `json:"id" yaml:"id"`
	Title              string            `json:"title" yaml:"title"`
	Direction          wspec.Direction   `json:"direction" yaml:"direction"`
	Hidden             bool              `json:"hidden" yaml:"hidden"`
	Style              map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
	FromElsewhereLinks []int             `json:"from_elsewhere_links,omitempty" yaml:"fromElsewhereLinks,omitempty"`
	ToElsewhereLinks   []int             `json:"to_elsewhere_links,omitempty" yaml:"toElsewhereLinks,omitempty"`
}

// SankeyLink is one rendered link: an aggregated, coloured edge.
type SankeyLink struct {
	Source        *string            `json:"source" yaml:"source"`
	Target        *string            `json:"target" yaml:"target"`
	Type          string             `json:"type" yaml:"type"`
	Time          string             `json:"time" yaml:"time"`
	LinkWidth     float64            `json:"link_width" yaml:"linkWidth"`
	Data          map[string]float64 `json:"data" yaml:"data"`
	Title         string             `json:"title" yaml:"title"`
	Color         string             `json:"color" yaml:"color"`
	Opacity       float64            `json:"opacity" yaml:"opacity"`
	OriginalFlows []int              `json:"original_flows" yaml:"originalFlows"`
}

// SankeyGroup is a pruned, non-redundant GroupSpec.
type SankeyGroup struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Type  string   `json:"type" yaml:"type"`
	Nodes []string `json:"nodes" yaml:"nodes"`
}

// SankeyData is the final, pruned product ready for layout and render.
type SankeyData struct {
	Nodes    []*SankeyNode  `json:"nodes" yaml:"nodes"`
	Links    []*SankeyLink  `json:"links" yaml:"links"`
	Groups   []*SankeyGroup `json:"groups" yaml:"groups"`
	Ordering [][][]string   `json:"ordering" yaml:"ordering"`
}
