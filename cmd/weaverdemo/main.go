// Command weaverdemo compiles a small in-code SDD definition and executes it
// against an in-memory dataset, printing the resulting Sankey data. It is a
// runnable walkthrough of the compile-then-execute pipeline, not a CLI tool.
package main

import (
	"fmt"

	"github.com/viant/weaver/compiler"
	"github.com/viant/weaver/dataset"
	"github.com/viant/weaver/executor"
	"github.com/viant/weaver/sdd"
	"github.com/viant/weaver/wspec"
	"github.com/viant/weaver/wspechash"
)

func main() {
	def := &sdd.Definition{
		ProcessGroups: []*sdd.ProcessGroup{
			{ID: "checkout", Processes: []string{"checkout"}, Title: "Checkout", Direction: sdd.Left},
			{ID: "fulfilled", Processes: []string{"shipped", "delivered"}, Title: "Fulfilled", Direction: sdd.Right,
				Partition: &sdd.Partition{Dimension: "stage", Groups: []sdd.PartitionGroup{
					{Label: "shipped", Values: []string{"shipped"}},
					{Label: "delivered", Values: []string{"delivered"}},
				}},
			},
		},
		Bundles: []*sdd.Bundle{
			{Origin: 0, Source: "checkout", Target: "fulfilled"},
			{Origin: 1, Source: "checkout", Target: sdd.Elsewhere},
		},
		Ordering: sdd.Ordering{
			{{"checkout"}},
			{{"fulfilled"}},
		},
	}

	w, err := compiler.Compile(def,
		compiler.WithMeasure(wspec.MeasureSpec{Column: "orders", Aggregation: wspec.Sum}),
		compiler.WithDisplay("orders", wspec.ColorSpec{
			Kind:    wspec.ColorCategorical,
			Attr:    "target",
			Lookup:  map[string]string{"": "#999999"},
			Default: "#4c78a8",
		}),
	)
	if err != nil {
		fmt.Printf("compile error: %v\n", err)
		return
	}

	hash, err := wspechash.Of(w)
	if err != nil {
		fmt.Printf("hash error: %v\n", err)
		return
	}
	fmt.Printf("compiled wspec with %d edges, hash %d\n", len(w.Edges), hash)

	rows := []dataset.Row{
		{"source": "checkout", "target": "fulfilled", "stage": "shipped", "orders": 120.0},
		{"source": "checkout", "target": "fulfilled", "stage": "delivered", "orders": 80.0},
		{"source": "checkout", "target": "cancelled", "orders": 15.0},
	}

	data, err := executor.Execute(w, dataset.NewIterator(rows), executor.WithHash(hash))
	if err != nil {
		fmt.Printf("execute error: %v\n", err)
		return
	}

	fmt.Printf("sankey: %d nodes, %d links, %d groups, %d ordering layers\n",
		len(data.Nodes), len(data.Links), len(data.Groups), len(data.Ordering))
	for _, link := range data.Links {
		fmt.Printf("  link %s -> %s: width=%.1f color=%s\n", endpoint(link.Source), endpoint(link.Target), link.LinkWidth, link.Color)
	}
}

func endpoint(id *string) string {
	if id == nil {
		return "elsewhere"
	}
	return *id
}
