package executor

import (
	"fmt"
	"log"
	"sort"

	"github.com/viant/weaver/dataset"
	"github.com/viant/weaver/router"
	"github.com/viant/weaver/wspec"
	"github.com/viant/weaver/wspechash"
)

// Execute routes every row from rows through w's decision tree, aggregates
// measures per edge, applies colour, and prunes nodes, groups and ordering
// layers that carry no flow.
func Execute(w *wspec.WSpec, rows dataset.Iterator, opts ...Option) (*SankeyData, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	checkHash(w, cfg)

	buffered, accum, err := routeAll(w, rows)
	if err != nil {
		return nil, err
	}

	links, err := buildLinks(w, buffered, accum)
	if err != nil {
		return nil, err
	}

	used, fromElsewhere, toElsewhere := classifyEndpoints(links)
	nodes := buildNodes(w, used, fromElsewhere, toElsewhere)
	groups := buildGroups(w, used)
	ordering := buildOrdering(w, used)

	return &SankeyData{Nodes: nodes, Links: links, Groups: groups, Ordering: ordering}, nil
}

func checkHash(w *wspec.WSpec, cfg *config) {
	if cfg.expectedHash == nil {
		return
	}
	actual, err := wspechash.Of(w)
	if err != nil {
		return
	}
	if actual != *cfg.expectedHash {
		log.Printf("executor: wspec hash drift: expected %d, got %d", *cfg.expectedHash, actual)
	}
}

// routeAll drains rows eagerly, buffering every row (so later measure
// aggregation can revisit them by index) while accumulating, per edge id,
// the indices of the rows routed to it.
func routeAll(w *wspec.WSpec, rows dataset.Iterator) ([]dataset.Row, map[int][]int, error) {
	var buffered []dataset.Row
	accum := make(map[int][]int, len(w.Edges))
	for {
		row, ok, err := rows.Next()
		if err != nil {
			return nil, nil, fmt.Errorf("executor: read row: %w", err)
		}
		if !ok {
			break
		}
		idx := len(buffered)
		buffered = append(buffered, row)
		for _, edgeID := range router.Route(router.Row(row), w.Routing) {
			accum[edgeID] = append(accum[edgeID], idx)
		}
	}
	return buffered, accum, nil
}

// buildLinks walks w.Edges in construction (edge-id) order, so links and
// original_flows stay deterministic across runs of the same WSpec and row
// multiset.
func buildLinks(w *wspec.WSpec, rows []dataset.Row, accum map[int][]int) ([]*SankeyLink, error) {
	links := make([]*SankeyLink, 0, len(w.Edges))
	for _, edge := range w.Edges {
		indices := accum[edge.ID]
		if len(indices) == 0 {
			continue
		}
		data, err := aggregateMeasures(rows, indices, w.Measures, w.Display.LinkWidth)
		if err != nil {
			return nil, err
		}
		col, err := edgeColor(w.Display.LinkColor, edge, data)
		if err != nil {
			return nil, err
		}

		flows := make([]int, len(indices))
		copy(flows, indices)

		links = append(links, &SankeyLink{
			Source:        edge.Source,
			Target:        edge.Target,
			Type:          edge.Type,
			Time:          edge.Time,
			LinkWidth:     data[w.Display.LinkWidth],
			Data:          data,
			Title:         edge.Type,
			Color:         col,
			Opacity:       1.0,
			OriginalFlows: flows,
		})
	}
	return links, nil
}

// classifyEndpoints partitions links into regular, from-Elsewhere and
// to-Elsewhere, returning the set of used node ids and each used node's
// Elsewhere link-index attachments.
func classifyEndpoints(links []*SankeyLink) (used map[string]bool, fromElsewhere, toElsewhere map[string][]int) {
	used = map[string]bool{}
	fromElsewhere = map[string][]int{}
	toElsewhere = map[string][]int{}
	for i, link := range links {
		switch {
		case link.Source == nil && link.Target == nil:
			continue
		case link.Source == nil:
			used[*link.Target] = true
			fromElsewhere[*link.Target] = append(fromElsewhere[*link.Target], i)
		case link.Target == nil:
			used[*link.Source] = true
			toElsewhere[*link.Source] = append(toElsewhere[*link.Source], i)
		default:
			used[*link.Source] = true
			used[*link.Target] = true
		}
	}
	return used, fromElsewhere, toElsewhere
}

func buildNodes(w *wspec.WSpec, used map[string]bool, fromElsewhere, toElsewhere map[string][]int) []*SankeyNode {
	ids := make([]string, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]*SankeyNode, 0, len(ids))
	for _, id := range ids {
		spec := w.Nodes[id]
		if spec == nil {
			continue
		}
		nodes = append(nodes, &SankeyNode{
			ID:                 id,
			Title:              spec.Title,
			Direction:          spec.Direction,
			Hidden:             spec.Hidden,
			Style:              spec.Style,
			FromElsewhereLinks: fromElsewhere[id],
			ToElsewhereLinks:   toElsewhere[id],
		})
	}
	return nodes
}

// buildGroups keeps only used members per group, drops empty groups, and
// drops a single-member group whose member already carries the group's
// title, to avoid a redundant layer of nesting in the rendered tree.
func buildGroups(w *wspec.WSpec, used map[string]bool) []*SankeyGroup {
	var groups []*SankeyGroup
	for _, g := range w.Groups {
		var members []string
		for _, id := range g.Nodes {
			if used[id] {
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		if len(members) == 1 && redundant(w, g, members[0]) {
			continue
		}
		groups = append(groups, &SankeyGroup{ID: g.ID, Title: g.Title, Type: "partition", Nodes: members})
	}
	return groups
}

func redundant(w *wspec.WSpec, g *wspec.GroupSpec, memberID string) bool {
	title := g.Title
	if title == "" {
		title = g.ID
	}
	node := w.Nodes[memberID]
	return node != nil && node.Title == title
}

// buildOrdering filters every band to used nodes and drops layers left
// entirely empty, preserving layer/band structure otherwise.
func buildOrdering(w *wspec.WSpec, used map[string]bool) [][][]string {
	var ordering [][][]string
	for _, layer := range w.Ordering {
		bands := make([][]string, 0, len(layer))
		anyUsed := false
		for _, band := range layer {
			var ids []string
			for _, id := range band {
				if used[id] {
					ids = append(ids, id)
					anyUsed = true
				}
			}
			bands = append(bands, ids)
		}
		if !anyUsed {
			continue
		}
		ordering = append(ordering, bands)
	}
	return ordering
}
