package compiler

import "github.com/viant/weaver/sdd"

// nodeMeta is the subset of an SDD process group or waypoint's declaration
// the compiler needs to describe the WSpec nodes it expands into.
type nodeMeta struct {
	kind      sdd.NodeKind
	title     string
	direction sdd.Direction
	style     sdd.Style
	partition *sdd.Partition
}

// metaIndex resolves every declared node id to its metadata once per
// Compile call.
func metaIndex(def *sdd.Definition) map[sdd.NodeID]nodeMeta {
	idx := make(map[sdd.NodeID]nodeMeta, len(def.ProcessGroups)+len(def.Waypoints))
	for _, pg := range def.ProcessGroups {
		idx[pg.ID] = nodeMeta{kind: sdd.KindProcess, title: pg.Title, direction: pg.Direction, style: pg.Style, partition: pg.Partition}
	}
	for _, wp := range def.Waypoints {
		idx[wp.ID] = nodeMeta{kind: sdd.KindWaypoint, title: wp.Title, direction: wp.Direction, style: wp.Style, partition: wp.Partition}
	}
	return idx
}
