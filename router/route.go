package router

import "github.com/viant/weaver/wspec"

// Row is one flow-dataset record as exposed to the router; values are looked
// up by the attribute names referenced in the bundle's partitions and flow
// selections.
type Row map[string]interface{}

// Route walks t according to row's attribute values and returns the edge ids
// the row is assigned to. A row may be assigned zero edge ids (dropped,
// e.g. an anomalous value that matches no branch and no populated default),
// in which case Route returns nil.
func Route(row Row, t *wspec.Tree) []int {
	for t != nil && !t.IsLeaf() {
		v, ok := row[t.Attr]
		if !ok {
			t = t.Default
			continue
		}
		key, ok := stringKey(v)
		if !ok {
			t = t.Default
			continue
		}
		child, ok := t.Branches[key]
		if !ok {
			t = t.Default
			continue
		}
		t = child
	}
	if t == nil || len(t.Edges) == 0 {
		return nil
	}
	return t.Edges
}

func stringKey(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
