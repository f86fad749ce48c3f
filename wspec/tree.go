package wspec

// Tree is the routing decision tree: a tagged sum of Leaf and Branch. A Leaf
// carries the edge ids a row reaching it is assigned to; a Branch selects a
// child by the value of row[Attr], falling back to Default when the value is
// absent or unmatched. The tree is built once by the compiler (via package
// router) and is never mutated afterwards; it is shared by reference across
// concurrent executor calls.
type Tree struct {
	// Leaf fields. A node with neither Branches nor Default is a leaf; Edges
	// lists its edge ids and may be empty (or nil once an empty leaf has been
	// decoded from a document, since the field is omitted when empty).
	Edges []int `json:"value,omitempty" yaml:"value,omitempty"`

	// Branch fields.
	Attr     string           `json:"attr,omitempty" yaml:"attr,omitempty"`
	Branches map[string]*Tree `json:"branches,omitempty" yaml:"branches,omitempty"`
	Default  *Tree            `json:"default,omitempty" yaml:"default,omitempty"`
}

// IsLeaf reports whether t is a Leaf node.
func (t *Tree) IsLeaf() bool {
	return t != nil && t.Branches == nil && t.Default == nil
}

// Leaf constructs a leaf tree node carrying the given edge ids. The returned
// node's Edges is always non-nil, even when edgeIDs is empty, and is a copy
// of edgeIDs.
func Leaf(edgeIDs ...int) *Tree {
	edges := make([]int, len(edgeIDs))
	copy(edges, edgeIDs)
	return &Tree{Edges: edges}
}

// Branch constructs a branch tree node.
func Branch(attr string, branches map[string]*Tree, def *Tree) *Tree {
	return &Tree{Attr: attr, Branches: branches, Default: def}
}
