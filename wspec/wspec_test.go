package wspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoundTrip(t *testing.T) {
	title := "a"
	w := &WSpec{
		Version: Version,
		Nodes: map[string]*NodeSpec{
			"a": {ID: "a", Kind: KindProcess, Title: "A", Direction: Left},
		},
		Edges: []*EdgeSpec{
			{ID: 0, Source: &title, Target: nil, Type: Wildcard, Time: Wildcard, BundleIDs: []int{0}},
		},
		Measures: []MeasureSpec{{Column: "value", Aggregation: Sum}},
		Display:  DisplaySpec{LinkWidth: "value", LinkColor: ColorSpec{Kind: ColorCategorical, Attr: "type"}},
		Routing:  Branch("source", map[string]*Tree{"a": Leaf(0)}, Leaf()),
	}

	data, err := w.Document()
	require.NoError(t, err)

	got, err := FromDocument(data)
	require.NoError(t, err)

	assert.Equal(t, w.Version, got.Version)
	assert.Equal(t, w.Nodes["a"].Title, got.Nodes["a"].Title)
	require.Len(t, got.Edges, 1)
	assert.Equal(t, "a", *got.Edges[0].Source)
	assert.Nil(t, got.Edges[0].Target)
	assert.True(t, got.Routing.Branches["a"].IsLeaf())
	assert.Equal(t, []int{0}, got.Routing.Branches["a"].Edges)
}

func TestYAMLRoundTrip(t *testing.T) {
	w := &WSpec{Version: Version, Routing: Leaf(1, 2, 3)}

	data, err := w.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: \"2.0\"")

	got, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got.Routing.Edges)
}

func TestTreeLeafNeverNil(t *testing.T) {
	l := Leaf()
	assert.NotNil(t, l.Edges)
	assert.True(t, l.IsLeaf())
	assert.Len(t, l.Edges, 0)
}
