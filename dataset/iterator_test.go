package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceIteratorDrainsInOrder(t *testing.T) {
	rows := []Row{{"a": 1.0}, {"a": 2.0}}
	it := NewIterator(rows)

	row, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, row["a"])

	row, ok, err = it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2.0, row["a"])

	_, ok, err = it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
