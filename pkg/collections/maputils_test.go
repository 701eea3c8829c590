package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgabbard/bue-common-open/pkg/collections"
)

func TestZipValues(t *testing.T) {
	t.Parallel()

	left := map[string]int{"a": 1, "b": 2, "c": 3}
	right := map[string]int{"b": 20, "c": 30, "d": 40}

	zipped := collections.ZipValues(left, right)

	assert.Len(t, zipped.Paired, 2)
	assert.ElementsMatch(t, []int{1}, zipped.LeftOnly)
	assert.ElementsMatch(t, []int{40}, zipped.RightOnly)
	assert.False(t, zipped.PerfectlyAligned())

	aligned := collections.ZipValues(left, map[string]int{"a": 9, "b": 8, "c": 7})
	assert.True(t, aligned.PerfectlyAligned())
	assert.Len(t, aligned.Paired, 3)
}

func TestAllKeys(t *testing.T) {
	t.Parallel()

	keys := collections.AllKeys(
		map[string]int{"a": 1, "b": 2},
		map[string]int{"b": 3, "c": 4},
	)

	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}, "c": {}}, keys)
}

func TestDisjointUnion(t *testing.T) {
	t.Parallel()

	merged, err := collections.DisjointUnion(
		map[string]int{"a": 1, "shared": 5},
		map[string]int{"b": 2, "shared": 5},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "shared": 5}, merged)

	_, err = collections.DisjointUnion(
		map[string]int{"k": 1},
		map[string]int{"k": 2},
	)
	require.Error(t, err)
}

func TestSortedEntries(t *testing.T) {
	t.Parallel()

	m := map[string]int{"b": 3, "a": 1, "c": 2}

	byKey := collections.SortedEntriesByKey(m)
	assert.Equal(t, []collections.Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 3},
		{Key: "c", Value: 2},
	}, byKey)

	byValue := collections.SortedEntriesByValue(m)
	assert.Equal(t, []collections.Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "c", Value: 2},
		{Key: "b", Value: 3},
	}, byValue)
}

func TestTransformEntries(t *testing.T) {
	t.Parallel()

	out, err := collections.TransformEntries(
		map[string]int{"a": 1, "b": 2},
		func(k string, v int) (string, int) { return k + k, v * 10 },
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"aa": 10, "bb": 20}, out)

	_, err = collections.TransformEntries(
		map[string]int{"a": 1, "b": 2},
		func(string, int) (string, int) { return "same", 0 },
	)
	require.Error(t, err)
}

func TestLongestKeyLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, collections.LongestKeyLength(map[string]int{}))
	assert.Equal(t, 5, collections.LongestKeyLength(map[string]int{"a": 1, "abcde": 2}))
}
