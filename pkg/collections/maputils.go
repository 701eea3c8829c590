// Package collections provides small generic helpers for working with maps:
// pairing the values of two maps by key, set-unions of keys, disjoint map
// union, and deterministic sorted views of map entries.
package collections

import (
	"cmp"
	"fmt"
	"slices"
)

// Entry is a single key-value pair from a map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// ZipPair holds the two values found under one shared key.
type ZipPair[V any] struct {
	Left  V
	Right V
}

// PairedValues is the result of zipping two maps by key.
type PairedValues[V any] struct {
	// Paired holds value pairs for keys present in both maps.
	Paired []ZipPair[V]

	// LeftOnly holds values whose keys appear only in the left map.
	LeftOnly []V

	// RightOnly holds values whose keys appear only in the right map.
	RightOnly []V
}

// PerfectlyAligned reports whether every key appeared in both maps.
func (p PairedValues[V]) PerfectlyAligned() bool {
	return len(p.LeftOnly) == 0 && len(p.RightOnly) == 0
}

// ZipValues pairs the values of two maps by key.
func ZipValues[K comparable, V any](left, right map[K]V) PairedValues[V] {
	var ret PairedValues[V]
	for k, lv := range left {
		if rv, ok := right[k]; ok {
			ret.Paired = append(ret.Paired, ZipPair[V]{Left: lv, Right: rv})
		} else {
			ret.LeftOnly = append(ret.LeftOnly, lv)
		}
	}
	for k, rv := range right {
		if _, ok := left[k]; !ok {
			ret.RightOnly = append(ret.RightOnly, rv)
		}
	}
	return ret
}

// AllKeys returns the set of keys appearing in any of the given maps.
func AllKeys[K comparable, V any](maps ...map[K]V) map[K]struct{} {
	keys := make(map[K]struct{})
	for _, m := range maps {
		for k := range m {
			keys[k] = struct{}{}
		}
	}
	return keys
}

// DisjointUnion merges two maps, failing if any key appears in both with
// different values. Keys shared with equal values are allowed.
func DisjointUnion[K, V comparable](first, second map[K]V) (map[K]V, error) {
	ret := make(map[K]V, len(first)+len(second))
	for k, v := range first {
		ret[k] = v
	}
	for k, v := range second {
		if existing, ok := ret[k]; ok && existing != v {
			return nil, fmt.Errorf("key %v maps to both %v and %v", k, existing, v)
		}
		ret[k] = v
	}
	return ret, nil
}

// SortedEntriesByKey returns the entries of m ordered by key.
func SortedEntriesByKey[K cmp.Ordered, V any](m map[K]V) []Entry[K, V] {
	entries := entriesOf(m)
	slices.SortFunc(entries, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}

// SortedEntriesByValue returns the entries of m ordered by value, breaking
// ties arbitrarily.
func SortedEntriesByValue[K comparable, V cmp.Ordered](m map[K]V) []Entry[K, V] {
	entries := entriesOf(m)
	slices.SortFunc(entries, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return entries
}

func entriesOf[K comparable, V any](m map[K]V) []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return entries
}

// TransformEntries applies f to every entry of m, failing if two transformed
// entries collide on a key.
func TransformEntries[K1 comparable, V1 any, K2 comparable, V2 any](
	m map[K1]V1, f func(K1, V1) (K2, V2),
) (map[K2]V2, error) {
	ret := make(map[K2]V2, len(m))
	for k, v := range m {
		k2, v2 := f(k, v)
		if _, ok := ret[k2]; ok {
			return nil, fmt.Errorf("transformed key %v is not unique", k2)
		}
		ret[k2] = v2
	}
	return ret, nil
}

// LongestKeyLength returns the length of the longest key in m, or 0 for an
// empty map. Useful for aligning text output.
func LongestKeyLength[V any](m map[string]V) int {
	longest := 0
	for k := range m {
		if len(k) > longest {
			longest = len(k)
		}
	}
	return longest
}
