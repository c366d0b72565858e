// Package filters holds the template filters catsort registers into its
// renderer. The main one, sort_hash_by_value, orders a category mapping by
// how many items each category holds, largest first, so a template can print
// a "top categories" list:
//
//	{{range sort_hash_by_value .Site.Categories}}{{.Key}} ({{.Size}}){{end}}
//
// Map iteration order in Go is random, so entries of equal size are ordered
// by ascending key. Callers that already hold an ordered sequence can use
// SortPairsDescending, which keeps their order among ties.
package filters

import (
	"cmp"
	"slices"
)

// Pair is one (key, collection) entry of a sorted mapping
type Pair[K any, V any] struct {
	Key   K
	Value V
}

// Sized is implemented by collection types that report their own element count
type Sized interface {
	Len() int
}

// SortByLenDescending returns the entries of m ordered by descending slice
// length, ties broken by ascending key. m is not modified.
func SortByLenDescending[M ~map[K]S, K cmp.Ordered, S ~[]E, E any](m M) []Pair[K, S] {
	return sortMap(m, func(s S) int { return len(s) })
}

// SortSizedDescending is SortByLenDescending for values that implement Sized.
func SortSizedDescending[M ~map[K]V, K cmp.Ordered, V Sized](m M) []Pair[K, V] {
	return sortMap(m, func(v V) int { return v.Len() })
}

// SortPairsDescending returns a copy of pairs ordered by descending size.
// The sort is stable: pairs of equal size keep their relative input order.
func SortPairsDescending[K any, V any](pairs []Pair[K, V], size func(V) int) []Pair[K, V] {
	measured := make([]sizedPair[K, V], len(pairs))
	for i, p := range pairs {
		measured[i] = sizedPair[K, V]{pair: p, size: size(p.Value)}
	}

	slices.SortStableFunc(measured, func(a, b sizedPair[K, V]) int {
		return cmp.Compare(b.size, a.size)
	})

	return unwrap(measured)
}

type sizedPair[K any, V any] struct {
	pair Pair[K, V]
	size int
}

func sortMap[M ~map[K]V, K cmp.Ordered, V any](m M, size func(V) int) []Pair[K, V] {
	measured := make([]sizedPair[K, V], 0, len(m))
	for k, v := range m {
		measured = append(measured, sizedPair[K, V]{
			pair: Pair[K, V]{Key: k, Value: v},
			size: size(v),
		})
	}

	// Keys are unique, so the ordering is total and the result deterministic.
	slices.SortFunc(measured, func(a, b sizedPair[K, V]) int {
		if a.size != b.size {
			return cmp.Compare(b.size, a.size)
		}
		return cmp.Compare(a.pair.Key, b.pair.Key)
	})

	return unwrap(measured)
}

func unwrap[K any, V any](measured []sizedPair[K, V]) []Pair[K, V] {
	pairs := make([]Pair[K, V], len(measured))
	for i, m := range measured {
		pairs[i] = m.pair
	}
	return pairs
}
