// Package ranking is the one place selection and ordering logic lives.
// Every report declares its sort keys and tie-breaks at the call site
// instead of re-implementing a slightly different sort.
package ranking

import (
	"sort"
)

// SortKey is one ordered comparison key. Ties at this key fall through
// to the next key, and finally to the caller's tie-break.
type SortKey[T any] struct {
	Name      string
	Value     func(T) float64
	Ascending bool
}

// Desc builds a descending sort key
func Desc[T any](name string, value func(T) float64) SortKey[T] {
	return SortKey[T]{Name: name, Value: value}
}

// Asc builds an ascending sort key
func Asc[T any](name string, value func(T) float64) SortKey[T] {
	return SortKey[T]{Name: name, Value: value, Ascending: true}
}

// Ranked pairs a record with its 1-based rank
type Ranked[T any] struct {
	Rank   int `json:"rank"`
	Record T   `json:"record"`
}

// Rank orders records under the given keys and assigns ranks exactly
// 1..N. Ties get consecutive rank numbers, not repeated ones; the
// tie-break (normally entity ID or name) makes the order total, so the
// same input always produces the same output. An empty input yields an
// empty list.
func Rank[T any](records []T, keys []SortKey[T], tieBreak func(a, b T) int) []Ranked[T] {
	ordered := make([]T, len(records))
	copy(ordered, records)

	sort.SliceStable(ordered, func(i, j int) bool {
		return compare(ordered[i], ordered[j], keys, tieBreak) < 0
	})

	out := make([]Ranked[T], len(ordered))
	for i, rec := range ordered {
		out[i] = Ranked[T]{Rank: i + 1, Record: rec}
	}
	return out
}

// compare returns <0 when a ranks ahead of b
func compare[T any](a, b T, keys []SortKey[T], tieBreak func(a, b T) int) int {
	for _, key := range keys {
		av, bv := key.Value(a), key.Value(b)
		if av == bv {
			continue
		}
		better := av > bv
		if key.Ascending {
			better = av < bv
		}
		if better {
			return -1
		}
		return 1
	}
	if tieBreak != nil {
		return tieBreak(a, b)
	}
	return 0
}
