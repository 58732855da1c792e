package listing

import (
	"maps"
	"slices"
)

// PrefixSet is an unordered set of common prefixes.
type PrefixSet map[string]struct{}

// NewPrefixSet creates a set holding the given prefixes.
func NewPrefixSet(prefixes ...string) PrefixSet {
	s := make(PrefixSet, len(prefixes))
	for _, p := range prefixes {
		s.Add(p)
	}
	return s
}

// Add inserts a prefix. Adding an existing prefix is a no-op.
func (s PrefixSet) Add(prefix string) {
	s[prefix] = struct{}{}
}

// Contains reports whether prefix is in the set.
func (s PrefixSet) Contains(prefix string) bool {
	_, ok := s[prefix]
	return ok
}

// Len returns the number of distinct prefixes.
func (s PrefixSet) Len() int {
	return len(s)
}

// Sorted returns the prefixes in lexicographic order.
// The result is never nil.
func (s PrefixSet) Sorted() []string {
	sorted := slices.AppendSeq(make([]string, 0, len(s)), maps.Keys(s))
	slices.Sort(sorted)
	return sorted
}
