package listing

import (
	"slices"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/s3types"
)

// Result is the outcome of a listing: the collapsed common prefixes and the
// entries that remain to be reported individually.
type Result struct {
	CommonPrefixes PrefixSet
	Entries        []s3types.Entry
}

// FilterByPrefix returns the entries whose key starts with prefix.
// An empty prefix matches every entry.
func FilterByPrefix(entries []s3types.Entry, prefix string) []s3types.Entry {
	if prefix == "" {
		return slices.Clone(entries)
	}

	filtered := make([]s3types.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Key, prefix) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// CollapseCommonPrefixes computes the common prefixes produced by delimiter
// for keys under prefix. Each key contributes prefix plus its remainder up to
// and including the first delimiter occurrence; keys with no delimiter in the
// remainder contribute nothing. An empty delimiter disables collapsing.
//
// Keys that do not start with prefix are skipped.
func CollapseCommonPrefixes(prefix, delimiter string, entries []s3types.Entry) PrefixSet {
	prefixes := NewPrefixSet()
	if delimiter == "" {
		return prefixes
	}

	for _, e := range entries {
		remainder, ok := strings.CutPrefix(e.Key, prefix)
		if !ok {
			continue
		}
		i := strings.Index(remainder, delimiter)
		if i < 0 {
			continue
		}
		prefixes.Add(prefix + remainder[:i+len(delimiter)])
	}
	return prefixes
}

// FilterByCommonPrefixes drops every entry whose key starts with one of the
// given common prefixes. Remaining entries are returned unchanged and in
// their original order.
func FilterByCommonPrefixes(entries []s3types.Entry, prefixes PrefixSet) []s3types.Entry {
	if prefixes.Len() == 0 {
		return slices.Clone(entries)
	}

	filtered := make([]s3types.Entry, 0, len(entries))
	for _, e := range entries {
		if !underAny(e.Key, prefixes) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Apply runs the full listing pipeline over a snapshot.
func Apply(entries []s3types.Entry, prefix, delimiter string) Result {
	matched := FilterByPrefix(entries, prefix)
	prefixes := CollapseCommonPrefixes(prefix, delimiter, matched)

	return Result{
		CommonPrefixes: prefixes,
		Entries:        FilterByCommonPrefixes(matched, prefixes),
	}
}

func underAny(key string, prefixes PrefixSet) bool {
	for p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
