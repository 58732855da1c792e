package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mock/internal/testutil"
)

var allKeys = testutil.ListingKeys

// listingCases is the prefix/delimiter matrix run against testutil.ListingKeys.
// Absent parameters are the empty string.
var listingCases = []struct {
	name         string
	prefix       string
	delimiter    string
	wantPrefixes []string
	wantKeys     []string
}{
	{
		name:     "no prefix no delimiter",
		wantKeys: allKeys,
	},
	{
		name:      "no prefix slash delimiter",
		delimiter: "/",
		wantKeys:  []string{"a", "b", "d:1", "d:1:1", "eor.txt"},
		wantPrefixes: []string{
			"3330/", "foo/", "c/", "b/", "33309/",
		},
	},
	{
		name:   "prefix that matches nothing",
		prefix: "/",
	},
	{
		name:     "prefix b",
		prefix:   "b",
		wantKeys: []string{"b", "b/1", "b/1/1", "b/1/2", "b/2"},
	},
	{
		name:     "prefix b slash",
		prefix:   "b/",
		wantKeys: []string{"b/1", "b/1/1", "b/1/2", "b/2"},
	},
	{
		name:         "prefix b slash delimiter",
		prefix:       "b",
		delimiter:    "/",
		wantKeys:     []string{"b"},
		wantPrefixes: []string{"b/"},
	},
	{
		name:         "prefix b/ slash delimiter",
		prefix:       "b/",
		delimiter:    "/",
		wantKeys:     []string{"b/1", "b/2"},
		wantPrefixes: []string{"b/1/"},
	},
	{
		name:         "delimiter directly after prefix",
		prefix:       "b/1",
		delimiter:    "/",
		wantKeys:     []string{"b/1"},
		wantPrefixes: []string{"b/1/"},
	},
	{
		name:      "leaf level",
		prefix:    "b/1/",
		delimiter: "/",
		wantKeys:  []string{"b/1/1", "b/1/2"},
	},
	{
		name:         "every key collapses",
		prefix:       "c",
		delimiter:    "/",
		wantPrefixes: []string{"c/"},
	},
	{
		name:         "prefix c/ slash delimiter",
		prefix:       "c/",
		delimiter:    "/",
		wantKeys:     []string{"c/1"},
		wantPrefixes: []string{"c/1/"},
	},
	{
		name:      "partial segment prefix",
		prefix:    "eor",
		delimiter: "/",
		wantKeys:  []string{"eor.txt"},
	},
	{
		name:         "colon delimiter",
		delimiter:    ":",
		wantPrefixes: []string{"d:"},
		wantKeys: []string{
			"3330/0", "33309/0", "a",
			"b", "b/1", "b/1/1", "b/1/2", "b/2",
			"c/1", "c/1/1",
			"eor.txt", "foo/eor.txt",
		},
	},
	{
		name:         "multi character delimiter",
		delimiter:    "/1",
		wantPrefixes: []string{"b/1", "c/1"},
		wantKeys: []string{
			"3330/0", "33309/0", "a", "b", "b/2",
			"d:1", "d:1:1", "eor.txt", "foo/eor.txt",
		},
	},
}

func TestApply(t *testing.T) {
	for _, tt := range listingCases {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(testutil.Entries(allKeys...), tt.prefix, tt.delimiter)

			assert.Equal(t, len(tt.wantPrefixes), result.CommonPrefixes.Len())
			assert.ElementsMatch(t, tt.wantPrefixes, result.CommonPrefixes.Sorted(),
				"returned prefixes are correct")
			assert.ElementsMatch(t, tt.wantKeys, testutil.Keys(result.Entries),
				"returned keys are correct")
		})
	}
}

// TestPipelineSteps runs the three steps by hand over a snapshot that was
// already restricted to the prefix, the way a backend that filters server
// side would hand it over.
func TestPipelineSteps(t *testing.T) {
	for _, tt := range listingCases {
		t.Run(tt.name, func(t *testing.T) {
			matched := FilterByPrefix(testutil.Entries(allKeys...), tt.prefix)
			prefixes := CollapseCommonPrefixes(tt.prefix, tt.delimiter, matched)
			remaining := FilterByCommonPrefixes(matched, prefixes)

			assert.ElementsMatch(t, tt.wantPrefixes, prefixes.Sorted())
			assert.ElementsMatch(t, tt.wantKeys, testutil.Keys(remaining))
		})
	}
}

func TestCollapseCommonPrefixes(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		delimiter string
		want      []string
	}{
		{name: "no prefix no delimiter"},
		{name: "prefix without delimiter", prefix: "prefixa"},
		{
			name:      "no prefix with delimiter",
			delimiter: "/",
			want:      []string{"3330/", "foo/", "c/", "b/", "33309/"},
		},
		{
			name:      "prefix with delimiter over unfiltered entries",
			prefix:    "3330",
			delimiter: "/",
			want:      []string{"3330/", "33309/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseCommonPrefixes(tt.prefix, tt.delimiter, testutil.Entries(allKeys...))
			assert.ElementsMatch(t, tt.want, got.Sorted())
		})
	}
}

func TestCollapseCommonPrefixes_EmptyDelimiter(t *testing.T) {
	for _, prefix := range []string{"", "b", "b/", "zzz"} {
		got := CollapseCommonPrefixes(prefix, "", testutil.Entries(allKeys...))
		assert.Zero(t, got.Len(), "prefix %q", prefix)
	}
}

func TestCollapseCommonPrefixes_Edges(t *testing.T) {
	t.Run("key equal to prefix stays individual", func(t *testing.T) {
		got := CollapseCommonPrefixes("b/", "/", testutil.Entries("b/"))
		assert.Zero(t, got.Len())
	})

	t.Run("delimiter at start of remainder", func(t *testing.T) {
		got := CollapseCommonPrefixes("", "/", testutil.Entries("/root", "//double"))
		assert.ElementsMatch(t, []string{"/"}, got.Sorted())
	})

	t.Run("deeper levels are absorbed", func(t *testing.T) {
		got := CollapseCommonPrefixes("x/", "/", testutil.Entries("x/y/z/w", "x/y/q"))
		assert.ElementsMatch(t, []string{"x/y/"}, got.Sorted())
	})

	t.Run("duplicates are collapsed", func(t *testing.T) {
		got := CollapseCommonPrefixes("", "/", testutil.Entries("p/1", "p/2", "p/3"))
		assert.Equal(t, 1, got.Len())
		assert.True(t, got.Contains("p/"))
	})
}

// A zero-length "directory marker" object equal to a common prefix is
// absorbed by that prefix, as in S3.
func TestApply_DirectoryMarker(t *testing.T) {
	entries := testutil.Entries("b/", "b/1", "c")

	result := Apply(entries, "", "/")
	assert.ElementsMatch(t, []string{"b/"}, result.CommonPrefixes.Sorted())
	assert.ElementsMatch(t, []string{"c"}, testutil.Keys(result.Entries))

	result = Apply(entries, "b/", "/")
	assert.Zero(t, result.CommonPrefixes.Len())
	assert.ElementsMatch(t, []string{"b/", "b/1"}, testutil.Keys(result.Entries))
}

func TestFilterByPrefix(t *testing.T) {
	entries := testutil.Entries(allKeys...)

	t.Run("empty prefix is identity", func(t *testing.T) {
		got := FilterByPrefix(entries, "")
		assert.Equal(t, entries, got)
	})

	t.Run("excludes non matching keys", func(t *testing.T) {
		for _, prefix := range []string{"b", "3330", "d:", "nope", "eor.txt"} {
			for _, e := range FilterByPrefix(entries, prefix) {
				assert.True(t, strings.HasPrefix(e.Key, prefix), "key %q prefix %q", e.Key, prefix)
			}
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		before := testutil.Keys(entries)
		_ = FilterByPrefix(entries, "c")
		assert.Equal(t, before, testutil.Keys(entries))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterByPrefix(nil, "a"))
	})
}

func TestFilterByCommonPrefixes(t *testing.T) {
	entries := testutil.Entries(allKeys...)
	prefixes := NewPrefixSet("b/", "c/", "3330/")

	once := FilterByCommonPrefixes(entries, prefixes)
	for _, e := range once {
		for p := range prefixes {
			assert.False(t, strings.HasPrefix(e.Key, p), "key %q under %q", e.Key, p)
		}
	}

	twice := FilterByCommonPrefixes(once, prefixes)
	assert.Equal(t, once, twice, "filter is idempotent")

	assert.Equal(t, entries, FilterByCommonPrefixes(entries, NewPrefixSet()))

	// surviving entries are passed through unchanged
	require.NotEmpty(t, once)
	assert.Equal(t, testutil.NewEntry("33309/0"), once[0])
}

// Every collapsed prefix starts with the prefix and ends with the delimiter,
// and no surviving key sits under a collapsed prefix.
func TestApply_Invariants(t *testing.T) {
	prefixes := []string{"", "b", "b/", "c", "3", "d", "foo/", "zz"}
	delimiters := []string{"", "/", ":", "1", "/1", "txt"}

	for _, prefix := range prefixes {
		for _, delimiter := range delimiters {
			result := Apply(testutil.Entries(allKeys...), prefix, delimiter)

			for p := range result.CommonPrefixes {
				assert.True(t, strings.HasPrefix(p, prefix), "%q lacks prefix %q", p, prefix)
				assert.True(t, strings.HasSuffix(p, delimiter), "%q lacks delimiter %q", p, delimiter)
			}
			for _, e := range result.Entries {
				assert.True(t, strings.HasPrefix(e.Key, prefix))
				for p := range result.CommonPrefixes {
					assert.False(t, strings.HasPrefix(e.Key, p))
				}
			}
		}
	}
}

func TestPrefixSet(t *testing.T) {
	s := NewPrefixSet("b/", "a/", "b/")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a/"))
	assert.False(t, s.Contains("c/"))

	s.Add("c/")
	assert.Equal(t, []string{"a/", "b/", "c/"}, s.Sorted())
	assert.Empty(t, NewPrefixSet().Sorted())
}
