package note

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// NormalizeTag makes a catalog tag safe for note frontmatter: strip a
// leading #, turn & into "and", convert whitespace runs to single
// hyphens, collapse and trim hyphens. Case and the / hierarchy
// separator are preserved, so "Science & Fiction" becomes
// "Science-and-Fiction" and "genre/Krimi" stays as it is.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.TrimSpace(tag)

	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")

	tag = whitespaceRe.ReplaceAllString(tag, "-")
	tag = hyphenRunRe.ReplaceAllString(tag, "-")
	tag = strings.Trim(tag, "-")

	return tag
}

// NormalizeTags normalizes a slice of tags, dropping empty results.
// The result is sorted and deduplicated.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		normalized := NormalizeTag(tag)
		if normalized != "" && !seen[normalized] {
			seen[normalized] = true
			result = append(result, normalized)
		}
	}

	sort.Strings(result)
	return result
}

// TagSet collects tags with automatic normalization and deduplication.
type TagSet struct {
	tags map[string]bool
}

// NewTagSet creates an empty TagSet.
func NewTagSet() *TagSet {
	return &TagSet{
		tags: make(map[string]bool),
	}
}

// Add adds a tag after normalization. Empty results and duplicates are
// filtered out.
func (ts *TagSet) Add(tag string) {
	normalized := NormalizeTag(tag)
	if normalized != "" {
		ts.tags[normalized] = true
	}
}

// AddIf adds a tag only when the condition holds.
func (ts *TagSet) AddIf(condition bool, tag string) {
	if condition {
		ts.Add(tag)
	}
}

// AddFormat adds a tag built like fmt.Sprintf.
func (ts *TagSet) AddFormat(format string, args ...any) {
	ts.Add(fmt.Sprintf(format, args...))
}

// GetSorted returns all tags as a sorted slice.
func (ts *TagSet) GetSorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// MergeTags normalizes and combines two tag slices into one sorted,
// deduplicated result. Used when rewriting a note that already carries
// tags the user added by hand.
func MergeTags(existing, added []string) []string {
	seen := make(map[string]bool)

	for _, tag := range existing {
		if normalized := NormalizeTag(tag); normalized != "" {
			seen[normalized] = true
		}
	}
	for _, tag := range added {
		if normalized := NormalizeTag(tag); normalized != "" {
			seen[normalized] = true
		}
	}

	result := make([]string, 0, len(seen))
	for tag := range seen {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// TagsFromAny extracts a string slice from a polymorphic YAML value.
// Unmarshaling can produce []any or []string, both are handled.
func TagsFromAny(val any) []string {
	switch tags := val.(type) {
	case []string:
		result := make([]string, 0, len(tags))
		for _, s := range tags {
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	case []any:
		result := make([]string, 0, len(tags))
		for _, item := range tags {
			if str, ok := item.(string); ok && str != "" {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}
