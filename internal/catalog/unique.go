package catalog

import "sort"

// Fields accepted by UniqueValues.
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldLanguage = "language"
	FieldTags     = "tags"
)

// UniqueValues returns the distinct non-empty values of a field across
// all records, sorted ascending. Tags are flattened across records.
// An unknown field yields an empty slice.
func (c *Catalog) UniqueValues(field string) []string {
	seen := make(map[string]bool)
	values := []string{}

	add := func(value string) {
		if value == "" || seen[value] {
			return
		}
		seen[value] = true
		values = append(values, value)
	}

	for _, book := range c.books {
		switch field {
		case FieldTitle:
			add(book.Title)
		case FieldAuthor:
			add(book.Author)
		case FieldLanguage:
			add(book.Language)
		case FieldTags:
			for _, tag := range book.Tags {
				add(tag)
			}
		}
	}

	sort.Strings(values)
	return values
}
