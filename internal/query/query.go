package query

import (
	"sort"
	"strings"

	"github.com/jhaapala/libris/internal/catalog"
)

// SortField selects which record field orders a result set.
type SortField string

const (
	SortNone     SortField = ""
	SortTitle    SortField = "title"
	SortAuthor   SortField = "author"
	SortLanguage SortField = "language"
)

// State carries every user-chosen search, filter, and sort parameter
// for one engine run. It is passed by value and never retained, so the
// caller can mutate its own copy freely between runs.
type State struct {
	Search    string
	Languages []string
	Tags      []string
	Authors   []string
	SortField SortField
	SortAsc   bool
}

// Run computes the result set for one query state. Stages apply in a
// fixed order: text search, language filter, tag filter, author filter,
// sort. Every stage preserves catalog order and operates on copies, the
// catalog itself is never mutated.
func Run(c *catalog.Catalog, st State) []catalog.Book {
	books := searchText(c, st.Search)
	books = filterLanguages(books, st.Languages)
	books = filterTags(books, st.Tags)
	books = filterAuthors(books, st.Authors)
	return sortBooks(books, st.SortField, st.SortAsc)
}

// searchText keeps records whose lowercase title, author, or joined
// tags contain the trimmed, lowercased query as a plain substring.
func searchText(c *catalog.Catalog, search string) []catalog.Book {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return c.Books()
	}

	books := []catalog.Book{}
	for i := 0; i < c.Len(); i++ {
		if c.Matches(i, query) {
			books = append(books, c.Book(i))
		}
	}
	return books
}

// filterLanguages keeps records whose language is one of the selected
// values. Matching is exact and case sensitive.
func filterLanguages(books []catalog.Book, languages []string) []catalog.Book {
	if len(languages) == 0 {
		return books
	}

	selected := toSet(languages)
	kept := []catalog.Book{}
	for _, book := range books {
		if selected[book.Language] {
			kept = append(kept, book)
		}
	}
	return kept
}

// filterTags keeps records carrying at least one selected tag. Any
// selected tag matches, not all.
func filterTags(books []catalog.Book, tags []string) []catalog.Book {
	if len(tags) == 0 {
		return books
	}

	selected := toSet(tags)
	kept := []catalog.Book{}
	for _, book := range books {
		for _, tag := range book.Tags {
			if selected[tag] {
				kept = append(kept, book)
				break
			}
		}
	}
	return kept
}

// filterAuthors keeps records whose author is one of the selected
// values. Matching is exact and case sensitive.
func filterAuthors(books []catalog.Book, authors []string) []catalog.Book {
	if len(authors) == 0 {
		return books
	}

	selected := toSet(authors)
	kept := []catalog.Book{}
	for _, book := range books {
		if selected[book.Author] {
			kept = append(kept, book)
		}
	}
	return kept
}

// sortBooks stable-sorts a copy of books by the chosen field. An
// unknown field is a no-op. Records with an empty sort key go last
// regardless of direction.
func sortBooks(books []catalog.Book, field SortField, ascending bool) []catalog.Book {
	key := sortKey(field)
	if key == nil {
		return books
	}

	sorted := make([]catalog.Book, len(books))
	copy(sorted, books)

	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := key(sorted[i]), key(sorted[j])
		if ki == "" || kj == "" {
			return ki != "" && kj == ""
		}
		if ascending {
			return ki < kj
		}
		return kj < ki
	})

	return sorted
}

func sortKey(field SortField) func(catalog.Book) string {
	switch field {
	case SortTitle:
		return func(b catalog.Book) string { return b.Title }
	case SortAuthor:
		return func(b catalog.Book) string { return b.Author }
	case SortLanguage:
		return func(b catalog.Book) string { return b.Language }
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[value] = true
	}
	return set
}
