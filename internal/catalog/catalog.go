package catalog

import "strings"

// Book is a single catalog record.
type Book struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Language string   `json:"language"`
	Tags     []string `json:"tags"`
}

// searchKey holds the lowercase projections of one record, computed once
// when the catalog is built and used only by text search.
type searchKey struct {
	title  string
	author string
	tags   string
}

// Catalog is an ordered, immutable set of book records with precomputed
// search keys.
type Catalog struct {
	books []Book
	keys  []searchKey
}

// New builds a catalog from records, normalizing nil tag slices to empty
// ones so every record carries a sequence.
func New(books []Book) *Catalog {
	c := &Catalog{
		books: make([]Book, len(books)),
		keys:  make([]searchKey, len(books)),
	}
	copy(c.books, books)

	for i := range c.books {
		if c.books[i].Tags == nil {
			c.books[i].Tags = []string{}
		}
		c.keys[i] = searchKey{
			title:  strings.ToLower(c.books[i].Title),
			author: strings.ToLower(c.books[i].Author),
			tags:   strings.ToLower(strings.Join(c.books[i].Tags, " ")),
		}
	}

	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Book returns the record at index i.
func (c *Catalog) Book(i int) Book {
	return c.books[i]
}

// Books returns a copy of all records in catalog order.
func (c *Catalog) Books() []Book {
	books := make([]Book, len(c.books))
	copy(books, c.books)
	return books
}

// Matches reports whether query is a substring of the record's lowercase
// title, author, or space-joined tags. The query must already be
// lowercased and trimmed.
func (c *Catalog) Matches(i int, query string) bool {
	k := c.keys[i]
	return strings.Contains(k.title, query) ||
		strings.Contains(k.author, query) ||
		strings.Contains(k.tags, query)
}
