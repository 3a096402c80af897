package query

import "github.com/jhaapala/libris/internal/catalog"

// Paginate slices a result set into fixed-size pages. Page indexes are
// zero based and not clamped here, an out-of-range page yields an empty
// slice. Total pages is at least 1 so an empty result still renders as
// a single empty page.
func Paginate(books []catalog.Book, pageSize, page int) ([]catalog.Book, int) {
	if pageSize <= 0 {
		return []catalog.Book{}, 1
	}

	totalPages := (len(books) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := page * pageSize
	if page < 0 || start >= len(books) {
		return []catalog.Book{}, totalPages
	}

	end := start + pageSize
	if end > len(books) {
		end = len(books)
	}

	pageSlice := make([]catalog.Book, end-start)
	copy(pageSlice, books[start:end])
	return pageSlice, totalPages
}
