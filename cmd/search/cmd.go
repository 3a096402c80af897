// Package search provides the one-shot catalog search command.
package search

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/history"
	"github.com/jhaapala/libris/internal/query"
	"github.com/jhaapala/libris/internal/tui"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query     string   `short:"q" help:"Search text matched against title, author and tags"`
	Languages []string `short:"l" name:"language" help:"Keep only books in these languages (exact match, repeatable)"`
	Tags      []string `short:"t" name:"tag" help:"Keep only books carrying any of these tags (repeatable)"`
	Authors   []string `short:"a" name:"author" help:"Keep only books by these authors (exact match, repeatable)"`
	Sort      string   `short:"s" help:"Sort field: title, author or language"`
	Desc      bool     `help:"Sort in descending order" default:"false"`
	Page      int      `short:"p" help:"Page to print (1-based)" default:"1"`
	PageSize  int      `help:"Books per page (defaults to the configured pagesize)"`
	Plain     bool     `help:"Print plain lines instead of styled cards" default:"false"`
}

func (s *SearchCmd) Run() error {
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = config.PageSize
	}

	opts := Options{
		DataFile: config.DataFile,
		State: query.State{
			Search:    s.Query,
			Languages: s.Languages,
			Tags:      s.Tags,
			Authors:   s.Authors,
			SortField: query.SortField(s.Sort),
			SortAsc:   !s.Desc,
		},
		Page:     s.Page - 1,
		PageSize: pageSize,
		Plain:    s.Plain,
		Out:      os.Stdout,
	}

	return SearchFunc(opts)
}

var SearchFunc = Search

// Options holds configuration for the search command.
type Options struct {
	// DataFile is the catalog file to search
	DataFile string
	// State describes the query pipeline stages
	State query.State
	// Page is the 0-based page to print
	Page int
	// PageSize is the number of books per page
	PageSize int
	// Plain prints pipe separated lines instead of cards
	Plain bool
	// Out receives the formatted results
	Out io.Writer
}

// Search loads the catalog, runs the query pipeline and prints one page.
func Search(opts Options) error {
	c, err := catalog.Load(opts.DataFile)
	if err != nil {
		return err
	}

	books := query.Run(c, opts.State)

	page := opts.Page
	if page < 0 {
		page = 0
	}
	pageBooks, totalPages := query.Paginate(books, opts.PageSize, page)
	if page > totalPages-1 {
		page = totalPages - 1
		pageBooks, totalPages = query.Paginate(books, opts.PageSize, page)
	}

	if opts.Plain {
		printPlain(opts.Out, pageBooks)
	} else {
		printCards(opts.Out, pageBooks)
	}

	fmt.Fprintf(opts.Out, "Found %d books (page %d/%d)\n", len(books), page+1, totalPages)

	history.Record(opts.State.Search)
	return nil
}

func printPlain(w io.Writer, books []catalog.Book) {
	for _, book := range books {
		fmt.Fprintf(w, "%s | %s | %s | %s\n",
			book.Title, book.Author, book.Language, strings.Join(book.Tags, ", "))
	}
}

func printCards(w io.Writer, books []catalog.Book) {
	for _, book := range books {
		fmt.Fprintln(w, tui.RenderCard(book, 0))
	}
}
