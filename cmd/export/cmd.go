// Package export writes query results to CSV, JSON or markdown notes.
package export

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/exporter"
	"github.com/jhaapala/libris/internal/query"
)

// ExportCmd represents the export command
type ExportCmd struct {
	Query     string   `short:"q" help:"Search text matched against title, author and tags"`
	Languages []string `short:"l" name:"language" help:"Keep only books in these languages (exact match, repeatable)"`
	Tags      []string `short:"t" name:"tag" help:"Keep only books carrying any of these tags (repeatable)"`
	Authors   []string `short:"a" name:"author" help:"Keep only books by these authors (exact match, repeatable)"`
	Sort      string   `short:"s" help:"Sort field: title, author or language"`
	Desc      bool     `help:"Sort in descending order" default:"false"`
	Format    string   `short:"F" help:"Output format" enum:"csv,json,markdown" default:"json"`
	Output    string   `short:"o" help:"Output file, or directory for markdown (defaults follow the config)"`
}

func (e *ExportCmd) Run() error {
	opts := Options{
		DataFile: config.DataFile,
		State: query.State{
			Search:    e.Query,
			Languages: e.Languages,
			Tags:      e.Tags,
			Authors:   e.Authors,
			SortField: query.SortField(e.Sort),
			SortAsc:   !e.Desc,
		},
		Format: e.Format,
		Output: e.Output,
	}

	return ExportFunc(opts)
}

var ExportFunc = Export

// Options holds configuration for the export command.
type Options struct {
	// DataFile is the catalog file to export from
	DataFile string
	// State describes the query pipeline stages
	State query.State
	// Format selects the exporter: csv, json or markdown
	Format string
	// Output is the destination file, or directory for markdown.
	// Empty falls back to the configured output directories.
	Output string
}

// Export loads the catalog, runs the query pipeline and hands the
// result to the matching exporter.
func Export(opts Options) error {
	c, err := catalog.Load(opts.DataFile)
	if err != nil {
		return err
	}

	books := query.Run(c, opts.State)

	output := opts.Output
	switch opts.Format {
	case "csv":
		if output == "" {
			output = "books.csv"
		}
	case "json":
		if output == "" {
			output = filepath.Join(viper.GetString("jsonoutputdir"), "books.json")
		}
	case "markdown":
		if output == "" {
			output = viper.GetString("markdownoutputdir")
		}
	default:
		return fmt.Errorf("unknown export format: %s", opts.Format)
	}

	slog.Info("Exporting books", "count", len(books), "format", opts.Format, "output", output)

	switch opts.Format {
	case "csv":
		return exporter.WriteCSV(books, output)
	case "json":
		return exporter.WriteJSON(books, output)
	default:
		return exporter.WriteMarkdown(books, output)
	}
}
