// Package convert normalizes a legacy catalog file into canonical JSON.
package convert

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/exporter"
)

// ConvertCmd represents the convert command
type ConvertCmd struct {
	Input  string `arg:"" help:"Catalog file to convert (JSON with legacy keys, or CSV)"`
	Output string `short:"o" help:"Destination JSON file" default:"books.json"`
}

func (c *ConvertCmd) Run() error {
	return ConvertFunc(Options{
		Input:  c.Input,
		Output: c.Output,
	})
}

var ConvertFunc = Convert

// Options holds configuration for the convert command.
type Options struct {
	Input  string
	Output string
}

// Convert loads a catalog in any supported shape and writes it back as
// canonical JSON. Legacy German field names and scalar tag values are
// normalized by the loader.
func Convert(opts Options) error {
	var (
		c   *catalog.Catalog
		err error
	)
	if strings.EqualFold(filepath.Ext(opts.Input), ".csv") {
		c, err = catalog.LoadCSV(opts.Input)
	} else {
		c, err = catalog.Load(opts.Input)
	}
	if err != nil {
		return err
	}

	slog.Info("Converting catalog", "input", opts.Input, "output", opts.Output, "books", c.Len())
	return exporter.WriteJSON(c.Books(), opts.Output)
}
