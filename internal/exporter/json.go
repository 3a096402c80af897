package exporter

import (
	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/errors"
	"github.com/jhaapala/libris/internal/fileutil"
)

// WriteJSON writes a result set as an indented JSON array, tags
// preserved as arrays, respecting the global overwrite flag. Failures
// come back as ExportErrors.
func WriteJSON(books []catalog.Book, path string) error {
	// An empty result must serialize as [], not null.
	if books == nil {
		books = []catalog.Book{}
	}

	_, err := fileutil.WriteJSONFile(books, path, config.OverwriteFiles)
	if err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}
