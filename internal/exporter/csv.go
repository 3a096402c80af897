package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/errors"
	"github.com/jhaapala/libris/internal/fileutil"
)

// csvHeader mirrors the canonical record fields. Tags are flattened
// into a single comma-joined column.
var csvHeader = []string{"title", "author", "language", "tags"}

// WriteCSV writes a result set as UTF-8 CSV with a header row,
// respecting the global overwrite flag. Failures come back as
// ExportErrors.
func WriteCSV(books []catalog.Book, path string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return errors.NewExportError(path, err)
	}
	for _, book := range books {
		row := []string{book.Title, book.Author, book.Language, strings.Join(book.Tags, ", ")}
		if err := writer.Write(row); err != nil {
			return errors.NewExportError(path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewExportError(path, err)
	}

	written, err := fileutil.WriteFileWithOverwrite(path, buf.Bytes(), 0644, config.OverwriteFiles)
	if err != nil {
		return errors.NewExportError(path, err)
	}

	fileutil.LogFileWriteResult(written, path)
	return nil
}
