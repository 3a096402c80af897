package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jhaapala/libris/internal/errors"
)

// LoadCSV reads book records from a CSV file with a header row. Header
// names are matched case-insensitively and legacy German names are
// accepted. Rows that cannot be read are skipped with a warning.
func LoadCSV(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return New(nil), errors.NewDataLoadError(path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return New(nil), errors.NewDataLoadError(path, err)
	}

	columns, err := headerColumns(header)
	if err != nil {
		return New(nil), errors.NewDataParseError(path, err)
	}

	var books []Book
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping unreadable CSV row", "path", path, "error", err)
			continue
		}

		books = append(books, Book{
			Title:    columnValue(record, columns, "title"),
			Author:   columnValue(record, columns, "author"),
			Language: columnValue(record, columns, "language"),
			Tags:     splitTags(columnValue(record, columns, "tags")),
		})
	}

	slog.Debug("Loaded catalog from CSV", "path", path, "books", len(books))
	return New(books), nil
}

// headerColumns maps canonical field names to column indexes. Only the
// title column is required.
func headerColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for canonical, legacy := range legacyFieldNames {
			if name == canonical || name == legacy {
				if _, ok := columns[canonical]; !ok {
					columns[canonical] = i
				}
			}
		}
	}

	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("header has no title column: %v", header)
	}
	return columns, nil
}

func columnValue(record []string, columns map[string]int, field string) string {
	i, ok := columns[field]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func splitTags(str string) []string {
	if str == "" {
		return nil
	}
	parts := strings.Split(str, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
