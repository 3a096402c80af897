package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jhaapala/libris/internal/errors"
)

// Older exports use German field names. The loader renames them to the
// canonical scheme; a canonical key wins when both are present.
var legacyFieldNames = map[string]string{
	"title":    "titel",
	"author":   "autor",
	"language": "sprache",
	"tags":     "schlagwörter",
}

// Load reads a JSON array of book records from path. On failure it
// returns an empty catalog together with a DataLoadError so callers can
// keep rendering while reporting the problem.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return New(nil), errors.NewDataLoadError(path, err)
	}

	books, err := decodeBooks(data)
	if err != nil {
		return New(nil), errors.NewDataLoadError(path, err)
	}

	slog.Debug("Loaded catalog", "path", path, "books", len(books))
	return New(books), nil
}

func decodeBooks(data []byte) ([]Book, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, Book{
			Title:    stringField(row, "title"),
			Author:   stringField(row, "author"),
			Language: stringField(row, "language"),
			Tags:     tagsField(row),
		})
	}
	return books, nil
}

func stringField(row map[string]json.RawMessage, name string) string {
	raw, ok := row[name]
	if !ok {
		raw, ok = row[legacyFieldNames[name]]
	}
	if !ok {
		return ""
	}
	return asString(raw)
}

func tagsField(row map[string]json.RawMessage) []string {
	raw, ok := row["tags"]
	if !ok {
		raw, ok = row[legacyFieldNames["tags"]]
	}
	if !ok {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		// Not a sequence, coerce to an empty one.
		return []string{}
	}

	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

// asString accepts JSON strings directly and stringifies scalar numbers
// and booleans. Anything else, including null, becomes the empty string.
func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprintf("%t", b)
	}

	return ""
}
