package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/errors"
)

func TestWriteJSON(t *testing.T) {
	restoreOverwrite(t)

	path := filepath.Join(t.TempDir(), "books.json")
	books := exportBooks()
	if err := WriteJSON(books, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}

	var decoded []catalog.Book
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, books) {
		t.Errorf("decoded = %+v, want %+v", decoded, books)
	}

	// Human-readable indentation and tags as a real array.
	if !strings.Contains(string(data), "\n  {") {
		t.Error("export should be indented")
	}
	if !strings.Contains(string(data), `"tags": [`) {
		t.Error("tags should serialize as a JSON array")
	}
}

func TestWriteJSONEmptyResult(t *testing.T) {
	restoreOverwrite(t)

	path := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteJSON(nil, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty export = %q, want []", data)
	}
}

func TestWriteJSONLoadRoundTrip(t *testing.T) {
	restoreOverwrite(t)

	books := []catalog.Book{
		{Title: "Dune", Author: "Frank Herbert", Language: "en", Tags: []string{"scifi", "classic"}},
		{Title: "Leaves of Grass", Author: "Walt Whitman", Language: "en", Tags: []string{}},
	}

	path := filepath.Join(t.TempDir(), "roundtrip.json")
	if err := WriteJSON(books, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("failed to load export: %v", err)
	}
	if !reflect.DeepEqual(loaded.Books(), books) {
		t.Errorf("loaded = %+v, want the exported records", loaded.Books())
	}
}

func TestWriteJSONReportsIOError(t *testing.T) {
	restoreOverwrite(t)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	err := WriteJSON(exportBooks(), filepath.Join(blocker, "out.json"))
	if err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
	if !errors.IsExport(err) {
		t.Errorf("error should be an ExportError, got %v", err)
	}
}
