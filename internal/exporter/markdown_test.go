package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/fileutil"
	"github.com/jhaapala/libris/internal/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMarkdown(t *testing.T) {
	testDir := t.TempDir()
	restoreOverwrite(t)
	config.SetOverwriteFiles(true)

	testCases := []struct {
		name     string
		book     catalog.Book
		wantFile string
	}{
		{
			name: "full_book",
			book: catalog.Book{
				Title:    "Dune",
				Author:   "Frank Herbert",
				Language: "en",
				Tags:     []string{"scifi", "classic"},
			},
			wantFile: "dune.md",
		},
		{
			name: "minimal_book",
			book: catalog.Book{
				Title: "Minimal Book",
			},
			wantFile: "minimal_book.md",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			goldenFilePath := filepath.Join("testdata", tc.wantFile)

			err := WriteMarkdown([]catalog.Book{tc.book}, testDir)
			require.NoError(t, err)

			generatedFilePath := filepath.Join(testDir, fileutil.SanitizeFilename(tc.book.Title)+".md")
			generated, err := os.ReadFile(generatedFilePath)
			require.NoError(t, err)

			if os.Getenv("UPDATE_GOLDEN") == "true" {
				require.NoError(t, os.MkdirAll(filepath.Dir(goldenFilePath), 0755))
				require.NoError(t, os.WriteFile(goldenFilePath, generated, 0644))
			}

			golden, err := os.ReadFile(goldenFilePath)
			require.NoError(t, err)

			assert.Equal(t, string(golden), string(generated))
		})
	}
}

func TestWriteMarkdownSanitizesFilename(t *testing.T) {
	testDir := t.TempDir()
	restoreOverwrite(t)
	config.SetOverwriteFiles(true)

	book := catalog.Book{Title: "Dune: Messiah", Author: "Frank Herbert", Language: "en", Tags: []string{"scifi"}}
	require.NoError(t, WriteMarkdown([]catalog.Book{book}, testDir))

	path := filepath.Join(testDir, "Dune - Messiah.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The frontmatter keeps the unsanitized title.
	parsed, err := note.ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, "Dune: Messiah", parsed.Frontmatter.GetString("title"))
}

func TestWriteMarkdownMergesExistingNote(t *testing.T) {
	testDir := t.TempDir()
	restoreOverwrite(t)
	config.SetOverwriteFiles(true)

	existing := `---
tags: [my-own-tag]
title: Dune
---
My personal reading notes.
`
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "Dune.md"), []byte(existing), 0644))

	book := catalog.Book{Title: "Dune", Author: "Frank Herbert", Language: "en", Tags: []string{"scifi"}}
	require.NoError(t, WriteMarkdown([]catalog.Book{book}, testDir))

	data, err := os.ReadFile(filepath.Join(testDir, "Dune.md"))
	require.NoError(t, err)

	parsed, err := note.ParseMarkdown(data)
	require.NoError(t, err)

	tags := parsed.Frontmatter.GetStringArray("tags")
	assert.Contains(t, tags, "my-own-tag")
	assert.Contains(t, tags, "scifi")
	assert.Contains(t, tags, "lang/en")
	assert.Contains(t, parsed.Body, "My personal reading notes.")
	assert.Equal(t, "Frank Herbert", parsed.Frontmatter.GetString("author"))
}

func TestWriteMarkdownSkipsWithoutOverwrite(t *testing.T) {
	testDir := t.TempDir()
	restoreOverwrite(t)
	config.SetOverwriteFiles(false)

	original := "untouched note content\n"
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "Dune.md"), []byte(original), 0644))

	book := catalog.Book{Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, WriteMarkdown([]catalog.Book{book}, testDir))

	data, err := os.ReadFile(filepath.Join(testDir, "Dune.md"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestWriteMarkdownSkipsUntitledBooks(t *testing.T) {
	testDir := t.TempDir()
	restoreOverwrite(t)

	err := WriteMarkdown([]catalog.Book{{Author: "Anonymous"}}, testDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(testDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDefaultBody(t *testing.T) {
	body := defaultBody(catalog.Book{Title: "Dune", Author: "Frank Herbert"})
	assert.True(t, strings.HasPrefix(body, "# Dune\n"))
	assert.Contains(t, body, "By Frank Herbert.")

	noAuthor := defaultBody(catalog.Book{Title: "Dune"})
	assert.Equal(t, "# Dune\n", noAuthor)
}
