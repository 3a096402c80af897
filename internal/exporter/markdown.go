package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/errors"
	"github.com/jhaapala/libris/internal/fileutil"
	"github.com/jhaapala/libris/internal/note"
)

// WriteMarkdown writes one markdown note per book into outputDir,
// respecting the global overwrite flag. Books without a title are
// skipped with a warning.
func WriteMarkdown(books []catalog.Book, outputDir string) error {
	for _, book := range books {
		if book.Title == "" {
			slog.Warn("Skipping book without a title", "author", book.Author)
			continue
		}
		if err := writeBookNote(book, outputDir); err != nil {
			return err
		}
	}
	return nil
}

func writeBookNote(book catalog.Book, outputDir string) error {
	path := fileutil.GetMarkdownFilePath(book.Title, outputDir)

	tags := note.NewTagSet()
	for _, tag := range book.Tags {
		tags.Add(tag)
	}
	tags.AddIf(book.Language != "", "lang/"+book.Language)

	fm := note.NewFrontmatterWithTitle(book.Title)
	if book.Author != "" {
		fm.Set("author", book.Author)
	}
	if book.Language != "" {
		fm.Set("language", book.Language)
	}

	body := defaultBody(book)

	// When overwriting an existing note, keep the body the user wrote
	// and merge any tags they added by hand.
	if config.OverwriteFiles && fileutil.FileExists(path) {
		if existing, err := os.ReadFile(path); err == nil {
			if parsed, err := note.ParseMarkdown(existing); err == nil {
				merged := note.MergeTags(parsed.Frontmatter.GetStringArray("tags"), tags.GetSorted())
				fm.Set("tags", merged)
				if strings.TrimSpace(parsed.Body) != "" {
					body = parsed.Body
				}
			}
		}
	}

	if _, ok := fm.Get("tags"); !ok {
		note.ApplyTagSet(fm, tags)
	}

	content, err := note.BuildNoteMarkdown(fm, body)
	if err != nil {
		return errors.NewExportError(path, err)
	}

	if err := fileutil.WriteMarkdownFile(path, string(content)+"\n", config.OverwriteFiles); err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}

func defaultBody(book catalog.Book) string {
	var sb strings.Builder
	sb.WriteString("# " + book.Title + "\n")
	if book.Author != "" {
		sb.WriteString(fmt.Sprintf("\nBy %s.\n", book.Author))
	}
	return sb.String()
}
