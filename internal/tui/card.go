package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhaapala/libris/internal/catalog"
)

type cardStyles struct {
	card     lipgloss.Style
	title    lipgloss.Style
	author   lipgloss.Style
	metadata lipgloss.Style
}

func newCardStyles() cardStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	card := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	return cardStyles{
		card: card,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		author: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
		metadata: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

var bookCardStyles = newCardStyles()

// RenderCard renders one book as a bordered card. A non-positive width
// falls back to the default card width.
func RenderCard(book catalog.Book, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}

	title := book.Title
	if title == "" {
		title = "Untitled"
	}

	titleLine := bookCardStyles.title.Render(truncate(title, width))
	authorLine := bookCardStyles.author.Render(truncate(authorText(book), width))
	metadataLine := bookCardStyles.metadata.Render(truncate(metadataText(book), width))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, authorLine, metadataLine)
	return bookCardStyles.card.Render(content)
}

func authorText(book catalog.Book) string {
	if book.Author == "" {
		return "Unknown author"
	}
	return book.Author
}

func metadataText(book catalog.Book) string {
	var parts []string

	if book.Language != "" {
		parts = append(parts, strings.ToUpper(book.Language))
	}
	for _, tag := range book.Tags {
		parts = append(parts, "#"+tag)
	}

	if len(parts) == 0 {
		return "No metadata available"
	}
	return strings.Join(parts, " | ")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
