package history

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/viper"
)

// ShowCmd represents the history show subcommand
type ShowCmd struct {
	Limit int `help:"Maximum number of entries to show" default:"10"`
}

func (s *ShowCmd) Run() error {
	store, err := GetGlobalStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	return writeRecent(os.Stdout, store, s.Limit)
}

func writeRecent(w io.Writer, store *Store, limit int) error {
	entries, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", entry.ExecutedAt.Format("2006-01-02 15:04"), entry.Query)
	}
	return tw.Flush()
}

// ClearCmd represents the history clear subcommand
type ClearCmd struct{}

func (c *ClearCmd) Run() error {
	slog.Info("Clearing search history", "database", viper.GetString("history.dbfile"))

	store, err := GetGlobalStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	rowsDeleted, err := store.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	slog.Info("Search history cleared", "rows_deleted", rowsDeleted)
	return nil
}
