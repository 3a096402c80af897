// Package browse runs the interactive catalog browser.
package browse

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/history"
	"github.com/jhaapala/libris/internal/tui"
	"github.com/jhaapala/libris/internal/watch"
)

// BrowseCmd represents the browse command
type BrowseCmd struct {
	Watch bool `short:"w" help:"Reload the catalog when the data file changes" default:"false"`
}

func (b *BrowseCmd) Run() error {
	return BrowseFunc(Options{
		DataFile: config.DataFile,
		Watch:    b.Watch,
		Window:   config.DebounceWindow,
	})
}

var BrowseFunc = Browse

// Options holds configuration for the browse command.
type Options struct {
	// DataFile is the catalog file to browse
	DataFile string
	// Watch reloads the catalog when the data file changes
	Watch bool
	// Window is the debounce window for searches and reloads
	Window time.Duration
}

type programHandle interface {
	Send(tea.Msg)
	Run() (tea.Model, error)
}

var newProgram = func(m tea.Model) programHandle {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Browse loads the catalog and runs the TUI until the user quits.
// A load failure still opens the browser, over an empty catalog.
func Browse(opts Options) error {
	c, err := catalog.Load(opts.DataFile)
	if err != nil {
		slog.Warn("Failed to load catalog", "path", opts.DataFile, "error", err)
	}

	m := tui.NewBrowseModel(c, recentQueries(), opts.Window)
	p := newProgram(m)

	if opts.Watch {
		w, err := watch.New(opts.DataFile, opts.Window, func() {
			fresh, loadErr := catalog.Load(opts.DataFile)
			p.Send(tui.ReloadMsg{Catalog: fresh, Err: loadErr})
		})
		if err != nil {
			return fmt.Errorf("failed to start the file watcher: %w", err)
		}
		defer func() { _ = w.Close() }()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run the browser: %w", err)
	}
	return nil
}

func recentQueries() []string {
	if !config.HistoryEnabled {
		return nil
	}

	store, err := history.GetGlobalStore()
	if err != nil {
		slog.Warn("Failed to open search history", "error", err)
		return nil
	}

	entries, err := store.Recent(config.HistoryLimit)
	if err != nil {
		slog.Warn("Failed to read search history", "error", err)
		return nil
	}

	queries := make([]string, 0, len(entries))
	for _, entry := range entries {
		queries = append(queries, entry.Query)
	}
	return queries
}
