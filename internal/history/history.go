package history

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"

	"github.com/jhaapala/libris/internal/config"
)

// DefaultLimit is the number of distinct searches kept when no limit is configured
const DefaultLimit = 10

// Entry represents one recorded search
type Entry struct {
	Query      string
	ExecutedAt time.Time
}

// Store manages the SQLite database connection for search history
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

var (
	globalStore     *Store
	globalStoreOnce sync.Once
)

// ResetGlobalStore closes the current global store and resets the singleton
// so the next call to GetGlobalStore will create a new instance.
// This is primarily for testing purposes.
func ResetGlobalStore() error {
	if globalStore != nil {
		if err := globalStore.Close(); err != nil {
			return err
		}
	}
	globalStore = nil
	globalStoreOnce = sync.Once{}
	return nil
}

// GetGlobalStore returns the singleton history store instance
func GetGlobalStore() (*Store, error) {
	var initErr error
	globalStoreOnce.Do(func() {
		dbPath := viper.GetString("history.dbfile")
		if dbPath == "" {
			dbPath = "./history.db"
		}
		globalStore, initErr = NewStore(dbPath)
	})
	if initErr != nil {
		return nil, initErr
	}
	return globalStore, nil
}

// NewStore opens the history database and ensures the schema exists
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Keep the connection pool small, the history database is tiny
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to history database: %w", err), closeErr)
	}

	if _, err := db.Exec(Schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create history table: %w", err), closeErr)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Add records a search query. A repeated query moves to the front instead
// of duplicating, and the history is pruned down to limit entries.
func (s *Store) Add(query string, limit int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM search_history WHERE query = ?", query); err != nil {
		return fmt.Errorf("failed to drop duplicate history entry: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO search_history (query) VALUES (?)", query); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	pruneQuery := `
		DELETE FROM search_history
		WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY id DESC LIMIT ?
		)`
	if _, err := tx.Exec(pruneQuery, limit); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history transaction: %w", err)
	}

	slog.Debug("Recorded search in history", "query", query, "limit", limit)
	return nil
}

// Recent returns up to n history entries, newest first
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = DefaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT query, executed_at
		FROM search_history
		ORDER BY id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Query, &entry.ExecutedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}

// Clear removes all history entries and returns how many were deleted
func (s *Store) Clear() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM search_history")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsDeleted, nil
}

// Record stores a search in the global history unless history is disabled.
// A history failure is logged but never breaks the search itself.
func Record(query string) {
	if !config.HistoryEnabled {
		return
	}

	store, err := GetGlobalStore()
	if err != nil {
		slog.Warn("Failed to open search history, skipping", "error", err)
		return
	}

	if err := store.Add(query, config.HistoryLimit); err != nil {
		slog.Warn("Failed to record search history", "error", err)
	}
}
