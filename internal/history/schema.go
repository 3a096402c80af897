package history

// Schema defines the search history table. Queries are unique so a
// repeated search refreshes its position instead of duplicating.
const Schema = `
CREATE TABLE IF NOT EXISTS search_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL UNIQUE,
	executed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_search_history_executed_at ON search_history(executed_at);
`
