package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// DataFile is the path to the catalog JSON file
	DataFile string
	// PageSize is the number of books shown per result page
	PageSize int
	// DebounceWindow is how long search input must settle before a query runs
	DebounceWindow time.Duration
	// HistoryDBFile is the path to the search history database
	HistoryDBFile string
	// HistoryLimit is the number of distinct searches kept in history
	HistoryLimit int
	// HistoryEnabled controls whether searches are recorded in history
	HistoryEnabled bool
	// OverwriteFiles controls whether existing export files should be overwritten
	OverwriteFiles bool
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("datafile", "./books.json")
	viper.SetDefault("pagesize", 50)
	viper.SetDefault("debounce", "300ms")
	viper.SetDefault("history.dbfile", "./history.db")
	viper.SetDefault("history.limit", 10)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("overwritefiles", false)
	viper.SetDefault("markdownoutputdir", "markdown")
	viper.SetDefault("jsonoutputdir", "json")

	// Get values from viper
	DataFile = viper.GetString("datafile")
	PageSize = viper.GetInt("pagesize")
	DebounceWindow = viper.GetDuration("debounce")
	HistoryDBFile = viper.GetString("history.dbfile")
	HistoryLimit = viper.GetInt("history.limit")
	HistoryEnabled = viper.GetBool("history.enabled")
	OverwriteFiles = viper.GetBool("overwritefiles")
}

// SetDataFile sets the catalog file path
func SetDataFile(path string) {
	DataFile = path
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetHistoryDBFile sets the search history database path
func SetHistoryDBFile(path string) {
	HistoryDBFile = path
}

// SetHistoryEnabled toggles search history recording
func SetHistoryEnabled(enabled bool) {
	HistoryEnabled = enabled
}
