package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/jhaapala/libris/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	DataFile       string
	PageSize       int
	DebounceWindow time.Duration
	HistoryDBFile  string
	HistoryLimit   int
	HistoryEnabled bool
	OverwriteFiles bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		DataFile:       config.DataFile,
		PageSize:       config.PageSize,
		DebounceWindow: config.DebounceWindow,
		HistoryDBFile:  config.HistoryDBFile,
		HistoryLimit:   config.HistoryLimit,
		HistoryEnabled: config.HistoryEnabled,
		OverwriteFiles: config.OverwriteFiles,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.DataFile = state.DataFile
	config.PageSize = state.PageSize
	config.DebounceWindow = state.DebounceWindow
	config.HistoryDBFile = state.HistoryDBFile
	config.HistoryLimit = state.HistoryLimit
	config.HistoryEnabled = state.HistoryEnabled
	config.OverwriteFiles = state.OverwriteFiles
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults.
// It saves the current state and restores it when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.DataFile = "./books.json"
	config.PageSize = 50
	config.DebounceWindow = 300 * time.Millisecond
	config.HistoryEnabled = false
	config.OverwriteFiles = true

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	dataFile       string
	pageSize       int
	overwriteFiles bool
	historyEnabled bool
}

// WithDataFile sets the catalog data file path.
func WithDataFile(path string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.dataFile = path
	}
}

// WithPageSize sets the page size option.
func WithPageSize(size int) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.pageSize = size
	}
}

// WithOverwriteFiles sets the OverwriteFiles option.
func WithOverwriteFiles(v bool) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.overwriteFiles = v
	}
}

// WithHistoryEnabled sets the HistoryEnabled option.
func WithHistoryEnabled(v bool) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.historyEnabled = v
	}
}

// SetTestConfigWithOptions sets up a test configuration with custom options.
// It saves the current state and restores it when the test completes.
func SetTestConfigWithOptions(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	options := testConfigOptions{
		dataFile:       "./books.json",
		pageSize:       50,
		overwriteFiles: true,
		historyEnabled: false,
	}

	for _, opt := range opts {
		opt(&options)
	}

	config.DataFile = options.dataFile
	config.PageSize = options.pageSize
	config.DebounceWindow = 300 * time.Millisecond
	config.HistoryEnabled = options.historyEnabled
	config.OverwriteFiles = options.overwriteFiles

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state. This is a known limitation.
	})
}

// SetupTestHistory points the search history at a database inside the
// test environment and keeps the entry limit small.
func SetupTestHistory(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("test-history.db")

	SetViperValue(t, "history.dbfile", dbPath)
	SetViperValue(t, "history.limit", 10)

	return dbPath
}

// SetupMarkdownOutput points markdown exports at the test environment.
func SetupMarkdownOutput(t *testing.T, env *TestEnv) {
	t.Helper()

	SetViperValue(t, "markdownoutputdir", env.RootDir())
}

// SetupJSONOutput points JSON exports at the test environment.
func SetupJSONOutput(t *testing.T, env *TestEnv) {
	t.Helper()

	SetViperValue(t, "jsonoutputdir", env.RootDir())
}
