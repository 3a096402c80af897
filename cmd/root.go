package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/jhaapala/libris/cmd/browse"
	"github.com/jhaapala/libris/cmd/convert"
	"github.com/jhaapala/libris/cmd/export"
	"github.com/jhaapala/libris/cmd/search"
	"github.com/jhaapala/libris/cmd/values"
	"github.com/jhaapala/libris/internal/config"
	"github.com/jhaapala/libris/internal/history"
)

// CLI represents the complete command structure for the libris application
type CLI struct {
	// Global flags
	Datafile  string `short:"f" help:"Path to the catalog file (overrides the configured datafile)"`
	Overwrite bool   `help:"Overwrite existing files when exporting"`
	HistoryDB string `help:"Path to the search history SQLite database"`
	NoHistory bool   `help:"Disable search history recording"`

	Search  search.SearchCmd   `cmd:"" help:"Search the catalog and print one page of results"`
	Browse  browse.BrowseCmd   `cmd:"" help:"Browse the catalog in an interactive terminal UI"`
	Export  export.ExportCmd   `cmd:"" help:"Export query results to CSV, JSON or markdown notes"`
	Values  values.ValuesCmd   `cmd:"" help:"List the distinct values of a catalog field"`
	Convert convert.ConvertCmd `cmd:"" help:"Convert a legacy catalog file to canonical JSON"`
	History HistoryCmd         `cmd:"" help:"Inspect or clear the search history"`
}

// HistoryCmd groups the search history subcommands
type HistoryCmd struct {
	Show  history.ShowCmd  `cmd:"" help:"Show recent searches"`
	Clear history.ClearCmd `cmd:"" help:"Delete all recorded searches"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("libris"),
		kong.Description("A tool to search, browse and export a personal book catalog."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("datafile", "./books.json")
	viper.SetDefault("pagesize", 50)
	viper.SetDefault("debounce", "300ms")
	viper.SetDefault("overwritefiles", false)
	viper.SetDefault("markdownoutputdir", "markdown")
	viper.SetDefault("jsonoutputdir", "json")

	// History defaults
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.dbfile", "./history.db")
	viper.SetDefault("history.limit", history.DefaultLimit)

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("datafile", "LIBRIS_DATAFILE"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Flags only override the config file when actually given
	if cli.Datafile != "" {
		config.SetDataFile(cli.Datafile)
	}
	if cli.Overwrite {
		config.SetOverwriteFiles(true)
	}
	if cli.HistoryDB != "" {
		config.SetHistoryDBFile(cli.HistoryDB)
		viper.Set("history.dbfile", cli.HistoryDB)
	}
	if cli.NoHistory {
		config.SetHistoryEnabled(false)
	}
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LIBRIS_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
