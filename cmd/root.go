package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jorro/reelstats/config"
	"github.com/jorro/reelstats/csvload"
	"github.com/jorro/reelstats/report"
	"github.com/jorro/reelstats/store"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	Dataset    string
	LogFile    string
	LogLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "reelstats",
	Short: "Reelstats answers analytical questions about a media catalog",
	Long:  `Reelstats loads a flat media catalog export once and runs a fixed set of analytical reports against it: content mix, country and genre rankings, actor appearances, keyword categorization and more.`,
	Example: `reelstats list
  reelstats run top-countries --n 10
  reelstats run by-director --name "Scorsese"
  reelstats serve --config config.yml`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setLogLevel(rootCmdPersistentFlags.LogLevel)
		logToFile()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.reelstats, /etc/reelstats)")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.Dataset, "dataset", "d", "", "Path to the catalog CSV file - overrides config file setting")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

// Execute runs the CLI.
func Execute() error {
	return fang.Execute(context.Background(), rootCmd)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "":
		log.SetLevel(log.InfoLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
}

// loadCatalog builds the report catalog from config and the dataset file.
func loadCatalog() (*config.Config, *report.Catalog, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LogLevel != "" && rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}
	if rootCmdPersistentFlags.Dataset != "" {
		cfg.Dataset = rootCmdPersistentFlags.Dataset
	}

	records, err := csvload.LoadFile(cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}

	catalog := report.New(store.New(records), reportDefaults(cfg))
	return cfg, catalog, nil
}

func reportDefaults(cfg *config.Config) report.Defaults {
	defaults := report.StandardDefaults()
	if cfg.Reports == nil {
		return defaults
	}
	defaults.TopCountries = cfg.Reports.TopCountries
	defaults.TopActors = cfg.Reports.TopActors
	defaults.RecentYears = cfg.Reports.RecentYears
	defaults.ActorRecentYears = cfg.Reports.ActorRecentYears
	defaults.MinSeasons = cfg.Reports.MinSeasons
	defaults.ShareTopYears = cfg.Reports.ShareTopYears
	return defaults
}
