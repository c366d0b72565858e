package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chris/catsort/internal/config"
	"github.com/chris/catsort/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	quiet      bool

	// Set by loadSettings before any command runs
	cfg    = config.DefaultConfig()
	logger = logging.NewDiscard()
)

var rootCmd = &cobra.Command{
	Use:               "catsort",
	Short:             "Rank site categories by size",
	Long:              "A command-line tool that stores posts in SQLite and renders category listings sorted largest first",
	Version:           CatsortVersion,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.local/share/catsort/site.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/catsort/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
}

// loadSettings reads the config file and builds the logger. Flags win over config.
func loadSettings(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger = logging.New(cmd.ErrOrStderr(), logging.Level(level, quiet))
	logger.Debug("loaded configuration", "config", configPath, "db", databasePath(), slog.String("level", level))

	return nil
}

// databasePath returns the --db flag, falling back to the configured path
func databasePath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DB
}

// isTerminal returns true if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
