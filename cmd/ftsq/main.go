// Package main is the entry point for the ftsq CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/ftsq/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile      string
	dataDir      string
	dbURL        string
	sqliteDriver string
	schemaFile   string
	logLevel     string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "ftsq",
		Short: "Full-text search tables for SQLite",
		Long: `ftsq declares SQLite FTS3, FTS4 and FTS5 virtual tables, loads documents
into them and runs match, match_startswith and match_near lookups. Tables and
lookups the database cannot serve are hidden rather than failing.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Data directory (default: ~/.ftsq)")
	pf.StringVar(&flags.dbURL, "db-url", "", "Database URL (default: sqlite:///{data_dir}/ftsq.db)")
	pf.StringVar(&flags.sqliteDriver, "sqlite-driver", "", "SQLite driver: sqlite or sqlite3 (default: sqlite)")
	pf.StringVar(&flags.schemaFile, "schema-file", "", "YAML file declaring the FTS tables")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (default: INFO)")

	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(tablesCmd(flags))
	cmd.AddCommand(addCmd(flags))
	cmd.AddCommand(searchCmd(flags))
	cmd.AddCommand(capabilitiesCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file and environment, then
// applies flag overrides.
func loadConfig(flags *globalFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(flags.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return applyOverrides(cfg, flags), nil
}

// applyOverrides applies command line flag overrides to the config.
func applyOverrides(cfg config.AppConfig, flags *globalFlags) config.AppConfig {
	var opts []config.AppConfigOption

	if flags.dataDir != "" {
		opts = append(opts, config.WithDataDir(flags.dataDir))
	}
	if flags.dbURL != "" {
		opts = append(opts, config.WithDBURL(flags.dbURL))
	}
	if flags.sqliteDriver != "" {
		opts = append(opts, config.WithSQLiteDriver(flags.sqliteDriver))
	}
	if flags.schemaFile != "" {
		opts = append(opts, config.WithSchemaFile(flags.schemaFile))
	}
	if flags.logLevel != "" {
		opts = append(opts, config.WithLogLevel(flags.logLevel))
	}

	return cfg.Apply(opts...)
}
