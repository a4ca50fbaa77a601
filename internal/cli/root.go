// Package cli provides the command-line interface for radicals.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/kangxi-radicals/internal/config"
	"github.com/raphaelgruber/kangxi-radicals/internal/db"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configPath string

	// Set up by PersistentPreRunE
	cfg      config.Config
	logger   = slog.Default()
	closeLog = func() error { return nil }

	// Only publish and show connect
	dbClient *db.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "radicals",
	Short: "Map Kangxi radicals to CJK ideographs",
	Long: `Radicals builds the master table of the 214 Kangxi radicals from the
Unicode Character Database.

For each radical it selects one intermediary CJK unified ideograph from the
Unihan radical-stroke index and lists the CJK Radicals Supplement characters
that are equivalent to it.

Configuration comes from RADICALS_* and SURREALDB_* environment variables,
optionally overlaid by a YAML file (--config or RADICALS_CONFIG). Flags
override both.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		path := configPath
		if path == "" {
			path = os.Getenv("RADICALS_CONFIG")
		}
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
			dbClient = nil
		}
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	},
}

// connectDB opens the SurrealDB connection and makes sure the schema exists.
func connectDB(ctx context.Context) (*db.Client, error) {
	if dbClient != nil {
		return dbClient, nil
	}
	client, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := client.InitSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	dbClient = client
	return dbClient, nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(showCmd)
}
