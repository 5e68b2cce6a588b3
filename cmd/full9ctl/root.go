package main

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"

	"github.com/kingpotter-hr/full9-website/internal/config"
	"github.com/kingpotter-hr/full9-website/internal/repository"
	"github.com/kingpotter-hr/full9-website/internal/repository/sqlite"
)

// storeOptions selects the datastore. Empty flags fall back to the same
// environment variables the API server reads.
type storeOptions struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"full9.db"`
}

var storeFlags storeOptions

var rootCmd = &cobra.Command{
	Use:   "full9ctl",
	Short: "Operate the Full 9 site backend",
	Long: `full9ctl prepares the datastore, manages admin passwords and
issues or inspects admin tokens for debugging.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlags.Driver, "driver", "", "Datastore driver: postgres or sqlite (env DATABASE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&storeFlags.DatabaseURL, "database-url", "", "Postgres connection URL (env DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&storeFlags.SQLitePath, "sqlite-path", "", "SQLite database file (env SQLITE_PATH)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(genSecretCmd)
	rootCmd.AddCommand(issueTokenCmd)
	rootCmd.AddCommand(verifyTokenCmd)
}

// resolveStoreOptions merges flags over environment defaults.
func resolveStoreOptions() (storeOptions, error) {
	var opts storeOptions
	if err := env.Parse(&opts); err != nil {
		return opts, fmt.Errorf("parse environment: %w", err)
	}
	if storeFlags.Driver != "" {
		opts.Driver = storeFlags.Driver
	}
	if storeFlags.DatabaseURL != "" {
		opts.DatabaseURL = storeFlags.DatabaseURL
	}
	if storeFlags.SQLitePath != "" {
		opts.SQLitePath = storeFlags.SQLitePath
	}
	return opts, nil
}

// openStore connects the selected datastore. Callers must Close it.
func openStore(ctx context.Context) (repository.Store, error) {
	opts, err := resolveStoreOptions()
	if err != nil {
		return nil, err
	}

	switch opts.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", opts.SQLitePath, err)
		}
		return s, nil
	case config.DriverPostgres:
		if opts.DatabaseURL == "" {
			return nil, config.ErrMissingDatabaseURL
		}
		repo, err := repository.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, opts.Driver)
	}
}
