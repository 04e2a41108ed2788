package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/SpecHunter/internal/config"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var (
	flagConfig      string
	flagDatabaseURL string
)

var rootCmd = &cobra.Command{
	Use:          "spechunterctl",
	Short:        "Rank, explain and compare catalog items from the command line",
	SilenceUsage: true,
	Long: `spechunterctl scores the SpecHunter catalog with the same engine as the
server. It reads the built-in seed catalog unless a database URL is given.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("SPECHUNTER_CONFIG"), "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL catalog (overrides config)")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if flagDatabaseURL != "" {
		cfg.Database.URL = flagDatabaseURL
	}
	return cfg, nil
}

// openCatalog returns the seed catalog or, when a database URL is set, the
// Postgres catalog. The caller closes it.
func openCatalog(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Database.URL == "" {
		return store.NewMemoryStore(store.SeedCatalog()), nil
	}
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func listCatalog(ctx context.Context, cfg *config.Config) ([]store.Item, error) {
	c, err := openCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.ListItems(ctx)
}
