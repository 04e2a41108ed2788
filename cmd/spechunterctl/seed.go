package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the catalog table and insert the built-in items",
	Long: `seed runs the catalog migration against --database-url and inserts the
built-in catalog. Existing ids are left untouched, so it is safe to rerun.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("seed needs --database-url or SPECHUNTER_DATABASE_URL")
	}

	ctx := cmd.Context()
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	seed := store.SeedCatalog()
	if err := db.Seed(ctx, seed); err != nil {
		return err
	}
	items, err := db.ListItems(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d built-in items, catalog now holds %d\n", len(seed), len(items))
	return nil
}
