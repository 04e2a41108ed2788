package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/SpecHunter/internal/config"
	"github.com/MikeSquared-Agency/SpecHunter/internal/discovery"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var flagDiscoverSave bool

var discoverCmd = &cobra.Command{
	Use:   "discover <query...>",
	Short: "Look up an item that is not in the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&flagDiscoverSave, "save", false, "Append the found item to the catalog (requires --database-url)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDiscoverSave && cfg.Database.URL == "" {
		return fmt.Errorf("--save needs a database; the built-in catalog is not persisted")
	}

	query := strings.Join(args, " ")
	ctx := cmd.Context()
	item, err := newFinder(cfg).Search(ctx, query)
	if err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("lookup %q: %w", query, err)
	}

	if flagDiscoverSave {
		c, err := openCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.AppendItem(ctx, item); err != nil {
			return err
		}
	}
	printItem(cmd.OutOrStdout(), item)
	return nil
}

func newFinder(cfg *config.Config) discovery.Client {
	if cfg.Discovery.Mode == config.DiscoveryModeHTTP {
		return discovery.NewHTTPClient(cfg.Discovery.URL, cfg.Discovery.Token, cfg.DiscoveryTimeout())
	}
	return discovery.NewMockClient(cfg.DiscoveryDelay(),
		discovery.WithPriceRange(cfg.Discovery.MinPrice, cfg.Discovery.MaxPrice))
}

func printItem(out io.Writer, item *store.Item) {
	fmt.Fprintf(out, "#%d %s %s (%s), %s\n", item.ID, item.Brand, item.Name, item.Category, scoring.FormatPrice(item.Price))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, label := range item.SpecLabels() {
		fmt.Fprintf(tw, "  %s\t%s\n", label, item.Specs[label])
	}
	_ = tw.Flush()
	s := item.Scores
	fmt.Fprintf(out, "  scores: performance=%.1f battery=%.1f portability=%.1f display=%.1f features=%.1f\n",
		s.Performance, s.Battery, s.Portability, s.Display, s.Features)
}
