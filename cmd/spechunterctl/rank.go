package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
)

var (
	flagPerformance int
	flagBattery     int
	flagPortability int
	flagPrice       int
	flagLimit       int
)

var rankCmd = &cobra.Command{
	Use:   "rank [query...]",
	Short: "Rank the catalog by weighted score, optionally filtered by keywords",
	RunE:  runRank,
}

func init() {
	addWeightFlags(rankCmd)
	rankCmd.Flags().IntVar(&flagLimit, "limit", 0, "Show at most this many results (0 = all)")
	rootCmd.AddCommand(rankCmd)
}

func addWeightFlags(c *cobra.Command) {
	c.Flags().IntVar(&flagPerformance, "performance", 0, "Performance weight 0-100")
	c.Flags().IntVar(&flagBattery, "battery", 0, "Battery weight 0-100")
	c.Flags().IntVar(&flagPortability, "portability", 0, "Portability weight 0-100")
	c.Flags().IntVar(&flagPrice, "price", 0, "Price sensitivity 0-100")
}

// resolveWeights starts from defaults and applies only the flags the user set.
func resolveWeights(cmd *cobra.Command, defaults scoring.WeightConfig) (scoring.WeightConfig, error) {
	w := defaults
	flags := cmd.Flags()
	if flags.Changed("performance") {
		w.Performance = flagPerformance
	}
	if flags.Changed("battery") {
		w.Battery = flagBattery
	}
	if flags.Changed("portability") {
		w.Portability = flagPortability
	}
	if flags.Changed("price") {
		w.PriceSensitivity = flagPrice
	}
	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, err := resolveWeights(cmd, cfg.Scoring.Weights)
	if err != nil {
		return err
	}
	items, err := listCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := scoring.NewScorer(cfg.Scoring.MaxReferencePrice).Rank(items, w, query)
	if flagLimit > 0 && len(results) > flagLimit {
		results = results[:flagLimit]
	}
	printRanking(cmd.OutOrStdout(), query, results)
	return nil
}

func printRanking(out io.Writer, query string, results []scoring.RankedItem) {
	if len(results) == 0 {
		if strings.TrimSpace(query) != "" {
			fmt.Fprintf(out, "No items match %q. Try: spechunterctl discover %s\n", query, query)
		} else {
			fmt.Fprintln(out, "Catalog is empty.")
		}
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tBRAND\tNAME\tCATEGORY\tPRICE\tTECH\tSCORE")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%.1f\t%.1f\n",
			r.Rank, r.ID, r.Brand, r.Name, r.Category, scoring.FormatPrice(r.Price), r.TechScore, r.FinalScore)
	}
	_ = tw.Flush()
}
