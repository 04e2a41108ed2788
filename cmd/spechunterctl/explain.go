package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var explainCmd = &cobra.Command{
	Use:   "explain <id>",
	Short: "Show how an item's final score is computed",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	addWeightFlags(explainCmd)
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, err := resolveWeights(cmd, cfg.Scoring.Weights)
	if err != nil {
		return err
	}

	c, err := openCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	item, err := c.GetItem(cmd.Context(), id)
	if err != nil {
		return err
	}

	printBreakdown(cmd.OutOrStdout(), item, w, scoring.NewScorer(cfg.Scoring.MaxReferencePrice).Explain(item, w))
	return nil
}

func printBreakdown(out io.Writer, item *store.Item, w scoring.WeightConfig, b scoring.Breakdown) {
	fmt.Fprintf(out, "%s %s (#%d), %s\n", item.Brand, item.Name, item.ID, scoring.FormatPrice(item.Price))
	fmt.Fprintf(out, "  weights      performance=%d battery=%d portability=%d price=%d\n",
		w.Performance, w.Battery, w.Portability, w.PriceSensitivity)
	fmt.Fprintf(out, "  tech score   %.4f", b.TechScore)
	if b.ZeroTechWeights {
		fmt.Fprint(out, " (all tech weights are zero)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  price factor %.4f\n", b.PriceFactor)
	fmt.Fprintf(out, "  tech part    %.4f\n", b.TechContribution)
	fmt.Fprintf(out, "  price part   %.4f\n", b.PriceContribution)
	fmt.Fprintf(out, "  final score  %.4f", b.FinalScore)
	if b.Clamped {
		fmt.Fprintf(out, " (capped from %.4f)", b.Unclamped)
	}
	fmt.Fprintln(out)
}
