package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/SpecHunter/internal/compare"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare <id> [id...]",
	Short: "Compare up to three items across every score dimension",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", a)
		}
		ids = append(ids, id)
	}
	set, err := compare.NewSet(ids...)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	items, err := listCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	selected := set.Resolve(items)
	if len(selected) < set.Len() {
		return fmt.Errorf("%d of %d items not found: %w", set.Len()-len(selected), set.Len(), store.ErrItemNotFound)
	}
	printComparison(cmd.OutOrStdout(), selected)
	return nil
}

func printComparison(out io.Writer, items []store.Item) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "METRIC")
	for _, it := range items {
		fmt.Fprintf(tw, "\t%s", it.Name)
	}
	fmt.Fprintln(tw)
	for _, row := range compare.Radar(items) {
		fmt.Fprint(tw, row.Metric)
		for _, v := range row.Values {
			fmt.Fprintf(tw, "\t%.1f", v)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
	if h := compare.Highlights(items); h != nil {
		fmt.Fprintf(out, "%s stands out in %s (%.1f)\n", h.Name, h.Metric, h.Score)
	}
}
