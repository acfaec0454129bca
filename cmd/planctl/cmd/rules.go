package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/davidbz/gamehost/internal/checkout"
	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/rules"
)

var (
	rulesRemote bool
	rulesJSON   bool
)

// rulesCmd prints the pricing rule table
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the pricing rule table",
	Long: `Show the pricing rule table built into planctl, or with --remote the one the
validator service is pricing with, including its fingerprint.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesRemote, "remote", false, "fetch the table from the validator")
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "print the table as JSON")
}

func runRules(cmd *cobra.Command, _ []string) error {
	table, err := loadTable(cmd.Context(), rulesRemote)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if rulesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rules.FromTable(table))
	}

	fmt.Fprintf(out, "Rules %s (fingerprint %s)\n\n", table.Version, table.Fingerprint())

	fee := func(amount int64) string {
		return domain.PriceQuote{AmountMinorUnits: amount, Currency: table.Currency}.Display()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Base fee\t%s\n", fee(table.BaseFee))
	fmt.Fprintf(w, "Per player (%d-%d)\t%s\n", table.Players.Min, table.Players.Max, fee(table.PerPlayerFee))
	fmt.Fprintf(w, "Per GB RAM (%d-%d)\t%s\n", table.RAMGB.Min, table.RAMGB.Max, fee(table.PerRAMGBFee))
	fmt.Fprintf(w, "Per GB storage (%d-%d)\t%s\n", table.StorageGB.Min, table.StorageGB.Max, fee(table.PerStorageGBFee))
	fmt.Fprintln(w)
	for _, s := range table.Support {
		fmt.Fprintf(w, "support %s\t%s\t+%s\n", s.Tier, s.Label, fee(s.Surcharge))
	}
	for _, r := range table.Regions {
		fmt.Fprintf(w, "region %s\t%s\tx%s\n", r.Region, r.Label, r.Factor.String())
	}

	return w.Flush()
}

func loadTable(ctx context.Context, remote bool) (*domain.RuleTable, error) {
	if !remote {
		return rules.Default()
	}

	table, err := checkout.NewClient(validatorURL, nil).Rules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rules from %s: %w", validatorURL, err)
	}
	return table, nil
}
