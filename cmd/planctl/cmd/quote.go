package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidbz/gamehost/internal/domain"
)

var quoteRemote bool

// quoteCmd prices a configuration
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a plan configuration",
	Long: `Price a plan configuration with the built-in rule table. With --remote the
rule table is fetched from the validator first, so the quote matches what
checkout will charge.

Examples:
  planctl quote
  planctl quote --players 120 --ram 16 --support priority`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	addConfigurationFlags(quoteCmd)
	quoteCmd.Flags().BoolVar(&quoteRemote, "remote", false, "price with the validator's rule table")
}

func runQuote(cmd *cobra.Command, _ []string) error {
	table, err := loadTable(cmd.Context(), quoteRemote)
	if err != nil {
		return err
	}

	engine, err := domain.NewEngine(table)
	if err != nil {
		return err
	}

	config, err := domain.NewConfiguration(configurationInput(), table.Schema())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Invalid configuration:")
		printValidationErrors(cmd, err)
		return err
	}

	quote, err := engine.Price(config)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d players, %d GB RAM, %d GB storage, %s support, %s\n",
		config.Players(), config.RAMGB(), config.StorageGB(), config.Support(), config.Region())
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %s (rules %s)\n", quote.Display(), quote.RulesVersion)

	return nil
}
