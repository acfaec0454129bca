// Package cmd provides the planctl commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

const validatorURLEnv = "GAMEHOST_VALIDATOR_URL"

var (
	validatorURL string
	verbose      bool

	players   int
	ramGB     int
	storageGB int
	support   string
	region    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Price and buy hosted game-server plans",
	Long: `planctl prices a game-server plan from the shared rule table and opens
a card checkout for it through the validator service.

Examples:
  planctl quote --players 50 --ram 8 --storage 40
  planctl rules
  planctl checkout --support premium --region frankfurt`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	defaultURL := os.Getenv(validatorURLEnv)
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVar(&validatorURL, "validator", defaultURL,
		"validator service base URL (env "+validatorURLEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(checkoutCmd)
}

func initLogging() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		return
	}
	observability.SetLogger(logger)
}

// addConfigurationFlags registers the plan fields on cmd, defaulting to the configurator's start values.
func addConfigurationFlags(cmd *cobra.Command) {
	defaults := domain.DefaultInput()

	cmd.Flags().IntVarP(&players, "players", "p", defaults.Players, "player slots")
	cmd.Flags().IntVar(&ramGB, "ram", defaults.RAMGB, "RAM in GB")
	cmd.Flags().IntVar(&storageGB, "storage", defaults.StorageGB, "storage in GB")
	cmd.Flags().StringVarP(&support, "support", "s", string(defaults.Support), "support tier")
	cmd.Flags().StringVarP(&region, "region", "r", string(defaults.Region), "datacenter region")
}

func configurationInput() domain.ConfigurationInput {
	return domain.ConfigurationInput{
		Players:   players,
		RAMGB:     ramGB,
		StorageGB: storageGB,
		Support:   domain.SupportTier(support),
		Region:    domain.Region(region),
	}
}

// printValidationErrors lists every offending field, one per line.
func printValidationErrors(cmd *cobra.Command, err error) {
	var errs domain.ValidationErrors
	if !errors.As(err, &errs) {
		return
	}
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "  --%s=%v: %s\n", flagFor(e.Field), e.Value, e.Constraint)
	}
}

func flagFor(field string) string {
	switch field {
	case domain.FieldRAMGB:
		return "ram"
	case domain.FieldStorageGB:
		return "storage"
	default:
		return field
	}
}
