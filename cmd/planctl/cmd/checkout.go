package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davidbz/gamehost/internal/checkout"
	"github.com/davidbz/gamehost/internal/domain"
)

var checkoutRemote bool

// checkoutCmd opens a card checkout for a configuration
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Open a card checkout for a plan configuration",
	Long: `Validate the configuration, ask the validator service for a payment session
and print the hosted payment page to continue in a browser. With --remote the
displayed total is priced from the validator's rule table. Ctrl-C abandons
the attempt.`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

func init() {
	addConfigurationFlags(checkoutCmd)
	checkoutCmd.Flags().BoolVar(&checkoutRemote, "remote", false, "price with the validator's rule table")
}

func runCheckout(cmd *cobra.Command, _ []string) error {
	table, err := loadTable(cmd.Context(), checkoutRemote)
	if err != nil {
		return err
	}

	engine, err := domain.NewEngine(table)
	if err != nil {
		return err
	}

	client := checkout.NewClient(validatorURL, nil)
	redirector := checkout.NewHostedRedirector(client, func(_ context.Context, url string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Continue to payment: %s\n", url)
		return err
	})
	orchestrator := checkout.NewOrchestrator(engine, client, redirector)

	input := configurationInput()
	if quote, quoteErr := orchestrator.Quote(input); quoteErr == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", quote.Display())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			orchestrator.Abandon()
		case <-done:
		}
	}()

	err = orchestrator.InitiateCheckout(ctx, input)

	var (
		validationErrs domain.ValidationErrors
		rejection      *domain.RejectionError
		redirectErr    *domain.RedirectError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErrs):
		fmt.Fprintln(cmd.ErrOrStderr(), "Invalid configuration:")
		printValidationErrors(cmd, validationErrs)
	case errors.As(err, &rejection):
		fmt.Fprintf(cmd.ErrOrStderr(), "Checkout refused: %s\n", rejection.Message)
	case errors.As(err, &redirectErr):
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not open the payment page: %v\n", redirectErr)
	case errors.Is(err, domain.ErrCheckoutAbandoned):
		fmt.Fprintln(cmd.ErrOrStderr(), "Checkout abandoned")
	}

	return err
}
