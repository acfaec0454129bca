package cmd

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/gamehost/internal/config"
	"github.com/davidbz/gamehost/internal/domain"
	httpapi "github.com/davidbz/gamehost/internal/http"
	"github.com/davidbz/gamehost/internal/payment/sandbox"
	"github.com/davidbz/gamehost/internal/rules"
)

// run executes planctl with args. Flag variables outlive a run, so every
// call spells out the configuration and the --remote choice.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func plan(players, support, region string) []string {
	return []string{"--players", players, "--ram", "8", "--storage", "40", "--support", support, "--region", region}
}

// startValidator serves the validator routes over table with the sandbox gateway.
func startValidator(t *testing.T, table *domain.RuleTable) string {
	t.Helper()

	engine, err := domain.NewEngine(table)
	require.NoError(t, err)

	service := domain.NewCheckoutService(engine, sandbox.NewGateway(""), nil, nil)
	server := httpapi.NewServer(&config.Config{}, httpapi.NewHandler(service), nil, nil)

	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)
	return ts.URL
}

// surchargedLondon is the default table with london scaled by 1.2.
func surchargedLondon(t *testing.T) *domain.RuleTable {
	t.Helper()

	table, err := rules.Default()
	require.NoError(t, err)
	for i := range table.Regions {
		if table.Regions[i].Region == domain.RegionLondon {
			table.Regions[i].Factor = decimal.RequireFromString("1.2")
		}
	}
	return table
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "default plan",
			args: append([]string{"quote", "--remote=false"}, plan("50", "standard", "london")...),
			want: "Total: £11.80",
		},
		{
			name: "premium frankfurt",
			args: append([]string{"quote", "--remote=false"}, plan("50", "premium", "frankfurt")...),
			want: "Total: £18.80",
		},
		{
			name:    "players above max",
			args:    append([]string{"quote", "--remote=false"}, plan("501", "standard", "london")...),
			wantErr: "--players=501: exceeds max 500",
		},
		{
			name:    "tier is case sensitive",
			args:    append([]string{"quote", "--remote=false"}, plan("50", "Premium", "london")...),
			wantErr: "--support=Premium",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.args...)

			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, stderr, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Contains(t, stdout, tt.want)
		})
	}
}

func TestQuote_Remote(t *testing.T) {
	url := startValidator(t, surchargedLondon(t))
	args := append([]string{"quote", "--validator", url}, plan("50", "standard", "london")...)

	stdout, _, err := run(t, append(args, "--remote=false")...)
	require.NoError(t, err)
	require.Contains(t, stdout, "Total: £11.80")

	stdout, _, err = run(t, append(args, "--remote=true")...)
	require.NoError(t, err)
	require.Contains(t, stdout, "Total: £14.16")
}

func TestCheckout(t *testing.T) {
	url := startValidator(t, surchargedLondon(t))
	args := append([]string{"checkout", "--validator", url}, plan("50", "standard", "london")...)

	t.Run("should price with the validator's table and print the payment page", func(t *testing.T) {
		stdout, _, err := run(t, append(args, "--remote=true")...)
		require.NoError(t, err)
		require.Contains(t, stdout, "Total: £14.16")
		require.Contains(t, stdout, "Continue to payment: http://localhost:8080/sandbox/pay/cs_sandbox_")
	})

	t.Run("should refuse an invalid plan before calling the validator", func(t *testing.T) {
		invalid := append([]string{"checkout", "--validator", "http://127.0.0.1:1", "--remote=false"},
			plan("501", "standard", "london")...)

		_, stderr, err := run(t, invalid...)
		require.Error(t, err)
		require.Contains(t, stderr, "Invalid configuration:")
		require.Contains(t, stderr, "--players=501")
	})
}
