package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/gamehost/internal/domain"
)

func TestRuleTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.RuleTable)
		wantErr string
	}{
		{name: "valid table", mutate: func(*domain.RuleTable) {}},
		{
			name:    "missing version",
			mutate:  func(rt *domain.RuleTable) { rt.Version = " " },
			wantErr: "version cannot be empty",
		},
		{
			name:    "negative fee",
			mutate:  func(rt *domain.RuleTable) { rt.BaseFee = -1 },
			wantErr: "baseFee cannot be negative",
		},
		{
			name:    "inverted bounds",
			mutate:  func(rt *domain.RuleTable) { rt.RAMGB = domain.Range{Min: 10, Max: 1} },
			wantErr: "invalid ramGb bounds",
		},
		{
			name:    "no support tiers",
			mutate:  func(rt *domain.RuleTable) { rt.Support = nil },
			wantErr: "at least one support tier",
		},
		{
			name: "duplicate tier",
			mutate: func(rt *domain.RuleTable) {
				rt.Support = append(rt.Support, domain.SupportRule{Tier: domain.SupportPremium, Surcharge: 1})
			},
			wantErr: "premium defined twice",
		},
		{
			name:    "zero factor",
			mutate:  func(rt *domain.RuleTable) { rt.Regions[0].Factor = decimal.Zero },
			wantErr: "london must have a positive factor",
		},
		{
			name:    "no regions",
			mutate:  func(rt *domain.RuleTable) { rt.Regions = nil },
			wantErr: "at least one region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testRuleTable()
			tt.mutate(table)

			err := table.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("nil table", func(t *testing.T) {
		var table *domain.RuleTable
		require.Error(t, table.Validate())
	})
}

func TestRuleTable_Lookups(t *testing.T) {
	table := testRuleTable()

	surcharge, ok := table.Surcharge(domain.SupportPremium)
	require.True(t, ok)
	require.Equal(t, int64(700), surcharge)

	_, ok = table.Surcharge("gold")
	require.False(t, ok)

	factor, ok := table.Factor(domain.RegionFrankfurt)
	require.True(t, ok)
	require.True(t, factor.Equal(decimal.NewFromInt(1)))

	_, ok = table.Factor("tokyo")
	require.False(t, ok)

	require.Equal(t, domain.DefaultSchema(), table.Schema())
}

func TestRuleTable_Fingerprint(t *testing.T) {
	require.Equal(t, testRuleTable().Fingerprint(), testRuleTable().Fingerprint())
	require.Len(t, testRuleTable().Fingerprint(), 16)

	changed := testRuleTable()
	changed.PerRAMGBFee = 101
	require.NotEqual(t, testRuleTable().Fingerprint(), changed.Fingerprint())

	relabelled := testRuleTable()
	relabelled.Support[1].Label = "Priority"
	relabelled.Version = "other"
	require.Equal(t, testRuleTable().Fingerprint(), relabelled.Fingerprint())
}
