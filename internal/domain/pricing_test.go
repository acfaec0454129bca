package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gamehost/internal/domain"
)

func newEngine(t *testing.T, table *domain.RuleTable) *domain.Engine {
	t.Helper()

	engine, err := domain.NewEngine(table)
	require.NoError(t, err)
	return engine
}

func priceOf(t *testing.T, engine *domain.Engine, in domain.ConfigurationInput) domain.PriceQuote {
	t.Helper()

	config, err := domain.NewConfiguration(in, engine.Rules().Schema())
	require.NoError(t, err)

	quote, err := engine.Price(config)
	require.NoError(t, err)
	return quote
}

func TestEngine_Price(t *testing.T) {
	engine := newEngine(t, testRuleTable())

	tests := []struct {
		name        string
		input       domain.ConfigurationInput
		wantAmount  int64
		wantDisplay string
	}{
		{
			name:        "default configuration",
			input:       input(50, 8, 40, domain.SupportStandard, domain.RegionLondon),
			wantAmount:  1180,
			wantDisplay: "£11.80",
		},
		{
			name:        "premium support in frankfurt",
			input:       input(50, 8, 40, domain.SupportPremium, domain.RegionFrankfurt),
			wantAmount:  1880,
			wantDisplay: "£18.80",
		},
		{
			name:        "priority support",
			input:       input(50, 8, 40, domain.SupportPriority, domain.RegionDallas),
			wantAmount:  1480,
			wantDisplay: "£14.80",
		},
		{
			name:        "smallest plan",
			input:       input(10, 1, 10, domain.SupportStandard, domain.RegionLondon),
			wantAmount:  300,
			wantDisplay: "£3.00",
		},
		{
			name:        "largest plan",
			input:       input(500, 64, 200, domain.SupportPremium, domain.RegionLondon),
			wantAmount:  9150,
			wantDisplay: "£91.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := priceOf(t, engine, tt.input)

			require.Equal(t, tt.wantAmount, quote.AmountMinorUnits)
			require.Equal(t, tt.wantDisplay, quote.Display())
			require.Equal(t, domain.GBP, quote.Currency)
			require.Equal(t, "test", quote.RulesVersion)
		})
	}
}

func TestEngine_Price_Deterministic(t *testing.T) {
	engine := newEngine(t, testRuleTable())
	config, err := domain.NewConfiguration(domain.DefaultInput(), engine.Rules().Schema())
	require.NoError(t, err)

	first, err := engine.Price(config)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := engine.Price(config)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestEngine_Price_Monotonic(t *testing.T) {
	engine := newEngine(t, testRuleTable())
	base := domain.DefaultInput()
	basePrice := priceOf(t, engine, base).AmountMinorUnits

	t.Run("players", func(t *testing.T) {
		prev := priceOf(t, engine, input(10, 8, 40, domain.SupportStandard, domain.RegionLondon)).AmountMinorUnits
		for p := 11; p <= 500; p++ {
			next := priceOf(t, engine, input(p, 8, 40, domain.SupportStandard, domain.RegionLondon)).AmountMinorUnits
			require.GreaterOrEqual(t, next, prev)
			prev = next
		}
	})

	t.Run("ram", func(t *testing.T) {
		prev := priceOf(t, engine, input(50, 1, 40, domain.SupportStandard, domain.RegionLondon)).AmountMinorUnits
		for r := 2; r <= 64; r++ {
			next := priceOf(t, engine, input(50, r, 40, domain.SupportStandard, domain.RegionLondon)).AmountMinorUnits
			require.GreaterOrEqual(t, next, prev)
			prev = next
		}
	})

	t.Run("storage", func(t *testing.T) {
		prev := priceOf(t, engine, input(50, 8, 10, domain.SupportStandard, domain.RegionLondon)).AmountMinorUnits
		for s := 11; s <= 200; s++ {
			next := priceOf(t, engine, input(50, 8, s, domain.SupportStandard, domain.RegionLondon)).AmountMinorUnits
			require.GreaterOrEqual(t, next, prev)
			prev = next
		}
	})

	t.Run("support tiers never lower the price", func(t *testing.T) {
		for _, tier := range []domain.SupportTier{domain.SupportPriority, domain.SupportPremium} {
			in := base
			in.Support = tier
			require.GreaterOrEqual(t, priceOf(t, engine, in).AmountMinorUnits, basePrice)
		}
	})
}

func TestEngine_Price_RegionalNeutrality(t *testing.T) {
	engine := newEngine(t, testRuleTable())

	for _, players := range []int{10, 50, 333, 500} {
		london := priceOf(t, engine, input(players, 8, 40, domain.SupportPriority, domain.RegionLondon))
		frankfurt := priceOf(t, engine, input(players, 8, 40, domain.SupportPriority, domain.RegionFrankfurt))
		dallas := priceOf(t, engine, input(players, 8, 40, domain.SupportPriority, domain.RegionDallas))

		require.Equal(t, london.AmountMinorUnits, frankfurt.AmountMinorUnits)
		require.Equal(t, london.AmountMinorUnits, dallas.AmountMinorUnits)
	}
}

func TestEngine_Price_RegionFactor(t *testing.T) {
	// 45 players, 8 GB RAM, 50 GB storage, standard support: subtotal 1185.
	odd := func(region domain.Region) domain.ConfigurationInput {
		return input(45, 8, 50, domain.SupportStandard, region)
	}

	tests := []struct {
		name   string
		factor string
		want   int64
	}{
		{name: "scales up exactly", factor: "1.2", want: 1422},
		{name: "rounds a tie up", factor: "1.1", want: 1304},
		{name: "rounds a tie up when scaling down", factor: "0.9", want: 1067},
		{name: "rounds below half down", factor: "1.0004", want: 1185},
		{name: "rounds above half up", factor: "1.0005", want: 1186},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(t, withFactor(testRuleTable(), domain.RegionDallas, tt.factor))

			require.Equal(t, tt.want, priceOf(t, engine, odd(domain.RegionDallas)).AmountMinorUnits)
			require.Equal(t, int64(1185), priceOf(t, engine, odd(domain.RegionLondon)).AmountMinorUnits)
		})
	}
}

func TestEngine_Price_InvalidConfiguration(t *testing.T) {
	engine := newEngine(t, testRuleTable())

	t.Run("zero value configuration", func(t *testing.T) {
		_, err := engine.Price(domain.Configuration{})

		var invalid *domain.InvalidConfigurationError
		require.True(t, errors.As(err, &invalid))
	})

	t.Run("configuration validated against a wider schema", func(t *testing.T) {
		schema := domain.DefaultSchema()
		schema.Players.Max = 1000
		schema.Regions = append(schema.Regions, "tokyo")

		config, err := domain.NewConfiguration(input(800, 8, 40, domain.SupportStandard, "tokyo"), schema)
		require.NoError(t, err)

		_, err = engine.Price(config)

		var invalid *domain.InvalidConfigurationError
		require.True(t, errors.As(err, &invalid))

		var fieldErrs domain.ValidationErrors
		require.True(t, errors.As(err, &fieldErrs))
		require.Equal(t, []string{domain.FieldPlayers, domain.FieldRegion}, fieldErrs.Fields())
	})
}

func TestNewEngine_RejectsInvalidTable(t *testing.T) {
	table := testRuleTable()
	table.PerPlayerFee = -1

	_, err := domain.NewEngine(table)
	require.Error(t, err)
}

func TestPriceQuote_Display(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "£0.00"},
		{5, "£0.05"},
		{1180, "£11.80"},
		{123456, "£1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			quote := domain.PriceQuote{AmountMinorUnits: tt.amount, Currency: domain.GBP}
			require.Equal(t, tt.want, quote.Display())
		})
	}
}
