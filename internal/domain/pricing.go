package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency describes the single currency prices are charged in.
type Currency struct {
	Code     string // ISO 4217, lower case as the payment collaborator expects
	Symbol   string
	Exponent int32 // number of minor-unit digits
}

// GBP is pounds sterling, priced in pence.
var GBP = Currency{Code: "gbp", Symbol: "£", Exponent: 2}

// PriceQuote is the price of one configuration. It is derived, never stored.
type PriceQuote struct {
	AmountMinorUnits int64    `json:"amountMinorUnits"`
	Currency         Currency `json:"-"`
	RulesVersion     string   `json:"rulesVersion"`
}

// Display renders the amount as major.minor with the currency symbol, e.g. "£11.80".
func (q PriceQuote) Display() string {
	return q.Currency.Symbol + decimal.New(q.AmountMinorUnits, -q.Currency.Exponent).StringFixed(q.Currency.Exponent)
}

// PriceCalculator prices a configuration.
type PriceCalculator interface {
	// Price returns the quote for config, or InvalidConfigurationError.
	Price(config Configuration) (PriceQuote, error)

	// Rules returns the rule table the calculator prices with.
	Rules() *RuleTable
}

// Engine is the rule-table driven pricing engine.
type Engine struct {
	rules *RuleTable
}

// NewEngine creates a pricing engine over a validated rule table.
func NewEngine(rules *RuleTable) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	return &Engine{rules: rules}, nil
}

// Rules returns the engine's rule table.
func (e *Engine) Rules() *RuleTable {
	return e.rules
}

// Price computes the amount for config in minor units:
//
//	subtotal = base + players*perPlayer + ram*perRam + storage*perStorage + surcharge[support]
//	amount   = round_half_up(subtotal * regionFactor[region])
//
// Integer arithmetic is used up to the regional scaling, which is exact decimal
// arithmetic followed by a single rounding with ties away from zero.
func (e *Engine) Price(config Configuration) (PriceQuote, error) {
	if !config.Valid() {
		return PriceQuote{}, &InvalidConfigurationError{Reason: "configuration was not validated"}
	}

	// The configuration may have been validated against another schema.
	if errs := e.rules.Schema().Validate(config.Input()); len(errs) > 0 {
		return PriceQuote{}, &InvalidConfigurationError{Reason: "configuration outside rule table", Err: errs}
	}

	surcharge, ok := e.rules.Surcharge(config.Support())
	if !ok {
		return PriceQuote{}, &InvalidConfigurationError{Reason: fmt.Sprintf("no surcharge for support tier %s", config.Support())}
	}

	factor, ok := e.rules.Factor(config.Region())
	if !ok {
		return PriceQuote{}, &InvalidConfigurationError{Reason: fmt.Sprintf("no factor for region %s", config.Region())}
	}

	subtotal := e.rules.BaseFee +
		int64(config.Players())*e.rules.PerPlayerFee +
		int64(config.RAMGB())*e.rules.PerRAMGBFee +
		int64(config.StorageGB())*e.rules.PerStorageGBFee +
		surcharge

	amount := scale(subtotal, factor)

	return PriceQuote{
		AmountMinorUnits: amount,
		Currency:         e.rules.Currency,
		RulesVersion:     e.rules.Version,
	}, nil
}

// scale multiplies subtotal by factor and rounds half away from zero.
func scale(subtotal int64, factor decimal.Decimal) int64 {
	if factor.Equal(decimal.NewFromInt(1)) {
		return subtotal
	}

	return decimal.NewFromInt(subtotal).Mul(factor).Round(0).IntPart()
}
