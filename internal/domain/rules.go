package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SupportRule prices one support tier.
type SupportRule struct {
	Tier      SupportTier
	Label     string
	Surcharge int64 // minor units
}

// RegionRule scales the subtotal for one region.
type RegionRule struct {
	Region Region
	Label  string
	Factor decimal.Decimal
}

// RuleTable is the pricing rule set shared by the display engine and the validator.
// Fees are in the currency's minor unit. Support and Regions are ordered for display.
type RuleTable struct {
	Version         string
	Currency        Currency
	Players         Range
	RAMGB           Range
	StorageGB       Range
	BaseFee         int64
	PerPlayerFee    int64
	PerRAMGBFee     int64
	PerStorageGBFee int64
	Support         []SupportRule
	Regions         []RegionRule
}

// Surcharge returns the surcharge for tier.
func (t *RuleTable) Surcharge(tier SupportTier) (int64, bool) {
	for _, rule := range t.Support {
		if rule.Tier == tier {
			return rule.Surcharge, true
		}
	}
	return 0, false
}

// Factor returns the regional multiplier for region.
func (t *RuleTable) Factor(region Region) (decimal.Decimal, bool) {
	for _, rule := range t.Regions {
		if rule.Region == region {
			return rule.Factor, true
		}
	}
	return decimal.Zero, false
}

// Schema derives the configuration schema from the table, so that adding a
// tier or region to the table is enough to make it selectable.
func (t *RuleTable) Schema() Schema {
	tiers := make([]SupportTier, 0, len(t.Support))
	for _, rule := range t.Support {
		tiers = append(tiers, rule.Tier)
	}
	regions := make([]Region, 0, len(t.Regions))
	for _, rule := range t.Regions {
		regions = append(regions, rule.Region)
	}

	return Schema{
		Players:      t.Players,
		RAMGB:        t.RAMGB,
		StorageGB:    t.StorageGB,
		SupportTiers: tiers,
		Regions:      regions,
	}
}

// Validate checks the table is usable for pricing.
func (t *RuleTable) Validate() error {
	if t == nil {
		return errors.New("rule table cannot be nil")
	}
	if strings.TrimSpace(t.Version) == "" {
		return errors.New("rule table version cannot be empty")
	}
	if t.Currency.Code == "" {
		return errors.New("rule table currency cannot be empty")
	}

	for name, fee := range map[string]int64{
		"baseFee":         t.BaseFee,
		"perPlayerFee":    t.PerPlayerFee,
		"perRamGbFee":     t.PerRAMGBFee,
		"perStorageGbFee": t.PerStorageGBFee,
	} {
		if fee < 0 {
			return fmt.Errorf("%s cannot be negative: %d", name, fee)
		}
	}

	for name, r := range map[string]Range{
		FieldPlayers:   t.Players,
		FieldRAMGB:     t.RAMGB,
		FieldStorageGB: t.StorageGB,
	} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("invalid %s bounds [%d, %d]", name, r.Min, r.Max)
		}
	}

	if len(t.Support) == 0 {
		return errors.New("rule table must define at least one support tier")
	}
	seenTiers := make(map[SupportTier]bool, len(t.Support))
	for _, rule := range t.Support {
		if rule.Tier == "" {
			return errors.New("support tier name cannot be empty")
		}
		if seenTiers[rule.Tier] {
			return fmt.Errorf("support tier %s defined twice", rule.Tier)
		}
		if rule.Surcharge < 0 {
			return fmt.Errorf("support tier %s has negative surcharge", rule.Tier)
		}
		seenTiers[rule.Tier] = true
	}

	if len(t.Regions) == 0 {
		return errors.New("rule table must define at least one region")
	}
	seenRegions := make(map[Region]bool, len(t.Regions))
	for _, rule := range t.Regions {
		if rule.Region == "" {
			return errors.New("region name cannot be empty")
		}
		if seenRegions[rule.Region] {
			return fmt.Errorf("region %s defined twice", rule.Region)
		}
		if !rule.Factor.IsPositive() {
			return fmt.Errorf("region %s must have a positive factor", rule.Region)
		}
		seenRegions[rule.Region] = true
	}

	return nil
}

// Fingerprint returns a stable digest of everything that affects a price.
// Two parties agree on prices iff their fingerprints match.
func (t *RuleTable) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "currency=%s;", t.Currency.Code)
	fmt.Fprintf(&b, "players=%d-%d;ram=%d-%d;storage=%d-%d;",
		t.Players.Min, t.Players.Max, t.RAMGB.Min, t.RAMGB.Max, t.StorageGB.Min, t.StorageGB.Max)
	fmt.Fprintf(&b, "base=%d;player=%d;ram=%d;storage=%d;",
		t.BaseFee, t.PerPlayerFee, t.PerRAMGBFee, t.PerStorageGBFee)
	for _, rule := range t.Support {
		fmt.Fprintf(&b, "support:%s=%d;", rule.Tier, rule.Surcharge)
	}
	for _, rule := range t.Regions {
		fmt.Fprintf(&b, "region:%s=%s;", rule.Region, rule.Factor.String())
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
