package domain_test

import (
	"github.com/shopspring/decimal"

	"github.com/davidbz/gamehost/internal/domain"
)

func testRuleTable() *domain.RuleTable {
	return &domain.RuleTable{
		Version:         "test",
		Currency:        domain.GBP,
		Players:         domain.Range{Min: 10, Max: 500},
		RAMGB:           domain.Range{Min: 1, Max: 64},
		StorageGB:       domain.Range{Min: 10, Max: 200},
		BaseFee:         150,
		PerPlayerFee:    3,
		PerRAMGBFee:     100,
		PerStorageGBFee: 2,
		Support: []domain.SupportRule{
			{Tier: domain.SupportStandard, Label: "Standard (free)", Surcharge: 0},
			{Tier: domain.SupportPriority, Label: "Priority (+£3)", Surcharge: 300},
			{Tier: domain.SupportPremium, Label: "Premium (+£7)", Surcharge: 700},
		},
		Regions: []domain.RegionRule{
			{Region: domain.RegionLondon, Label: "London (GB)", Factor: decimal.NewFromInt(1)},
			{Region: domain.RegionFrankfurt, Label: "Frankfurt (DE)", Factor: decimal.NewFromInt(1)},
			{Region: domain.RegionDallas, Label: "Dallas (US)", Factor: decimal.NewFromInt(1)},
		},
	}
}

func withFactor(table *domain.RuleTable, region domain.Region, factor string) *domain.RuleTable {
	for i := range table.Regions {
		if table.Regions[i].Region == region {
			table.Regions[i].Factor = decimal.RequireFromString(factor)
		}
	}
	return table
}

func input(players, ram, storage int, support domain.SupportTier, region domain.Region) domain.ConfigurationInput {
	return domain.ConfigurationInput{
		Players:   players,
		RAMGB:     ram,
		StorageGB: storage,
		Support:   support,
		Region:    region,
	}
}
