// Package rules holds the single, versioned pricing rule document consumed by
// both the validator service and the planctl client.
package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/davidbz/gamehost/internal/domain"
)

//go:embed default.yaml
var defaultDocument []byte

// Document is the serialised form of a rule table. It is the format of the
// embedded YAML file and of the GET /v1/rules response.
type Document struct {
	Version         string       `json:"version"         yaml:"version"`
	Fingerprint     string       `json:"fingerprint"     yaml:"-"`
	Currency        CurrencyDoc  `json:"currency"        yaml:"currency"`
	Bounds          BoundsDoc    `json:"bounds"          yaml:"bounds"`
	BaseFee         int64        `json:"baseFee"         yaml:"baseFee"`
	PerPlayerFee    int64        `json:"perPlayerFee"    yaml:"perPlayerFee"`
	PerRAMGBFee     int64        `json:"perRamGbFee"     yaml:"perRamGbFee"`
	PerStorageGBFee int64        `json:"perStorageGbFee" yaml:"perStorageGbFee"`
	Support         []SupportDoc `json:"support"         yaml:"support"`
	Regions         []RegionDoc  `json:"regions"         yaml:"regions"`
}

// CurrencyDoc describes the charge currency.
type CurrencyDoc struct {
	Code     string `json:"code"     yaml:"code"`
	Symbol   string `json:"symbol"   yaml:"symbol"`
	Exponent int32  `json:"exponent" yaml:"exponent"`
}

// BoundsDoc holds the numeric field bounds.
type BoundsDoc struct {
	Players   domain.Range `json:"players"   yaml:"players"`
	RAMGB     domain.Range `json:"ramGb"     yaml:"ramGb"`
	StorageGB domain.Range `json:"storageGb" yaml:"storageGb"`
}

// SupportDoc is one support tier entry.
type SupportDoc struct {
	Tier      string `json:"tier"      yaml:"tier"`
	Label     string `json:"label"     yaml:"label"`
	Surcharge int64  `json:"surcharge" yaml:"surcharge"`
}

// RegionDoc is one region entry. Factor is a decimal string so it survives
// serialisation without float rounding.
type RegionDoc struct {
	Region string `json:"region" yaml:"region"`
	Label  string `json:"label"  yaml:"label"`
	Factor string `json:"factor" yaml:"factor"`
}

// Default returns the embedded rule table.
func Default() (*domain.RuleTable, error) {
	return ParseYAML(defaultDocument)
}

// Load reads a rule table from path, or the embedded default when path is empty.
func Load(path string) (*domain.RuleTable, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML decodes and validates a YAML rule document.
func ParseYAML(data []byte) (*domain.RuleTable, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rules document: %w", err)
	}

	return doc.Table()
}

// DecodeJSON decodes and validates a JSON rule document, as served by GET /v1/rules.
func DecodeJSON(r io.Reader) (*domain.RuleTable, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode rules document: %w", err)
	}

	table, err := doc.Table()
	if err != nil {
		return nil, err
	}

	if doc.Fingerprint != "" && doc.Fingerprint != table.Fingerprint() {
		return nil, fmt.Errorf("rules fingerprint mismatch: document says %s, computed %s",
			doc.Fingerprint, table.Fingerprint())
	}

	return table, nil
}

// Table converts the document into a validated rule table.
func (d *Document) Table() (*domain.RuleTable, error) {
	table := &domain.RuleTable{
		Version: d.Version,
		Currency: domain.Currency{
			Code:     d.Currency.Code,
			Symbol:   d.Currency.Symbol,
			Exponent: d.Currency.Exponent,
		},
		Players:         d.Bounds.Players,
		RAMGB:           d.Bounds.RAMGB,
		StorageGB:       d.Bounds.StorageGB,
		BaseFee:         d.BaseFee,
		PerPlayerFee:    d.PerPlayerFee,
		PerRAMGBFee:     d.PerRAMGBFee,
		PerStorageGBFee: d.PerStorageGBFee,
	}

	for _, s := range d.Support {
		table.Support = append(table.Support, domain.SupportRule{
			Tier:      domain.SupportTier(s.Tier),
			Label:     s.Label,
			Surcharge: s.Surcharge,
		})
	}

	for _, r := range d.Regions {
		factor, err := decimal.NewFromString(r.Factor)
		if err != nil {
			return nil, fmt.Errorf("invalid factor %q for region %s: %w", r.Factor, r.Region, err)
		}
		table.Regions = append(table.Regions, domain.RegionRule{
			Region: domain.Region(r.Region),
			Label:  r.Label,
			Factor: factor,
		})
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules document: %w", err)
	}

	return table, nil
}

// FromTable converts a rule table into its serialised form.
func FromTable(table *domain.RuleTable) Document {
	doc := Document{
		Version:     table.Version,
		Fingerprint: table.Fingerprint(),
		Currency: CurrencyDoc{
			Code:     table.Currency.Code,
			Symbol:   table.Currency.Symbol,
			Exponent: table.Currency.Exponent,
		},
		Bounds: BoundsDoc{
			Players:   table.Players,
			RAMGB:     table.RAMGB,
			StorageGB: table.StorageGB,
		},
		BaseFee:         table.BaseFee,
		PerPlayerFee:    table.PerPlayerFee,
		PerRAMGBFee:     table.PerRAMGBFee,
		PerStorageGBFee: table.PerStorageGBFee,
		Support:         make([]SupportDoc, 0, len(table.Support)),
		Regions:         make([]RegionDoc, 0, len(table.Regions)),
	}

	for _, s := range table.Support {
		doc.Support = append(doc.Support, SupportDoc{Tier: string(s.Tier), Label: s.Label, Surcharge: s.Surcharge})
	}
	for _, r := range table.Regions {
		doc.Regions = append(doc.Regions, RegionDoc{Region: string(r.Region), Label: r.Label, Factor: r.Factor.String()})
	}

	return doc
}
