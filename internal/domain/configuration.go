package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SupportTier is the support level attached to a plan.
type SupportTier string

// Region is the datacenter location of a plan.
type Region string

const (
	SupportStandard SupportTier = "standard"
	SupportPriority SupportTier = "priority"
	SupportPremium  SupportTier = "premium"
)

const (
	RegionLondon    Region = "london"
	RegionFrankfurt Region = "frankfurt"
	RegionDallas    Region = "dallas"
)

// Field names as they appear on the wire and in validation errors.
const (
	FieldPlayers   = "players"
	FieldRAMGB     = "ramGb"
	FieldStorageGB = "storageGb"
	FieldSupport   = "support"
	FieldRegion    = "region"
)

// Range is an inclusive integer bound.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (r Range) check(field string, value int) *ValidationError {
	switch {
	case value < r.Min:
		return &ValidationError{Field: field, Value: value, Constraint: fmt.Sprintf("is below min %d", r.Min)}
	case value > r.Max:
		return &ValidationError{Field: field, Value: value, Constraint: fmt.Sprintf("exceeds max %d", r.Max)}
	default:
		return nil
	}
}

// Schema declares the bounds and enum members a configuration must satisfy.
type Schema struct {
	Players      Range
	RAMGB        Range
	StorageGB    Range
	SupportTiers []SupportTier
	Regions      []Region
}

// DefaultSchema returns the bounds offered by the configurator.
func DefaultSchema() Schema {
	return Schema{
		Players:      Range{Min: 10, Max: 500},
		RAMGB:        Range{Min: 1, Max: 64},
		StorageGB:    Range{Min: 10, Max: 200},
		SupportTiers: []SupportTier{SupportStandard, SupportPriority, SupportPremium},
		Regions:      []Region{RegionLondon, RegionFrankfurt, RegionDallas},
	}
}

// ConfigurationInput carries raw, unvalidated configuration fields.
type ConfigurationInput struct {
	Players   int         `json:"players"`
	RAMGB     int         `json:"ramGb"`
	StorageGB int         `json:"storageGb"`
	Support   SupportTier `json:"support"`
	Region    Region      `json:"region"`
}

// DefaultInput returns the configuration the configurator starts from.
func DefaultInput() ConfigurationInput {
	return ConfigurationInput{
		Players:   50,
		RAMGB:     8,
		StorageGB: 40,
		Support:   SupportStandard,
		Region:    RegionLondon,
	}
}

// Configuration is a validated, immutable plan configuration.
// The zero value is not valid and is refused by the pricing engine.
type Configuration struct {
	input  ConfigurationInput
	schema Schema
	valid  bool
}

// NewConfiguration validates every field of input against schema.
// The configuration is either fully valid or rejected with ValidationErrors.
// Support and region must match an accepted value exactly.
func NewConfiguration(input ConfigurationInput, schema Schema) (Configuration, error) {
	if errs := schema.Validate(input); len(errs) > 0 {
		return Configuration{}, errs
	}

	return Configuration{input: input, schema: schema, valid: true}, nil
}

// Validate returns all violations of input, or nil.
func (s Schema) Validate(input ConfigurationInput) ValidationErrors {
	var errs ValidationErrors

	if err := s.Players.check(FieldPlayers, input.Players); err != nil {
		errs = append(errs, err)
	}
	if err := s.RAMGB.check(FieldRAMGB, input.RAMGB); err != nil {
		errs = append(errs, err)
	}
	if err := s.StorageGB.check(FieldStorageGB, input.StorageGB); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(s.SupportTiers, input.Support) {
		errs = append(errs, &ValidationError{
			Field:      FieldSupport,
			Value:      input.Support,
			Constraint: "is not one of " + joinValues(s.SupportTiers),
		})
	}
	if !slices.Contains(s.Regions, input.Region) {
		errs = append(errs, &ValidationError{
			Field:      FieldRegion,
			Value:      input.Region,
			Constraint: "is not one of " + joinValues(s.Regions),
		})
	}

	return errs
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Valid reports whether the configuration came out of validation.
func (c Configuration) Valid() bool { return c.valid }

func (c Configuration) Players() int         { return c.input.Players }
func (c Configuration) RAMGB() int           { return c.input.RAMGB }
func (c Configuration) StorageGB() int       { return c.input.StorageGB }
func (c Configuration) Support() SupportTier { return c.input.Support }
func (c Configuration) Region() Region       { return c.input.Region }

// Input returns the configuration fields, e.g. for transmission to the validator.
func (c Configuration) Input() ConfigurationInput { return c.input }

// WithPlayers returns a new configuration with players replaced.
func (c Configuration) WithPlayers(players int) (Configuration, error) {
	next := c.input
	next.Players = players
	return NewConfiguration(next, c.schema)
}

// WithRAMGB returns a new configuration with RAM replaced.
func (c Configuration) WithRAMGB(ramGB int) (Configuration, error) {
	next := c.input
	next.RAMGB = ramGB
	return NewConfiguration(next, c.schema)
}

// WithStorageGB returns a new configuration with storage replaced.
func (c Configuration) WithStorageGB(storageGB int) (Configuration, error) {
	next := c.input
	next.StorageGB = storageGB
	return NewConfiguration(next, c.schema)
}

// WithSupport returns a new configuration with the support tier replaced.
func (c Configuration) WithSupport(support SupportTier) (Configuration, error) {
	next := c.input
	next.Support = support
	return NewConfiguration(next, c.schema)
}

// WithRegion returns a new configuration with the region replaced.
func (c Configuration) WithRegion(region Region) (Configuration, error) {
	next := c.input
	next.Region = region
	return NewConfiguration(next, c.schema)
}
