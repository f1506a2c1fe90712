package score

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ppiankov/veriabyss/internal/model"
)

// Preset names
const (
	PresetReference = "reference"
	PresetStrict    = "strict"
)

// ErrUnknownPreset is returned when a preset name is not registered
var ErrUnknownPreset = errors.New("unknown scoring preset")

// Package-level validator instance for parameter validation.
var validate = validator.New()

// Params holds every constant of the scoring pipeline.
// Params are immutable once handed to a Scorer.
type Params struct {
	// CharEntropyMax is the realistic maximum character entropy in bits.
	CharEntropyMax float64 `yaml:"char_entropy_max" validate:"gt=0"`
	// WordEntropyMax is the realistic maximum word entropy in bits.
	WordEntropyMax float64 `yaml:"word_entropy_max" validate:"gt=0"`
	// EvidenceWeight multiplies the overlap score; intrinsic weight is 1.
	EvidenceWeight float64 `yaml:"evidence_weight" validate:"gte=1"`
	// StrictThreshold is the base score a high-stakes claim must reach.
	StrictThreshold float64 `yaml:"strict_threshold" validate:"gt=0,lte=1"`
	// PenaltyMultiplier scales the shortfall below StrictThreshold.
	PenaltyMultiplier float64 `yaml:"penalty_multiplier" validate:"gte=0"`
	// ConfidenceExponent is applied to the final score when adjusting confidence.
	ConfidenceExponent float64 `yaml:"confidence_exponent" validate:"gte=1"`
	// VerifiedCutoff is the lowest final score classified LOW / VERIFIED.
	VerifiedCutoff float64 `yaml:"verified_cutoff" validate:"gt=0,lte=1,gtefield=PartialCutoff"`
	// PartialCutoff is the lowest final score classified MEDIUM / PARTIALLY_VERIFIED.
	PartialCutoff float64 `yaml:"partial_cutoff" validate:"gt=0,lte=1"`
	// HighStakesDomains are subject to the strict penalty.
	HighStakesDomains []string `yaml:"high_stakes_domains" validate:"dive,required"`
}

// DefaultHighStakesDomains returns the domains subject to the strict penalty
func DefaultHighStakesDomains() []string {
	return []string{"CLINICAL_TRIAL", "GENOMICS", "LEGAL", "REGULATORY", "FINANCIAL"}
}

// ReferenceParams reproduces the double-weighted evidence, squared-confidence engine.
func ReferenceParams() Params {
	return Params{
		CharEntropyMax:     4.7,
		WordEntropyMax:     12.0,
		EvidenceWeight:     2.0,
		StrictThreshold:    0.85,
		PenaltyMultiplier:  1000,
		ConfidenceExponent: 2,
		VerifiedCutoff:     0.95,
		PartialCutoff:      0.85,
		HighStakesDomains:  DefaultHighStakesDomains(),
	}
}

// StrictParams reproduces the equal-weighted, cubed-confidence engine with the
// higher strict threshold.
func StrictParams() Params {
	p := ReferenceParams()
	p.EvidenceWeight = 1.0
	p.StrictThreshold = 0.95
	p.ConfidenceExponent = 3
	return p
}

// Preset returns the parameters registered under name.
// An empty name selects the reference preset.
func Preset(name string) (Params, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetReference:
		return ReferenceParams(), nil
	case PresetStrict:
		return StrictParams(), nil
	default:
		return Params{}, fmt.Errorf("%w: %q (available: %s, %s)", ErrUnknownPreset, name, PresetReference, PresetStrict)
	}
}

// PresetNames lists the registered presets
func PresetNames() []string {
	return []string{PresetReference, PresetStrict}
}

// ParamsFromConfig resolves a preset and applies the non-nil overrides
func ParamsFromConfig(cfg model.ScoringConfig) (Params, error) {
	p, err := Preset(cfg.Preset)
	if err != nil {
		return Params{}, err
	}

	override := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	override(&p.CharEntropyMax, cfg.CharEntropyMax)
	override(&p.WordEntropyMax, cfg.WordEntropyMax)
	override(&p.EvidenceWeight, cfg.EvidenceWeight)
	override(&p.StrictThreshold, cfg.StrictThreshold)
	override(&p.PenaltyMultiplier, cfg.PenaltyMultiplier)
	override(&p.ConfidenceExponent, cfg.ConfidenceExponent)
	override(&p.VerifiedCutoff, cfg.VerifiedCutoff)
	override(&p.PartialCutoff, cfg.PartialCutoff)
	if len(cfg.HighStakesDomains) > 0 {
		p.HighStakesDomains = append([]string(nil), cfg.HighStakesDomains...)
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// WithStrictThreshold returns a copy of p using threshold t
func (p Params) WithStrictThreshold(t float64) Params {
	p.HighStakesDomains = append([]string(nil), p.HighStakesDomains...)
	p.StrictThreshold = t
	return p
}

// Validate checks the parameter constraints
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid scoring parameters: %w", err)
	}
	return nil
}

// Fingerprint identifies the parameter set in cache keys
func (p Params) Fingerprint() string {
	return fmt.Sprintf("c%g|w%g|e%g|t%g|m%g|p%g|v%g|q%g|%s",
		p.CharEntropyMax, p.WordEntropyMax, p.EvidenceWeight, p.StrictThreshold,
		p.PenaltyMultiplier, p.ConfidenceExponent, p.VerifiedCutoff, p.PartialCutoff,
		strings.Join(NewDomainSet(p.HighStakesDomains).Names(), ","))
}
