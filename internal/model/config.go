package model

import "time"

// Config is the complete VeriAbyss configuration
type Config struct {
	Scoring      ScoringConfig      `yaml:"scoring" mapstructure:"scoring"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	LogLevel     string             `yaml:"log_level" mapstructure:"log_level"`
}

// ScoringConfig selects a parameter preset and optionally overrides single values.
// Nil overrides keep the preset value.
type ScoringConfig struct {
	Preset             string   `yaml:"preset" mapstructure:"preset"`
	CharEntropyMax     *float64 `yaml:"char_entropy_max,omitempty" mapstructure:"char_entropy_max"`
	WordEntropyMax     *float64 `yaml:"word_entropy_max,omitempty" mapstructure:"word_entropy_max"`
	EvidenceWeight     *float64 `yaml:"evidence_weight,omitempty" mapstructure:"evidence_weight"`
	StrictThreshold    *float64 `yaml:"strict_threshold,omitempty" mapstructure:"strict_threshold"`
	PenaltyMultiplier  *float64 `yaml:"penalty_multiplier,omitempty" mapstructure:"penalty_multiplier"`
	ConfidenceExponent *float64 `yaml:"confidence_exponent,omitempty" mapstructure:"confidence_exponent"`
	VerifiedCutoff     *float64 `yaml:"verified_cutoff,omitempty" mapstructure:"verified_cutoff"`
	PartialCutoff      *float64 `yaml:"partial_cutoff,omitempty" mapstructure:"partial_cutoff"`
	HighStakesDomains  []string `yaml:"high_stakes_domains,omitempty" mapstructure:"high_stakes_domains"`
}

// CacheConfig controls in-process memoization of claim scores
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls parallelism
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers" mapstructure:"claim_workers" validate:"min=1,max=256"` // Goroutines scoring claims of one record
	Workers      int `yaml:"workers" mapstructure:"workers" validate:"min=1,max=256"`             // Records sealed in parallel by batch
}

// RateLimitingConfig throttles batch sealing per input directory
type RateLimitingConfig struct {
	RecordsPerSecond float64 `yaml:"records_per_second" mapstructure:"records_per_second" validate:"min=0"`
	BurstSize        int     `yaml:"burst_size" mapstructure:"burst_size" validate:"min=0"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Indent  bool `yaml:"indent" mapstructure:"indent"`
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Preset: "reference",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 1,
			Workers:      4,
		},
		RateLimiting: RateLimitingConfig{
			RecordsPerSecond: 50,
			BurstSize:        10,
		},
		Output: OutputConfig{
			Indent: true,
		},
		LogLevel: "info",
	}
}
