package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/veriabyss/internal/logging"
	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/validate"
)

// Version is set at build time via -ldflags
var Version = "v" + model.ProductVersion

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veriabyss",
	Short: "VeriAbyss - deterministic claim trust scoring and record sealing",
	Long: `VeriAbyss assigns a deterministic trust score to short textual claims.

Each claim is scored from its own text statistics (character and word entropy,
repetition) and from trigram overlap with the evidence extracts attached to it.
Claims in high-stakes domains that fall below the strict threshold are driven
to zero. The result is a sealed record with per-claim risk levels, truth
states, adjusted confidences and an audit trail.

VeriAbyss does not check claims against ground truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := viper.GetString("log_level")
		if verbose {
			level = "debug"
		}
		logging.SetDefaultCLILogger(level)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and scoring engine information for VeriAbyss.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "veriabyss %s\n", Version)
		fmt.Fprintf(out, "engine:  %s\n", model.EngineName)
		fmt.Fprintf(out, "antisim: %s\n", model.AntisimVersion)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veriabyss/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".veriabyss"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// scoringOverrideKeys have no default; they are bound to env vars explicitly
var scoringOverrideKeys = []string{
	"scoring.char_entropy_max",
	"scoring.word_entropy_max",
	"scoring.evidence_weight",
	"scoring.strict_threshold",
	"scoring.penalty_multiplier",
	"scoring.confidence_exponent",
	"scoring.verified_cutoff",
	"scoring.partial_cutoff",
	"scoring.high_stakes_domains",
}

// configureEnv maps VERIABYSS_* env vars onto config keys, so
// VERIABYSS_SCORING_STRICT_THRESHOLD overrides scoring.strict_threshold.
// The prefix must be set before keys are bound.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("VERIABYSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, model.DefaultConfig())
	for _, key := range scoringOverrideKeys {
		_ = v.BindEnv(key)
	}
}

// setDefaults registers the keys that have a default value
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("scoring.preset", cfg.Scoring.Preset)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	v.SetDefault("concurrency.claim_workers", cfg.Concurrency.ClaimWorkers)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("rate_limiting.records_per_second", cfg.RateLimiting.RecordsPerSecond)
	v.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)
	v.SetDefault("output.indent", cfg.Output.Indent)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("log_level", cfg.LogLevel)
}

// loadConfig merges defaults, config file and env vars into a validated Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Config(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
