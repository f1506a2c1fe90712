package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/pipeline"
)

var (
	preset          string
	strictThreshold float64
	toStdout        bool
	outMD           string
	noCache         bool
	sealTimeout     time.Duration
)

// sealCmd represents the seal command
var sealCmd = &cobra.Command{
	Use:   "seal <input.json> [output.json]",
	Short: "Score every claim of a record and write the sealed record",
	Long: `Seal reads a VeriLock record, scores each claim and writes the sealed record:
- Normalize claim and evidence text
- Score intrinsic text statistics and evidence trigram overlap
- Drive high-stakes claims below the strict threshold to zero
- Classify risk and truth state and adjust confidence
- Append the audit trail and the VeriAbyss seal

The record must carry verilock_version and record_id.

Example:
  veriabyss seal record.json
  veriabyss seal record.json sealed.json --preset strict
  veriabyss seal record.json --strict-threshold 0.9 --stdout`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSeal,
}

func init() {
	rootCmd.AddCommand(sealCmd)

	sealCmd.Flags().StringVar(&preset, "preset", "", "scoring preset (reference, strict); overrides config")
	sealCmd.Flags().Float64Var(&strictThreshold, "strict-threshold", 0, "override the high-stakes strict threshold for this run")
	sealCmd.Flags().BoolVar(&toStdout, "stdout", false, "write the sealed record to stdout instead of a file")
	sealCmd.Flags().StringVar(&outMD, "md", "", "also write a Markdown summary to this path")
	sealCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable claim score memoization")
	sealCmd.Flags().DurationVar(&sealTimeout, "timeout", time.Minute, "overall seal timeout")
}

func runSeal(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := pipeline.DefaultOutputPath
	if len(args) > 1 {
		output = args[1]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sealTimeout)
	defer cancel()

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	var opts []pipeline.SealOption
	if cmd.Flags().Changed("strict-threshold") {
		opts = append(opts, pipeline.WithStrictThreshold(strictThreshold))
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Sealing %s (preset %s)...\n", input, cfg.Scoring.Preset)
	}

	sealed, err := p.SealFile(ctx, input, opts...)
	if err != nil {
		return fmt.Errorf("seal failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d claims\n", len(sealed.Claims))
		pipeline.NewRenderer(false).RenderSummary(os.Stderr, sealed)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Indent)

	if outMD != "" {
		if err := renderer.RenderMarkdown(sealed, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	if toStdout {
		return renderer.WriteJSON(cmd.OutOrStdout(), sealed)
	}

	if err := renderer.RenderJSON(sealed, output); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sealed record written to %s (avg_score: %s)\n",
		output, formatScore(sealed.Seals.VeriAbyss.ScoreAvg))
	return nil
}

// commandConfig loads the configuration and applies the shared command flags
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("preset"); f != nil && f.Changed {
		cfg.Scoring.Preset = preset
	}
	if f := cmd.Flags().Lookup("no-cache"); f != nil && f.Changed {
		cfg.Cache.Enabled = !noCache
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	return cfg, nil
}
