package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/pipeline"
	"github.com/ppiankov/veriabyss/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	withMarkdown bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Seal multiple records listed in a file in parallel",
	Long: `Batch seals many records concurrently:
- Read record paths from the list file (one per line, # starts a comment)
- Seal records in parallel with a configurable worker count
- Throttle reads per input directory
- Write one sealed record per input into the output directory

Example:
  veriabyss batch records.txt
  veriabyss batch records.txt --concurrency 8 --output-dir ./sealed
  veriabyss batch records.txt --preset strict --md`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veriabyss-sealed", "output directory for sealed records")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&withMarkdown, "md", false, "also write a Markdown summary next to each sealed record")
	batchCmd.Flags().StringVar(&preset, "preset", "", "scoring preset (reference, strict); overrides config")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable claim score memoization")
	batchCmd.Flags().Float64Var(&strictThreshold, "strict-threshold", 0, "override the high-stakes strict threshold for every record")
}

// recordSealer applies the same seal options to every record of a batch
type recordSealer struct {
	pipeline *pipeline.Pipeline
	opts     []pipeline.SealOption
}

func (s recordSealer) SealFile(ctx context.Context, path string) (*model.SealedRecord, error) {
	return s.pipeline.SealFile(ctx, path, s.opts...)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  VeriAbyss Batch Sealing\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(stderr, "  Preset:       %s\n", cfg.Scoring.Preset)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	sealer := recordSealer{pipeline: p}
	if cmd.Flags().Changed("strict-threshold") {
		sealer.opts = append(sealer.opts, pipeline.WithStrictThreshold(strictThreshold))
	}

	processor := worker.NewBatchProcessor(sealer, cfg.Concurrency.Workers,
		cfg.RateLimiting.RecordsPerSecond, cfg.RateLimiting.BurstSize)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Indent)
	names := make(map[string]int)
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		base := uniqueName(names, outputName(result.Path))
		jsonPath := filepath.Join(outputDir, base+".sealed.json")
		if err := renderer.RenderJSON(result.Record, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if withMarkdown {
			if err := renderer.RenderMarkdown(result.Record, filepath.Join(outputDir, base+".md")); err != nil {
				failureCount++
				fmt.Fprintf(stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
				continue
			}
		}

		fmt.Fprintf(stderr, "✓ %s → %s (avg_score: %s)\n",
			result.Path, jsonPath, formatScore(result.Record.Seals.VeriAbyss.ScoreAvg))
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d records\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", len(results)-failureCount)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d records failed", failureCount, len(results))
	}
	return nil
}

// outputName derives a filesystem-safe base name from an input path
func outputName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		case ' ':
			return '-'
		}
		return r
	}, name)

	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" || name == "." {
		name = "record"
	}
	return name
}

// uniqueName suffixes repeated names so inputs from different directories
// never overwrite each other
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		return fmt.Sprintf("%s-%d", name, n)
	}
	return name
}
