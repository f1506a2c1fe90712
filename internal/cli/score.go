package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/score"
)

var (
	claimDomain     string
	claimEvidence   []string
	claimConfidence float64
	scoreJSON       bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <claim text>",
	Short: "Score a single claim and print the breakdown",
	Long: `Score runs the scoring pipeline on one ad-hoc claim without building a record.

Example:
  veriabyss score "The primary endpoint was met with p=0.032"
  veriabyss score "Revenue grew 12%" --domain FINANCIAL --evidence "revenue grew 12% year over year"
  veriabyss score "hello hello hello" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&claimDomain, "domain", model.DefaultDomain, "claim domain")
	scoreCmd.Flags().StringArrayVar(&claimEvidence, "evidence", nil, "evidence extract (repeatable)")
	scoreCmd.Flags().Float64Var(&claimConfidence, "confidence", model.DefaultConfidence, "caller confidence in [0,1]")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the result as JSON")
	scoreCmd.Flags().StringVar(&preset, "preset", "", "scoring preset (reference, strict); overrides config")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	params, err := score.ParamsFromConfig(cfg.Scoring)
	if err != nil {
		return err
	}
	scorer, err := score.NewScorer(params)
	if err != nil {
		return err
	}

	result := scorer.Score(score.Input{
		Text:       args[0],
		Domain:     claimDomain,
		Extracts:   claimEvidence,
		Confidence: claimConfidence,
	})

	if scoreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(cmd.OutOrStdout(), result)
	return nil
}

func printResult(w io.Writer, r score.Result) {
	b := r.Breakdown
	fmt.Fprintf(w, "Claim:        %s\n", r.Text)
	fmt.Fprintf(w, "Domain:       %s\n", r.Domain)
	fmt.Fprintf(w, "Final score:  %s\n", formatScore(r.FinalScore))
	fmt.Fprintf(w, "Risk level:   %s\n", r.RiskLevel)
	fmt.Fprintf(w, "Truth state:  %s\n", r.TruthState)
	fmt.Fprintf(w, "Confidence:   %s\n", formatScore(r.Confidence))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  char entropy  %s\n", formatScore(b.CharEntropy))
	fmt.Fprintf(w, "  word entropy  %s\n", formatScore(b.WordEntropy))
	fmt.Fprintf(w, "  repetition    %s\n", formatScore(b.RepetitionRatio))
	fmt.Fprintf(w, "  intrinsic     %s\n", formatScore(b.Intrinsic))
	fmt.Fprintf(w, "  overlap       %s\n", formatScore(b.Overlap))
	fmt.Fprintf(w, "  base          %s\n", formatScore(b.Base))
	if b.HighStakes {
		fmt.Fprintf(w, "  penalty       %s\n", formatScore(b.Penalty))
	}

	if len(b.Signals) > 0 {
		fmt.Fprintf(w, "\nSignals:\n")
		for _, s := range b.Signals {
			fmt.Fprintf(w, "  [%s] %s: %s\n", s.Severity, s.Type, s.Description)
		}
	}
}

// formatScore prints the shortest decimal form of a score, keeping one
// fractional digit for whole numbers (1.0, not 1)
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
