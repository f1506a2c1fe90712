package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/veriabyss/internal/model"
)

// DefaultOutputPath is used when no output path is given
const DefaultOutputPath = "sealed_output.json"

// Renderer writes sealed records
type Renderer struct {
	indent bool
}

// NewRenderer creates a new renderer
func NewRenderer(indent bool) *Renderer {
	return &Renderer{indent: indent}
}

// WriteJSON encodes a sealed record to w
func (r *Renderer) WriteJSON(w io.Writer, record *model.SealedRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(record)
}

// RenderJSON writes a sealed record to path, creating parent directories
func (r *Renderer) RenderJSON(record *model.SealedRecord, path string) (err error) {
	if path == "" {
		path = DefaultOutputPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	return r.WriteJSON(f, record)
}

// RenderMarkdown writes a human-readable claim table to path
func (r *Renderer) RenderMarkdown(record *model.SealedRecord, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sealed record %s\n\n", record.ID())
	fmt.Fprintf(&b, "- VeriLock version: %s\n", record.Version())
	fmt.Fprintf(&b, "- Status: %s\n", record.Status)
	fmt.Fprintf(&b, "- Sealed at: %s\n", record.Seals.VeriAbyss.SealedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "- Preset: %s\n", record.Seals.VeriAbyss.Preset)
	fmt.Fprintf(&b, "- Average score: %.4f\n\n", record.Seals.VeriAbyss.ScoreAvg)

	if len(record.Claims) == 0 {
		b.WriteString("_No claims._\n")
	} else {
		b.WriteString("| Claim | Domain | Score | Risk | Truth | Confidence |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, c := range record.Claims {
			fmt.Fprintf(&b, "| %s | %s | %.4f | %s | %s | %.4f |\n",
				c.ID, c.Domain, c.FinalScore, c.RiskLevel, c.TruthState, c.Confidence)
		}

		for _, c := range record.Claims {
			if len(c.Scoring.Signals) == 0 && len(c.Warnings) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n## %s\n\n> %s\n\n", c.ID, c.Text)
			for _, s := range c.Scoring.Signals {
				fmt.Fprintf(&b, "- **%s** (%s): %s\n", s.Type, s.Severity, s.Description)
			}
			for _, w := range c.Warnings {
				fmt.Fprintf(&b, "- warning: %s\n", w)
			}
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen summary of the record
func (r *Renderer) RenderSummary(w io.Writer, record *model.SealedRecord) {
	counts := make(map[model.RiskLevel]int)
	for _, c := range record.Claims {
		counts[c.RiskLevel]++
	}

	fmt.Fprintf(w, "Record %s: %d claims, avg_score %.4f\n",
		record.ID(), len(record.Claims), record.Seals.VeriAbyss.ScoreAvg)
	if len(record.Claims) > 0 {
		fmt.Fprintf(w, "  LOW %d  MEDIUM %d  HIGH %d  CRITICAL %d\n",
			counts[model.RiskLow], counts[model.RiskMedium], counts[model.RiskHigh], counts[model.RiskCritical])
	}
}
