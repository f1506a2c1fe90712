package score

import (
	"fmt"

	"github.com/ppiankov/veriabyss/internal/model"
)

// Scorer runs the claim scoring pipeline.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	params  Params
	domains DomainSet
}

// NewScorer creates a scorer for validated parameters
func NewScorer(p Params) (*Scorer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{
		params:  p.WithStrictThreshold(p.StrictThreshold),
		domains: NewDomainSet(p.HighStakesDomains),
	}, nil
}

// Params returns a copy of the scorer parameters
func (s *Scorer) Params() Params {
	return s.params.WithStrictThreshold(s.params.StrictThreshold)
}

// Input is a single claim to score
type Input struct {
	Text       string   // Raw claim text
	Domain     string   // Raw domain label
	Extracts   []string // Raw evidence extracts
	Confidence float64  // Caller confidence
}

// Result is the outcome of scoring one claim
type Result struct {
	Text       string               `json:"text"`   // Normalized claim text
	Domain     string               `json:"domain"` // Normalized domain
	FinalScore float64              `json:"final_score"`
	RiskLevel  model.RiskLevel      `json:"risk_level"`
	TruthState model.TruthState     `json:"truth_state"`
	Confidence float64              `json:"confidence"`
	Breakdown  model.ScoreBreakdown `json:"breakdown"`
}

// Score calculates the final score, classification and adjusted confidence
func (s *Scorer) Score(in Input) Result {
	text := Normalize(in.Text)
	domain := NormalizeDomain(in.Domain)
	extracts := NormalizeAll(in.Extracts)

	var signals []model.Signal

	// 1. Intrinsic text statistics
	stats := Intrinsic(text, s.params.CharEntropyMax, s.params.WordEntropyMax)
	signals = append(signals, s.intrinsicSignal(stats))
	if sig, ok := repetitionSignal(stats); ok {
		signals = append(signals, sig)
	}

	// 2. Evidence overlap
	overlap := EvidenceOverlap(text, extracts)
	signals = append(signals, overlapSignal(overlap, len(extracts)))

	// 3. Weighted combination
	base := s.Combine(stats.Score, overlap)

	// 4. High-stakes penalty
	final, penalty, highStakes := s.Penalize(domain, base)
	if penalty > 0 {
		signals = append(signals, s.penaltySignal(domain, base, penalty, final))
	}

	// 5. Classification and confidence
	risk, truth := s.Classify(final)

	return Result{
		Text:       text,
		Domain:     domain,
		FinalScore: final,
		RiskLevel:  risk,
		TruthState: truth,
		Confidence: s.AdjustConfidence(in.Confidence, final),
		Breakdown: model.ScoreBreakdown{
			CharEntropy:     stats.CharEntropy,
			WordEntropy:     stats.WordEntropy,
			RepetitionRatio: stats.RepetitionRatio,
			Intrinsic:       stats.Score,
			Overlap:         overlap,
			Base:            base,
			Penalty:         penalty,
			HighStakes:      highStakes,
			Signals:         signals,
		},
	}
}

// Combine blends intrinsic and overlap scores, weighting evidence by EvidenceWeight
func (s *Scorer) Combine(intrinsic, overlap float64) float64 {
	w := s.params.EvidenceWeight
	return (intrinsic + w*overlap) / (1 + w)
}

// Penalize applies the high-stakes cliff: a claim in a high-stakes domain whose
// base falls short of the strict threshold loses (threshold-base) x multiplier,
// which drives anything but a hair's-breadth miss to zero.
func (s *Scorer) Penalize(domain string, base float64) (final, penalty float64, highStakes bool) {
	highStakes = s.domains.Contains(domain)
	if highStakes && base < s.params.StrictThreshold {
		penalty = (s.params.StrictThreshold - base) * s.params.PenaltyMultiplier
	}
	return clamp(base-penalty, 0, 1), penalty, highStakes
}

// IsHighStakes reports whether domain is subject to the strict penalty
func (s *Scorer) IsHighStakes(domain string) bool {
	return s.domains.Contains(domain)
}

func (s *Scorer) intrinsicSignal(stats IntrinsicStats) model.Signal {
	return model.Signal{
		Type:        model.SignalIntrinsic,
		Severity:    model.SeverityInfo,
		Description: fmt.Sprintf("Intrinsic score: %.4f", stats.Score),
		Data: map[string]interface{}{
			"char_entropy":     stats.CharEntropy,
			"word_entropy":     stats.WordEntropy,
			"char_entropy_max": s.params.CharEntropyMax,
			"word_entropy_max": s.params.WordEntropyMax,
			"repetition_ratio": stats.RepetitionRatio,
			"score":            stats.Score,
			"formula":          "(min(char_entropy / char_entropy_max, 1) + min(word_entropy / word_entropy_max, 1)) / 2 * repetition_ratio",
		},
	}
}

func repetitionSignal(stats IntrinsicStats) (model.Signal, bool) {
	if stats.RepetitionRatio == 0 || stats.RepetitionRatio >= 0.75 {
		return model.Signal{}, false
	}

	severity := model.SeverityWarning
	if stats.RepetitionRatio < 0.5 {
		severity = model.SeverityCritical
	}

	return model.Signal{
		Type:        model.SignalRepetition,
		Severity:    severity,
		Description: fmt.Sprintf("Repeated tokens: distinct ratio %.2f", stats.RepetitionRatio),
		Data: map[string]interface{}{
			"repetition_ratio": stats.RepetitionRatio,
			"formula":          "distinct_tokens / total_tokens",
		},
	}, true
}

func overlapSignal(overlap float64, extracts int) model.Signal {
	if extracts == 0 {
		return model.Signal{
			Type:        model.SignalNoEvidence,
			Severity:    model.SeverityWarning,
			Description: "No evidence supplied",
			Data:        map[string]interface{}{"extracts": 0},
		}
	}

	severity := model.SeverityInfo
	if overlap < 0.1 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalOverlap,
		Severity:    severity,
		Description: fmt.Sprintf("Evidence trigram overlap: %.4f", overlap),
		Data: map[string]interface{}{
			"extracts": extracts,
			"overlap":  overlap,
			"formula":  "|claim_trigrams ∩ evidence_trigrams| / |claim_trigrams ∪ evidence_trigrams|",
		},
	}
}

func (s *Scorer) penaltySignal(domain string, base, penalty, final float64) model.Signal {
	return model.Signal{
		Type:        model.SignalStrictPenalty,
		Severity:    model.SeverityCritical,
		Description: fmt.Sprintf("High-stakes domain %s below strict threshold %.2f", domain, s.params.StrictThreshold),
		Data: map[string]interface{}{
			"domain":     domain,
			"base":       base,
			"threshold":  s.params.StrictThreshold,
			"multiplier": s.params.PenaltyMultiplier,
			"penalty":    penalty,
			"final":      final,
			"formula":    "max(base - (threshold - base) * multiplier, 0)",
		},
	}
}
