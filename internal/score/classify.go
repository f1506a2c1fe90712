package score

import (
	"math"

	"github.com/ppiankov/veriabyss/internal/model"
)

// Classify maps a final score onto the risk ladder.
// The result depends on the final score and the cutoffs only.
func (s *Scorer) Classify(final float64) (model.RiskLevel, model.TruthState) {
	switch {
	case final >= s.params.VerifiedCutoff:
		return model.RiskLow, model.TruthVerified
	case final >= s.params.PartialCutoff:
		return model.RiskMedium, model.TruthPartiallyVerified
	case final > 0:
		return model.RiskHigh, model.TruthUnverified
	default:
		return model.RiskCritical, model.TruthDisproven
	}
}

// AdjustConfidence scales the caller's confidence by final^p and rounds to four
// places. The result never exceeds the (clamped) original confidence.
func (s *Scorer) AdjustConfidence(original, final float64) float64 {
	c := clamp(original, 0, 1)
	f := clamp(final, 0, 1)

	adjusted := round4(math.Min(c*math.Pow(f, s.params.ConfidenceExponent), 1.0))
	return math.Min(adjusted, c)
}
