package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/score"
)

// FormatEvidence converts a claim's evidence into sealed evidence items.
// claimIdx is zero-based; identifiers are EV<claim>-<evidence>, both one-based.
func FormatEvidence(claimIdx int, evidence []model.Evidence, retrievedAt time.Time) []model.ScoredEvidence {
	out := make([]model.ScoredEvidence, 0, len(evidence))
	for i, ev := range evidence {
		extract := score.Normalize(ev.Extract)
		out = append(out, model.ScoredEvidence{
			ID:   EvidenceID(claimIdx, i),
			Type: orDefault(ev.Type, model.DefaultEvidenceType),
			Source: model.EvidenceSource{
				Location:    orDefault(ev.Source, model.DefaultSource),
				HashSHA256:  HashExtract(extract),
				RetrievedAt: retrievedAt,
			},
			Relevance: orDefault(ev.Relevance, model.DefaultRelevance),
			Extract:   extract,
		})
	}
	return out
}

// EvidenceID returns the deterministic identifier of an evidence item
func EvidenceID(claimIdx, evidenceIdx int) string {
	return fmt.Sprintf("EV%04d-%d", claimIdx+1, evidenceIdx+1)
}

// HashExtract returns the SHA-256 hex digest of a normalized extract.
// An empty extract has an empty hash, not the digest of empty input.
func HashExtract(extract string) string {
	if extract == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(extract))
	return hex.EncodeToString(sum[:])
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
