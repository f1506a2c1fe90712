package model

import "time"

// Evidence is a source excerpt offered in support of a claim
type Evidence struct {
	Extract   string `json:"extract"`
	Type      string `json:"evidence_type,omitempty"` // Defaults to DOCUMENT
	Source    string `json:"source,omitempty"`        // Defaults to internal
	Relevance string `json:"relevance,omitempty"`     // Defaults to direct
}

// Evidence defaults applied when the input omits a field
const (
	DefaultEvidenceType = "DOCUMENT"
	DefaultSource       = "internal"
	DefaultRelevance    = "direct"
)

// ScoredEvidence is an evidence item as it appears in a sealed record
type ScoredEvidence struct {
	ID        string         `json:"evidence_id"` // EV<claim>-<evidence>, both 1-based
	Type      string         `json:"evidence_type"`
	Source    EvidenceSource `json:"source"`
	Relevance string         `json:"relevance"`
	Extract   string         `json:"extract"` // Normalized extract
}

// EvidenceSource records where an extract came from and its content hash
type EvidenceSource struct {
	Location    string    `json:"location"`
	HashSHA256  string    `json:"hash_sha256"` // Empty when the extract is empty
	RetrievedAt time.Time `json:"retrieved_at"`
}
