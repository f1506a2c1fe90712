package model

import (
	"encoding/json"
	"strings"
	"time"
)

// SealedRecord is the document produced for every input record
// Field order and names follow the VeriLock record layout.
// Envelope fields keep the exact JSON value of the input record.
type SealedRecord struct {
	VerilockVersion json.RawMessage `json:"verilock_version"`
	RecordID        json.RawMessage `json:"record_id"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at"` // Always null for a fresh seal
	CreatedBy       Actor           `json:"created_by"`
	DivisionScope   json.RawMessage `json:"division_scope"`
	Classification  json.RawMessage `json:"classification"`
	Claims          []ScoredClaim   `json:"claims"`
	AuditTrail      []AuditEvent    `json:"audit_trail"`
	Seals           Seals           `json:"seals"`
	Seal            string          `json:"seal"`
}

// ID returns the record id as display text
func (r *SealedRecord) ID() string {
	return RawText(r.RecordID)
}

// Version returns the VeriLock version as display text
func (r *SealedRecord) Version() string {
	return RawText(r.VerilockVersion)
}

// RawText renders a JSON value for display: strings are unquoted,
// anything else keeps its JSON text
func RawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// Record status and seal markers
const (
	StatusDraft = "DRAFT"
	SealMarker  = "VERIABYSS_ULTIMATE_SEALED"
)

// Actor identifies who performed an action on a record
type Actor struct {
	ID   string `json:"actor_id"`
	Role string `json:"actor_role"`
}

// SystemActor returns the actor used for automatic sealing
func SystemActor() Actor {
	return Actor{ID: "auto-sealer", Role: "system"}
}

// Classification describes handling rules for the record
type Classification struct {
	DataSensitivity string `json:"data_sensitivity"`
	IPTier          string `json:"ip_tier"`
	Distribution    string `json:"distribution"`
}

// DefaultClassification returns the classification used when the input has none
func DefaultClassification() Classification {
	return Classification{
		DataSensitivity: "INTERNAL",
		IPTier:          "TIER_1",
		Distribution:    "NEED_TO_KNOW",
	}
}

// DefaultDivisionScope returns the scope used when the input has none
func DefaultDivisionScope() []string {
	return []string{"general"}
}

// DefaultClassificationJSON is DefaultClassification in its JSON form
func DefaultClassificationJSON() json.RawMessage {
	data, _ := json.Marshal(DefaultClassification())
	return data
}

// DefaultDivisionScopeJSON is DefaultDivisionScope in its JSON form
func DefaultDivisionScopeJSON() json.RawMessage {
	data, _ := json.Marshal(DefaultDivisionScope())
	return data
}

// AuditEvent is one entry of the audit trail
type AuditEvent struct {
	ID        string            `json:"event_id"`
	Timestamp time.Time         `json:"timestamp"`
	Actor     Actor             `json:"actor"`
	Action    AuditAction       `json:"action"`
	Details   map[string]string `json:"details"`
}

// AuditAction classifies audit events
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditSeal   AuditAction = "SEAL"
)

// Seals holds every seal applied to the record
type Seals struct {
	VeriAbyss VeriAbyssSeal `json:"veriabyss_seal"`
}

// VeriAbyssSeal reports the engine that scored the record and its average score
type VeriAbyssSeal struct {
	Enabled        bool      `json:"enabled"`
	ProductVersion string    `json:"product_version"`
	AntisimVersion string    `json:"antisim_version"`
	SealedAt       time.Time `json:"sealed_at"`
	MathProof      string    `json:"math_proof"`
	Preset         string    `json:"preset"`
	SealID         string    `json:"seal_id"`   // Unique per sealing call
	ScoreAvg       float64   `json:"score_avg"` // 1.0 when the record has no claims
}

// Engine metadata stamped into every seal
const (
	ProductVersion = "1.0.0"
	AntisimVersion = "4.0 Abyss x1000"
	EngineName     = "VeriAbyss v1.0.0 Ultimate"
	MathProof      = "Normalized multi-layer entropy + repetition + weighted evidence overlap + calibrated x1000 penalty"
)
