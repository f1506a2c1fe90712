package model

// Claim is a single factual assertion submitted for scoring
type Claim struct {
	ID         string     `json:"claim_id,omitempty"`
	Text       string     `json:"claim_text"`           // Raw claim text, normalized during scoring
	Type       string     `json:"claim_type,omitempty"` // Defaults to FACT
	Domain     string     `json:"domain,omitempty"`     // Case-insensitive, defaults to GENERAL
	Confidence *float64   `json:"confidence,omitempty"` // Caller confidence, nil means 1.0
	Evidence   []Evidence `json:"evidence,omitempty"`

	// Warnings collects decode problems that were defaulted instead of failing the record
	Warnings []string `json:"-"`
}

// Claim defaults applied when the input omits a field
const (
	DefaultClaimType  = "FACT"
	DefaultDomain     = "GENERAL"
	DefaultConfidence = 1.0
)

// ScoredClaim is a claim after it went through the scoring pipeline
type ScoredClaim struct {
	ID         string           `json:"claim_id"`
	Text       string           `json:"claim_text"` // Normalized text
	Type       string           `json:"claim_type"`
	Domain     string           `json:"domain"`
	RiskLevel  RiskLevel        `json:"risk_level"`
	TruthState TruthState       `json:"truth_state"`
	Confidence float64          `json:"confidence"` // Adjusted confidence, never above the input
	FinalScore float64          `json:"final_score"`
	Scoring    ScoreBreakdown   `json:"scoring"`
	Evidence   []ScoredEvidence `json:"evidence"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// RiskLevel is the risk classification derived from the final score
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// TruthState is the verification label derived from the final score
type TruthState string

const (
	TruthVerified          TruthState = "VERIFIED"
	TruthPartiallyVerified TruthState = "PARTIALLY_VERIFIED"
	TruthUnverified        TruthState = "UNVERIFIED"
	TruthDisproven         TruthState = "DISPROVEN"
)
