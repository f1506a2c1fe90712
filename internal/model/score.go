package model

// ScoreBreakdown exposes every intermediate value of the scoring pipeline
type ScoreBreakdown struct {
	CharEntropy     float64  `json:"char_entropy"`
	WordEntropy     float64  `json:"word_entropy"`
	RepetitionRatio float64  `json:"repetition_ratio"`
	Intrinsic       float64  `json:"intrinsic"`
	Overlap         float64  `json:"overlap"`
	Base            float64  `json:"final_base"`
	Penalty         float64  `json:"penalty"`
	HighStakes      bool     `json:"high_stakes"`
	Signals         []Signal `json:"signals,omitempty"`
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Formula and inputs
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalIntrinsic     SignalType = "intrinsic"  // Entropy and repetition of the claim text
	SignalRepetition    SignalType = "repetition" // Repeated tokens collapsing the intrinsic score
	SignalOverlap       SignalType = "evidence_overlap"
	SignalNoEvidence    SignalType = "no_evidence"
	SignalStrictPenalty SignalType = "strict_penalty" // High-stakes cliff applied
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
