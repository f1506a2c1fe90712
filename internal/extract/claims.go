package extract

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/veriabyss/internal/model"
)

// ClaimExtractor decodes the claims array of a record.
// Decoding is permissive: missing or mistyped fields are defaulted and noted in
// the claim's warnings so one bad claim never blocks the rest.
type ClaimExtractor struct {
	evidence *EvidenceExtractor
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		evidence: NewEvidenceExtractor(),
	}
}

// Extract decodes every element of a claims array. Null or absent input yields
// no claims; every element yields exactly one claim, in order.
func (e *ClaimExtractor) Extract(raw json.RawMessage) []model.Claim {
	if isNull(raw) {
		return []model.Claim{}
	}

	items, ok := array(raw)
	if !ok {
		return []model.Claim{}
	}

	claims := make([]model.Claim, 0, len(items))
	for _, item := range items {
		claims = append(claims, e.extractOne(item))
	}
	return claims
}

func (e *ClaimExtractor) extractOne(raw json.RawMessage) model.Claim {
	fields, ok := object(raw)
	if !ok {
		return model.Claim{
			Type:     model.DefaultClaimType,
			Domain:   model.DefaultDomain,
			Warnings: []string{"claim is not an object; scored as empty"},
		}
	}

	claim := model.Claim{
		Type:   model.DefaultClaimType,
		Domain: model.DefaultDomain,
	}

	warn := func(format string, a ...interface{}) {
		claim.Warnings = append(claim.Warnings, fmt.Sprintf(format, a...))
	}

	if v, present := fields["claim_id"]; present && !isNull(v) {
		claim.ID, _ = text(v)
	}

	if v, present := fields["claim_text"]; present {
		s, ok := text(v)
		if !ok {
			warn("claim_text is not a string; coerced to %q", s)
		}
		claim.Text = s
	}

	if v, present := fields["claim_type"]; present && !isNull(v) {
		claim.Type, _ = text(v)
	}

	if v, present := fields["domain"]; present && !isNull(v) {
		claim.Domain, _ = text(v)
	}

	if v, present := fields["confidence"]; present && !isNull(v) {
		if f, ok := number(v); ok {
			claim.Confidence = &f
		} else {
			warn("confidence %s is not numeric; using %.1f", string(v), model.DefaultConfidence)
		}
	}

	if v, present := fields["evidence"]; present && !isNull(v) {
		evidence, warnings := e.evidence.Extract(v)
		claim.Evidence = evidence
		claim.Warnings = append(claim.Warnings, warnings...)
	}

	return claim
}
