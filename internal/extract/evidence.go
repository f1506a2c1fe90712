package extract

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/veriabyss/internal/model"
)

// EvidenceExtractor decodes a claim's evidence array
type EvidenceExtractor struct{}

// NewEvidenceExtractor creates a new evidence extractor
func NewEvidenceExtractor() *EvidenceExtractor {
	return &EvidenceExtractor{}
}

// Extract decodes every element of an evidence array and returns the problems
// it defaulted around. A malformed element still yields an (empty) item so
// evidence identifiers stay aligned with input positions.
func (e *EvidenceExtractor) Extract(raw json.RawMessage) ([]model.Evidence, []string) {
	if isNull(raw) {
		return nil, nil
	}

	items, ok := array(raw)
	if !ok {
		return nil, []string{"evidence is not an array; ignored"}
	}

	var warnings []string
	evidence := make([]model.Evidence, 0, len(items))
	for i, item := range items {
		ev, problem := e.extractOne(item)
		if problem != "" {
			warnings = append(warnings, fmt.Sprintf("evidence[%d]: %s", i, problem))
		}
		evidence = append(evidence, ev)
	}

	return evidence, warnings
}

func (e *EvidenceExtractor) extractOne(raw json.RawMessage) (model.Evidence, string) {
	ev := model.Evidence{
		Type:      model.DefaultEvidenceType,
		Source:    model.DefaultSource,
		Relevance: model.DefaultRelevance,
	}

	fields, ok := object(raw)
	if !ok {
		return ev, "not an object; treated as empty"
	}

	problem := ""
	if v, present := fields["extract"]; present {
		s, ok := text(v)
		if !ok {
			problem = fmt.Sprintf("extract is not a string; coerced to %q", s)
		}
		ev.Extract = s
	}

	if v, present := fields["evidence_type"]; present && !isNull(v) {
		ev.Type, _ = text(v)
	}
	if v, present := fields["source"]; present && !isNull(v) {
		ev.Source, _ = text(v)
	}
	if v, present := fields["relevance"]; present && !isNull(v) {
		ev.Relevance, _ = text(v)
	}

	return ev, problem
}
