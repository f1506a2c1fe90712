package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/validate"
)

// ErrNotObject is returned when a record document is not a JSON object
var ErrNotObject = errors.New("record must be a JSON object")

// Record is a validated input record with permissively decoded claims.
// Envelope fields hold the input's JSON values unchanged.
type Record struct {
	VerilockVersion json.RawMessage
	RecordID        json.RawMessage
	DivisionScope   json.RawMessage
	Classification  json.RawMessage
	Claims          []model.Claim
}

// ParseRecord decodes and validates a record document.
// Malformed claims never fail the record; see ClaimExtractor.
func ParseRecord(data []byte) (*Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if fields == nil {
		return nil, ErrNotObject
	}

	return RecordFromFields(fields)
}

// RecordFromFields validates and decodes an already split record
func RecordFromFields(fields map[string]json.RawMessage) (*Record, error) {
	if err := validate.Record(fields); err != nil {
		return nil, err
	}

	rec := &Record{
		VerilockVersion: passthrough(fields[validate.FieldVerilockVersion], nil),
		RecordID:        passthrough(fields[validate.FieldRecordID], nil),
		DivisionScope:   passthrough(fields["division_scope"], model.DefaultDivisionScopeJSON()),
		Classification:  passthrough(fields["classification"], model.DefaultClassificationJSON()),
		Claims:          NewClaimExtractor().Extract(fields[validate.FieldClaims]),
	}

	return rec, nil
}

// passthrough returns the compacted input value, or def when the key is absent.
// An explicit null is kept.
func passthrough(raw json.RawMessage, def json.RawMessage) json.RawMessage {
	if raw == nil {
		return def
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
