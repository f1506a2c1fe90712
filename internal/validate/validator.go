package validate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ppiankov/veriabyss/internal/model"
)

// Required top-level record fields, checked in this order
const (
	FieldVerilockVersion = "verilock_version"
	FieldRecordID        = "record_id"
	FieldClaims          = "claims"
)

// RequiredFields lists the fields every record must carry
var RequiredFields = []string{FieldVerilockVersion, FieldRecordID}

var (
	// ErrMissingField is wrapped by MissingFieldError
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is wrapped by InvalidFieldError
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidConfig is returned when the configuration fails validation
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MissingFieldError names the required field that was absent
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// InvalidFieldError names a top-level field with an unusable shape
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidField, e.Field, e.Reason)
}

func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

// Record checks the top-level fields of a decoded record.
// Presence is what counts: a required key holding null is accepted.
func Record(fields map[string]json.RawMessage) error {
	for _, key := range RequiredFields {
		if _, ok := fields[key]; !ok {
			return &MissingFieldError{Field: key}
		}
	}

	if raw, ok := fields[FieldClaims]; ok && !isNull(raw) && !isArray(raw) {
		return &InvalidFieldError{Field: FieldClaims, Reason: "must be an array"}
	}

	return nil
}

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Config validates the configuration struct tags
func Config(cfg *model.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
