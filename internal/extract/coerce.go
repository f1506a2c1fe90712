package extract

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// text returns the string form of a JSON value.
// Strings are unquoted, null or absent values are empty, and anything else keeps
// its compact JSON text. ok is false when a non-string value was coerced.
func text(raw json.RawMessage) (s string, ok bool) {
	if isNull(raw) {
		return "", true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, true
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw)), false
	}
	return buf.String(), false
}

// number returns the finite float value of a JSON number or numeric string
func number(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// object splits a JSON object into its fields; ok is false for any other value
func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

// array splits a JSON array into its elements; ok is false for any other value
func array(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}
