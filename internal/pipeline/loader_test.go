package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecordFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"record_id": "R"}`), 0644))

	data, err := ReadRecordFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"record_id": "R"}`, string(data))

	_, err = ReadRecordFile(path, 5)
	assert.ErrorIs(t, err, ErrRecordTooLarge)

	_, err = ReadRecordFile(filepath.Join(dir, "missing.json"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSealFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"verilock_version": "1.0.0", "record_id": "FILE-1"}`), 0644))

	p := newTestPipeline(t, nil)
	sealed, err := p.SealFile(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "FILE-1", sealed.ID())
}

func TestRenderer_RenderJSON(t *testing.T) {
	p := newTestPipeline(t, nil)
	sealed := seal(t, p, `{"verilock_version": "1.0.0", "record_id": "OUT-1", "claims": [
		{"claim_text": "hello hello hello"}
	]}`)

	out := filepath.Join(t.TempDir(), "nested", "sealed.json")
	require.NoError(t, NewRenderer(true).RenderJSON(sealed, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "OUT-1", doc["record_id"])
	assert.Equal(t, "DRAFT", doc["status"])
	assert.Nil(t, doc["updated_at"])
	assert.Equal(t, "VERIABYSS_ULTIMATE_SEALED", doc["seal"])

	seals := doc["seals"].(map[string]any)
	block := seals["veriabyss_seal"].(map[string]any)
	assert.Equal(t, true, block["enabled"])
	assert.Equal(t, "seal-test", block["seal_id"])
	assert.Contains(t, block, "score_avg")

	claims := doc["claims"].([]any)
	require.Len(t, claims, 1)
	claim := claims[0].(map[string]any)
	assert.Equal(t, "C0001", claim["claim_id"])
	assert.Equal(t, "HIGH", claim["risk_level"])
	assert.Equal(t, "UNVERIFIED", claim["truth_state"])
}

func TestRenderer_WriteJSONCompact(t *testing.T) {
	p := newTestPipeline(t, nil)
	sealed := seal(t, p, `{"verilock_version": "1.0.0", "record_id": "R"}`)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteJSON(&buf, sealed))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestRenderer_RenderMarkdown(t *testing.T) {
	p := newTestPipeline(t, nil)
	sealed := seal(t, p, `{"verilock_version": "1.0.0", "record_id": "MD-1", "claims": [
		{"claim_id": "A", "claim_text": "hello hello hello"}
	]}`)

	out := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, NewRenderer(true).RenderMarkdown(sealed, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# Sealed record MD-1")
	assert.Contains(t, md, "| A | GENERAL |")
	assert.Contains(t, md, "## A")
}

func TestRenderer_RenderSummary(t *testing.T) {
	p := newTestPipeline(t, nil)
	sealed := seal(t, p, `{"verilock_version": "1.0.0", "record_id": "S", "claims": [
		{"claim_text": "hello hello hello"},
		{"claim_text": ""}
	]}`)

	var buf bytes.Buffer
	NewRenderer(true).RenderSummary(&buf, sealed)
	assert.Contains(t, buf.String(), "Record S: 2 claims")
	assert.Contains(t, buf.String(), "HIGH 1  CRITICAL 1")
}

func TestFormatEvidence_Empty(t *testing.T) {
	assert.Empty(t, FormatEvidence(0, nil, fixedNow))
	assert.Equal(t, "EV0010-3", EvidenceID(9, 2))
	assert.Equal(t, "", HashExtract(""))
}
