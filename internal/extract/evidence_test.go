package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/veriabyss/internal/model"
)

func TestEvidenceExtractor_Defaults(t *testing.T) {
	evidence, warnings := NewEvidenceExtractor().Extract(json.RawMessage(`[{"extract": "p-value = 0.032"}]`))
	require.Len(t, evidence, 1)
	assert.Empty(t, warnings)

	assert.Equal(t, model.Evidence{
		Extract:   "p-value = 0.032",
		Type:      model.DefaultEvidenceType,
		Source:    model.DefaultSource,
		Relevance: model.DefaultRelevance,
	}, evidence[0])
}

func TestEvidenceExtractor_MalformedItemKeepsPosition(t *testing.T) {
	evidence, warnings := NewEvidenceExtractor().Extract(json.RawMessage(`[3, {"extract": "second"}]`))
	require.Len(t, evidence, 2)
	require.Len(t, warnings, 1)

	assert.Equal(t, "", evidence[0].Extract)
	assert.Equal(t, "second", evidence[1].Extract)
	assert.Contains(t, warnings[0], "evidence[0]")
}

func TestEvidenceExtractor_NotArray(t *testing.T) {
	evidence, warnings := NewEvidenceExtractor().Extract(json.RawMessage(`{"extract": "x"}`))
	assert.Empty(t, evidence)
	assert.Len(t, warnings, 1)
}

func TestEvidenceExtractor_ObjectSourceCoerced(t *testing.T) {
	evidence, _ := NewEvidenceExtractor().Extract(json.RawMessage(`[{"extract": "x", "source": {"doc": "CRF", "page": 4}}]`))
	require.Len(t, evidence, 1)
	assert.Equal(t, `{"doc":"CRF","page":4}`, evidence[0].Source)
}
