package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/score"
	"github.com/ppiankov/veriabyss/internal/validate"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	toStdout, outMD, preset, scoreJSON, withMarkdown = false, "", "", false, false
	concurrency = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, initConfigFile(path))
	return path
}

func TestInitConfigFile(t *testing.T) {
	path := writeConfig(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# VeriAbyss configuration file")
	assert.Contains(t, string(data), "preset: reference")

	err = initConfigFile(path)
	assert.ErrorContains(t, err, "already exists")
}

func TestLoadConfig_RoundTripsDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(writeConfig(t))
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scoring:
  preset: strict
  strict_threshold: 0.9
  high_stakes_domains: [LEGAL]
cache:
  ttl: 5m
concurrency:
  claim_workers: 4
`), 0644))

	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Scoring.Preset)
	require.NotNil(t, cfg.Scoring.StrictThreshold)
	assert.Equal(t, 0.9, *cfg.Scoring.StrictThreshold)
	assert.Nil(t, cfg.Scoring.EvidenceWeight)
	assert.Equal(t, []string{"LEGAL"}, cfg.Scoring.HighStakesDomains)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Concurrency.ClaimWorkers)
	assert.Equal(t, 4, cfg.Concurrency.Workers)

	params, err := score.ParamsFromConfig(cfg.Scoring)
	require.NoError(t, err)
	assert.Equal(t, 0.9, params.StrictThreshold)
	assert.Equal(t, 1.0, params.EvidenceWeight)
}

func TestLoadConfig_EnvOverridesScoring(t *testing.T) {
	t.Setenv("VERIABYSS_SCORING_PRESET", "strict")
	t.Setenv("VERIABYSS_SCORING_STRICT_THRESHOLD", "0.9")
	t.Setenv("VERIABYSS_SCORING_EVIDENCE_WEIGHT", "3")
	t.Setenv("VERIABYSS_SCORING_HIGH_STAKES_DOMAINS", "LEGAL,GENOMICS")
	t.Setenv("VERIABYSS_CONCURRENCY_CLAIM_WORKERS", "6")

	v := viper.New()
	configureEnv(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Scoring.Preset)
	require.NotNil(t, cfg.Scoring.StrictThreshold)
	assert.Equal(t, 0.9, *cfg.Scoring.StrictThreshold)
	require.NotNil(t, cfg.Scoring.EvidenceWeight)
	assert.Equal(t, 3.0, *cfg.Scoring.EvidenceWeight)
	assert.Nil(t, cfg.Scoring.PenaltyMultiplier)
	assert.Equal(t, []string{"LEGAL", "GENOMICS"}, cfg.Scoring.HighStakesDomains)
	assert.Equal(t, 6, cfg.Concurrency.ClaimWorkers)

	params, err := score.ParamsFromConfig(cfg.Scoring)
	require.NoError(t, err)
	assert.Equal(t, 0.9, params.StrictThreshold)
	assert.Equal(t, 3.0, params.EvidenceWeight)
}

func TestLoadConfig_Invalid(t *testing.T) {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.Set("concurrency.workers", 0)

	_, err := loadConfig(v)
	assert.ErrorIs(t, err, validate.ErrInvalidConfig)
}

func TestSealCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "record.json")
	out := filepath.Join(dir, "out", "sealed.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"verilock_version": "1.0.0", "record_id": "TEST", "claims": []}`), 0644))

	stdout, err := execute(t, "--config", writeConfig(t), "seal", in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sealed record written to "+out+" (avg_score: 1.0)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var sealed model.SealedRecord
	require.NoError(t, json.Unmarshal(data, &sealed))
	assert.Equal(t, "TEST", sealed.ID())
	assert.Equal(t, model.SealMarker, sealed.Seal)
	assert.Len(t, sealed.AuditTrail, 2)
}

func TestSealCommand_MissingField(t *testing.T) {
	in := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"verilock_version": "1.0.0"}`), 0644))

	_, err := execute(t, "--config", writeConfig(t), "seal", in, "--stdout")
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrMissingField)
	assert.Contains(t, err.Error(), "missing required field: record_id")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "in", "good.json")
	bad := filepath.Join(dir, "in", "bad.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(good), 0755))
	require.NoError(t, os.WriteFile(good, []byte(`{"verilock_version": "1.0.0", "record_id": "GOOD", "claims": [
		{"claim_text": "hello hello hello"}
	]}`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"verilock_version": "1.0.0"}`), 0644))

	list := filepath.Join(dir, "records.txt")
	require.NoError(t, os.WriteFile(list, []byte("# records\n"+good+"\n"+bad+"\n"+good+"\n"), 0644))
	outDir := filepath.Join(dir, "sealed")

	output, err := execute(t, "--config", writeConfig(t), "batch", list, "--output-dir", outDir, "--concurrency", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 records failed")
	assert.Contains(t, output, "Failures:  1")
	assert.Contains(t, output, "missing required field: record_id")

	data, err := os.ReadFile(filepath.Join(outDir, "good.sealed.json"))
	require.NoError(t, err)
	var sealed model.SealedRecord
	require.NoError(t, json.Unmarshal(data, &sealed))
	assert.Equal(t, "GOOD", sealed.ID())
	require.Len(t, sealed.Claims, 1)
	assert.Equal(t, model.RiskHigh, sealed.Claims[0].RiskLevel)

	_, err = os.Stat(filepath.Join(outDir, "bad.sealed.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestScoreCommand_JSON(t *testing.T) {
	stdout, err := execute(t, "--config", writeConfig(t), "score", "hello hello hello", "--json")
	require.NoError(t, err)

	var result score.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "hello hello hello", result.Text)
	assert.Equal(t, model.DefaultDomain, result.Domain)
	assert.Equal(t, model.RiskHigh, result.RiskLevel)
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "veriabyss "+Version)
	assert.Contains(t, stdout, model.EngineName)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"records/trial-001.json", "trial-001"},
		{"my record.json", "my-record"},
		{"a:b?.json", "a_b_"},
		{"noext", "noext"},
		{"", "record"},
		{strings.Repeat("x", 150) + ".json", strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, outputName(tt.in), tt.in)
	}
}

func TestUniqueName(t *testing.T) {
	seen := make(map[string]int)
	assert.Equal(t, "rec", uniqueName(seen, "rec"))
	assert.Equal(t, "rec-2", uniqueName(seen, "rec"))
	assert.Equal(t, "other", uniqueName(seen, "other"))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "1.0", formatScore(1))
	assert.Equal(t, "0.0", formatScore(0))
	assert.Equal(t, "0.3568", formatScore(0.3568))
}
