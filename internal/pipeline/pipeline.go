package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/veriabyss/internal/cache"
	"github.com/ppiankov/veriabyss/internal/extract"
	"github.com/ppiankov/veriabyss/internal/model"
	"github.com/ppiankov/veriabyss/internal/score"
)

// Pipeline orchestrates sealing of records
type Pipeline struct {
	scorer       *score.Scorer
	preset       string
	cache        cache.Cache
	cacheTTL     time.Duration
	claimWorkers int
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
	maxBytes     int64
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used for per-claim warnings
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithClock sets the time source used for seal timestamps
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator sets the seal identifier generator
func WithIDGenerator(newID func() string) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// WithCache replaces the claim score cache; nil disables caching
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	params, err := score.ParamsFromConfig(cfg.Scoring)
	if err != nil {
		return nil, err
	}

	scorer, err := score.NewScorer(params)
	if err != nil {
		return nil, err
	}

	preset := strings.ToLower(strings.TrimSpace(cfg.Scoring.Preset))
	if preset == "" {
		preset = score.PresetReference
	}

	p := &Pipeline{
		scorer:       scorer,
		preset:       preset,
		cacheTTL:     cfg.Cache.TTL,
		claimWorkers: cfg.Concurrency.ClaimWorkers,
		logger:       slog.Default(),
		now:          time.Now,
		newID:        uuid.NewString,
		maxBytes:     DefaultMaxRecordBytes,
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	if p.claimWorkers <= 0 {
		p.claimWorkers = 1
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Scorer returns the scorer used for records sealed without overrides
func (p *Pipeline) Scorer() *score.Scorer {
	return p.scorer
}

// SealOption adjusts a single Seal call
type SealOption func(*sealOptions)

type sealOptions struct {
	strictThreshold *float64
}

// WithStrictThreshold overrides the strict threshold for one call
func WithStrictThreshold(t float64) SealOption {
	return func(o *sealOptions) { o.strictThreshold = &t }
}

// SealFile reads, validates and seals the record stored at path
func (p *Pipeline) SealFile(ctx context.Context, path string, opts ...SealOption) (*model.SealedRecord, error) {
	data, err := ReadRecordFile(path, p.maxBytes)
	if err != nil {
		return nil, err
	}
	return p.SealBytes(ctx, data, opts...)
}

// SealBytes validates and seals a JSON record document
func (p *Pipeline) SealBytes(ctx context.Context, data []byte, opts ...SealOption) (*model.SealedRecord, error) {
	rec, err := extract.ParseRecord(data)
	if err != nil {
		return nil, err
	}
	return p.Seal(ctx, rec, opts...)
}

// Seal scores every claim of a validated record and assembles the sealed document.
// The call holds no state beyond its own: timestamps and the seal id are
// generated per call.
func (p *Pipeline) Seal(ctx context.Context, rec *extract.Record, opts ...SealOption) (*model.SealedRecord, error) {
	var o sealOptions
	for _, opt := range opts {
		opt(&o)
	}

	scorer := p.scorer
	if o.strictThreshold != nil {
		s, err := score.NewScorer(p.scorer.Params().WithStrictThreshold(*o.strictThreshold))
		if err != nil {
			return nil, fmt.Errorf("strict threshold override: %w", err)
		}
		scorer = s
	}

	now := p.now().UTC()
	actor := model.SystemActor()

	claims, err := p.scoreClaims(ctx, scorer, rec.Claims, now)
	if err != nil {
		return nil, fmt.Errorf("score claims: %w", err)
	}

	scores := make([]float64, len(claims))
	for i, c := range claims {
		scores[i] = c.FinalScore
	}

	sealed := &model.SealedRecord{
		VerilockVersion: rec.VerilockVersion,
		RecordID:        rec.RecordID,
		Status:          model.StatusDraft,
		CreatedAt:       now,
		CreatedBy:       actor,
		DivisionScope:   rec.DivisionScope,
		Classification:  rec.Classification,
		Claims:          claims,
		AuditTrail: []model.AuditEvent{
			{
				ID:        "EVT-AUTO-001",
				Timestamp: now,
				Actor:     actor,
				Action:    model.AuditCreate,
				Details:   map[string]string{"note": "Initial creation"},
			},
			{
				ID:        "EVT-SEAL-001",
				Timestamp: now,
				Actor:     actor,
				Action:    model.AuditSeal,
				Details:   map[string]string{"engine": model.EngineName},
			},
		},
		Seals: model.Seals{
			VeriAbyss: model.VeriAbyssSeal{
				Enabled:        true,
				ProductVersion: model.ProductVersion,
				AntisimVersion: model.AntisimVersion,
				SealedAt:       now,
				MathProof:      model.MathProof,
				Preset:         p.preset,
				SealID:         p.newID(),
				ScoreAvg:       Average(scores),
			},
		},
		Seal: model.SealMarker,
	}

	p.logger.Debug("record sealed",
		"record_id", sealed.ID(),
		"claims", len(claims),
		"score_avg", sealed.Seals.VeriAbyss.ScoreAvg)

	return sealed, nil
}

// Average returns the mean of scores rounded to four places.
// A record without claims passes vacuously with 1.0.
func Average(scores []float64) float64 {
	if len(scores) == 0 {
		return 1.0
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return math.Round(sum/float64(len(scores))*10000) / 10000
}

// scoreClaims scores claims on up to claimWorkers goroutines. Each claim writes
// only its own slot, so the output order matches the input regardless of
// completion order.
func (p *Pipeline) scoreClaims(ctx context.Context, scorer *score.Scorer, claims []model.Claim, now time.Time) ([]model.ScoredClaim, error) {
	results := make([]model.ScoredClaim, len(claims))
	if len(claims) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.claimWorkers)

	for i, claim := range claims {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.scoreClaim(scorer, i, claim, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scoreClaim scores one claim in isolation; a panic downgrades only this claim
func (p *Pipeline) scoreClaim(scorer *score.Scorer, idx int, claim model.Claim, now time.Time) (scored model.ScoredClaim) {
	id := claim.ID
	if id == "" {
		id = fmt.Sprintf("C%04d", idx+1)
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("claim scoring failed", "claim_id", id, "panic", r)
			scored = model.ScoredClaim{
				ID:         id,
				Text:       score.Normalize(claim.Text),
				Type:       claim.Type,
				Domain:     score.NormalizeDomain(claim.Domain),
				RiskLevel:  model.RiskCritical,
				TruthState: model.TruthDisproven,
				Evidence:   FormatEvidence(idx, claim.Evidence, now),
				Warnings:   append(claim.Warnings, fmt.Sprintf("scoring failed: %v", r)),
			}
		}
	}()

	for _, w := range claim.Warnings {
		p.logger.Warn("claim input defaulted", "claim_id", id, "warning", w)
	}

	confidence := model.DefaultConfidence
	if claim.Confidence != nil {
		confidence = *claim.Confidence
	}

	extracts := make([]string, len(claim.Evidence))
	for i, ev := range claim.Evidence {
		extracts[i] = ev.Extract
	}

	result := p.cachedScore(scorer, score.Input{
		Text:       claim.Text,
		Domain:     claim.Domain,
		Extracts:   extracts,
		Confidence: confidence,
	})

	claimType := claim.Type
	if claimType == "" {
		claimType = model.DefaultClaimType
	}

	return model.ScoredClaim{
		ID:         id,
		Text:       result.Text,
		Type:       claimType,
		Domain:     result.Domain,
		RiskLevel:  result.RiskLevel,
		TruthState: result.TruthState,
		Confidence: result.Confidence,
		FinalScore: result.FinalScore,
		Scoring:    result.Breakdown,
		Evidence:   FormatEvidence(idx, claim.Evidence, now),
		Warnings:   claim.Warnings,
	}
}

// cachedScore memoizes Scorer.Score. Scoring is a pure function of its input and
// the parameters, so a hit is indistinguishable from a fresh computation.
func (p *Pipeline) cachedScore(scorer *score.Scorer, in score.Input) score.Result {
	if p.cache == nil {
		return scorer.Score(in)
	}

	parts := []string{
		scorer.Params().Fingerprint(),
		score.NormalizeDomain(in.Domain),
		strconv.FormatFloat(in.Confidence, 'g', -1, 64),
		score.Normalize(in.Text),
	}
	parts = append(parts, score.NormalizeAll(in.Extracts)...)
	key := cache.CacheKey(parts...)

	if data, found := p.cache.Get(key); found {
		var cached score.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	result := scorer.Score(in)
	if data, err := json.Marshal(result); err == nil {
		if err := p.cache.Set(key, data, p.cacheTTL); err != nil {
			p.logger.Debug("cache write failed", "error", err)
		}
	}
	return result
}
