package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/veriabyss/internal/model"
)

// Sealer seals the record stored at a path
type Sealer interface {
	SealFile(ctx context.Context, path string) (*model.SealedRecord, error)
}

// SealJob seals one record file
type SealJob struct {
	Position int
	Path     string
	Sealer   Sealer
	Limiter  *Limiter
}

// Index returns the job's position in the batch
func (j *SealJob) Index() int { return j.Position }

// Execute waits for the limiter and seals the record
func (j *SealJob) Execute(ctx context.Context) Result {
	res := &SealResult{Position: j.Position, Path: j.Path}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Path); err != nil {
			res.Error = fmt.Errorf("rate limit: %w", err)
			return res
		}
	}

	res.Record, res.Error = j.Sealer.SealFile(ctx, j.Path)
	return res
}

// SealResult is the outcome of sealing one record file
type SealResult struct {
	Position int
	Path     string
	Record   *model.SealedRecord
	Error    error
}

// Index returns the result's position in the batch
func (r *SealResult) Index() int { return r.Position }

// Err returns the sealing error, if any
func (r *SealResult) Err() error { return r.Error }

// BatchProcessor seals many record files concurrently
type BatchProcessor struct {
	sealer      Sealer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A non-positive
// recordsPerSecond disables throttling.
func NewBatchProcessor(sealer Sealer, concurrency int, recordsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		sealer:      sealer,
		concurrency: concurrency,
		limiter:     NewLimiter(recordsPerSecond, burst),
	}
}

// ProcessPaths seals every path; results keep the order of paths
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*SealResult {
	if len(paths) == 0 {
		return []*SealResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		pool.Submit(&SealJob{
			Position: i,
			Path:     path,
			Sealer:   b.sealer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	// Jobs dropped by cancellation still get a result
	out := make([]*SealResult, len(paths))
	for _, r := range results {
		res := r.(*SealResult)
		out[res.Position] = res
	}
	for i, path := range paths {
		if out[i] == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &SealResult{Position: i, Path: path, Error: err}
		}
	}

	return out
}

// ProcessFile reads record paths from a list file and seals them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*SealResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads record paths from a file (one per line).
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
