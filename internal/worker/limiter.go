package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles record sealing per input directory.
// A non-positive rate disables throttling.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing recordsPerSecond per directory
func NewLimiter(recordsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Limit(recordsPerSecond)
	if recordsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until the directory holding path may be read again
func (l *Limiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(KeyFor(path)).Wait(ctx)
}

// Allow reports whether path may be read now, consuming a token if so
func (l *Limiter) Allow(path string) bool {
	return l.getLimiter(KeyFor(path)).Allow()
}

// SetDirRate overrides the limit for one directory
func (l *Limiter) SetDirRate(dir string, recordsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[filepath.Clean(dir)] = rate.NewLimiter(rate.Limit(recordsPerSecond), burst)
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter

	return limiter
}

// KeyFor returns the throttling key of a record path: its directory
func KeyFor(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
