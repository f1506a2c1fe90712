package score

import (
	"math"
	"strings"
)

// CharEntropy returns the Shannon entropy (bits) of the rune distribution of text
func CharEntropy(text string) float64 {
	if text == "" {
		return 0
	}

	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		counts[r]++
		total++
	}

	return round4(shannon(counts, total))
}

// WordEntropy returns the Shannon entropy (bits) of the whitespace token distribution of text
func WordEntropy(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	return round4(shannon(counts, len(words)))
}

// RepetitionRatio returns distinct tokens over total tokens.
// 1.0 means no token repeats, 0 is reserved for empty text.
func RepetitionRatio(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[w] = struct{}{}
	}

	return float64(len(distinct)) / float64(len(words))
}

// IntrinsicStats holds the text statistics behind an intrinsic score
type IntrinsicStats struct {
	CharEntropy     float64
	WordEntropy     float64
	RepetitionRatio float64
	Score           float64
}

// Intrinsic scores already-normalized text on its own statistics.
// Each entropy is divided by its realistic maximum and capped at 1, the two are
// averaged, and the average is scaled by the repetition ratio.
func Intrinsic(text string, charMax, wordMax float64) IntrinsicStats {
	stats := IntrinsicStats{
		CharEntropy:     CharEntropy(text),
		WordEntropy:     WordEntropy(text),
		RepetitionRatio: RepetitionRatio(text),
	}

	charNorm := ratio(stats.CharEntropy, charMax)
	wordNorm := ratio(stats.WordEntropy, wordMax)
	stats.Score = (charNorm + wordNorm) / 2 * stats.RepetitionRatio

	return stats
}

func shannon[K comparable](counts map[K]int, total int) float64 {
	if total == 0 {
		return 0
	}

	h := 0.0
	n := float64(total)
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// ratio divides v by limit, capped to [0,1]; 0 when limit is not positive
func ratio(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return clamp(v/limit, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
