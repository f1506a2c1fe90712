package score

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxNormalizePasses = 4

// Normalize composes text into Unicode NFC, lowercases it and trims it.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	// Composition can produce uppercase runes, so repeat until stable
	s = norm.NFC.String(s)
	for i := 0; i < maxNormalizePasses; i++ {
		next := norm.NFC.String(strings.ToLower(s))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// NormalizeAll normalizes every extract, keeping order
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}
