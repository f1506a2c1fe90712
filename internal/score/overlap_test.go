package score

import (
	"math"
	"testing"
)

func TestTrigrams(t *testing.T) {
	if got := Trigrams(""); len(got) != 0 {
		t.Errorf("expected no trigrams for empty text, got %d", len(got))
	}

	if got := Trigrams("ab"); len(got) != 0 {
		t.Errorf("expected no trigrams for 2-rune text, got %d", len(got))
	}

	got := Trigrams("abcd")
	for _, want := range []string{"abc", "bcd"} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected trigram %q", want)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 trigrams, got %d", len(got))
	}

	// Multibyte runes count as one position each
	if got := Trigrams("\u00e9t\u00e9"); len(got) != 1 {
		t.Errorf("expected 1 trigram for 3 runes, got %d", len(got))
	}

	// Duplicates collapse
	if got := Trigrams("aaaaa"); len(got) != 1 {
		t.Errorf("expected 1 distinct trigram, got %d", len(got))
	}
}

func TestJaccard(t *testing.T) {
	a := Trigrams("abcd")
	b := Trigrams("abcx")

	if got := Jaccard(a, b); math.Abs(got-1.0/3.0) > epsilon {
		t.Errorf("expected 1/3, got %f", got)
	}

	if got := Jaccard(a, a); got != 1 {
		t.Errorf("expected 1 for identical sets, got %f", got)
	}

	if got := Jaccard(a, TrigramSet{}); got != 0 {
		t.Errorf("expected 0 against empty set, got %f", got)
	}

	if got := Jaccard(TrigramSet{}, TrigramSet{}); got != 0 {
		t.Errorf("expected 0 for two empty sets, got %f", got)
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"no serious adverse events were reported.", "serious adverse events occurred in 8 patients"},
		{"abcd", "abcx"},
		{"short", "a much longer evidence extract with short inside"},
		{"xyz", "abc"},
	}

	for _, p := range pairs {
		a, b := Trigrams(p[0]), Trigrams(p[1])
		ab, ba := Jaccard(a, b), Jaccard(b, a)
		if ab != ba {
			t.Errorf("Jaccard not symmetric for %q/%q: %f vs %f", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Jaccard out of [0,1] for %q/%q: %f", p[0], p[1], ab)
		}
	}
}

func TestEvidenceOverlap(t *testing.T) {
	if got := EvidenceOverlap("claim text", nil); got != 0 {
		t.Errorf("expected 0 with no evidence, got %f", got)
	}

	if got := EvidenceOverlap("ab", []string{"abc"}); got != 0 {
		t.Errorf("expected 0 for claim shorter than 3 runes, got %f", got)
	}

	if got := EvidenceOverlap("abc", []string{"", "xy"}); got != 0 {
		t.Errorf("expected 0 when extracts have no trigrams, got %f", got)
	}

	if got := EvidenceOverlap("abcdef", []string{"abcdef"}); got != 1 {
		t.Errorf("expected 1 for identical evidence, got %f", got)
	}
}

func TestEvidenceOverlap_ExtractsNotConcatenated(t *testing.T) {
	// Concatenating would yield "abcdef" and a perfect match; per-extract sets
	// only share abc and def with the claim's four trigrams.
	got := EvidenceOverlap("abcdef", []string{"abc", "def"})
	if math.Abs(got-0.5) > epsilon {
		t.Errorf("expected 0.5, got %f", got)
	}
}
