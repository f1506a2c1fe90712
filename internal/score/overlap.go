package score

// TrigramSet is a set of 3-rune substrings
type TrigramSet map[string]struct{}

// Trigrams returns every contiguous 3-rune substring of text.
// Text shorter than three runes has no trigrams.
func Trigrams(text string) TrigramSet {
	runes := []rune(text)
	n := len(runes) - 2
	if n <= 0 {
		return TrigramSet{}
	}

	set := make(TrigramSet, n)
	for i := 0; i < n; i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when either set is empty
func Jaccard(a, b TrigramSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	inter := 0
	for k := range small {
		if _, ok := large[k]; ok {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// EvidenceOverlap compares the claim's trigrams against the union of the trigrams
// of each extract. Extracts are not concatenated first, so no trigram spans two
// extracts. All inputs are expected to be normalized.
func EvidenceOverlap(claim string, extracts []string) float64 {
	claimSet := Trigrams(claim)
	if len(claimSet) == 0 {
		return 0
	}

	evidenceSet := TrigramSet{}
	for _, ext := range extracts {
		for k := range Trigrams(ext) {
			evidenceSet[k] = struct{}{}
		}
	}

	return Jaccard(claimSet, evidenceSet)
}
