package score

import (
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Hello World  ":       "hello world",
		"":                      "",
		" \t\n ":                "",
		"Cafe\u0301":            "caf\u00e9",
		"P-VALUE = 0.032":       "p-value = 0.032",
		"A\u030aNGSTRO\u0308M ": "\u00e5ngstr\u00f6m",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  The Primary Endpoint  ",
		"Café au lait",
		"Å",
		"\u0130stanbul",
		"\u03a3\u038a\u03a3\u03a5\u03a6\u039f\u03a3",
		"   ",
		"mixed\tTabs\nand Lines",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeAll_KeepsOrder(t *testing.T) {
	got := NormalizeAll([]string{" B ", "a", ""})
	want := []string{"b", "a", ""}

	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNormalize_IdempotentWithCombiningMarks(t *testing.T) {
	if got := Normalize("\U00010041\u0301"); Normalize(got) != got {
		t.Errorf("Normalize not idempotent for U+10041 U+0301: %q", got)
	}

	for r := rune(0); r <= unicode.MaxRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		for _, mark := range []string{"\u0301", "\u0308"} {
			in := string(r) + mark
			once := Normalize(in)
			if twice := Normalize(once); once != twice {
				t.Fatalf("Normalize not idempotent for %U%s: %q then %q", r, mark, once, twice)
			}
		}
	}
}
