package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Characters stripped when PunctuationSensitive is off. The apostrophe
// is included so "l'eau" and "leau" compare equal.
const punctCutset = ".,;:!?¿¡'\"“”‘’`´()[]{}<>/\\|@#$%^&*_~+=-"

// Normalize canonicalizes s into a comparison key: casefold, accent
// fold, punctuation strip, whitespace collapse, trim. Each fold is
// skipped when the matching sensitivity option is set. Idempotent.
func Normalize(s string, opts Options) string {
	if !opts.CaseSensitive {
		s = strings.ToLower(s)
	}
	if !opts.AccentSensitive {
		s = foldMarks(s)
	}
	if !opts.PunctuationSensitive {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(punctCutset, r) {
				return -1
			}
			return r
		}, s)
	}
	return strings.Join(strings.Fields(s), " ")
}

// foldMarks removes combining diacritical marks after canonical
// decomposition. A fresh transformer chain per call keeps this safe
// from any goroutine.
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
