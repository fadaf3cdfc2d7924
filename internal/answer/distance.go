package answer

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxCompareRunes bounds the edit-distance table so pasted text cannot
// trigger a quadratic blowup on interactive input.
const maxCompareRunes = 1000

// Distance returns the Levenshtein edit distance between a and b,
// counted in runes with unit cost per insert/delete/substitute.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > maxCompareRunes
}
