// Package trigram computes pg_trgm compatible trigram similarity, used where
// the PostgreSQL extension is not available (the in-memory store).
package trigram

import (
	"strings"
	"unicode"
)

// DefaultThreshold mirrors pg_trgm.similarity_threshold, the cut-off of the % operator
const DefaultThreshold = 0.3

// Set extracts the trigram set of s. Each alphanumeric word is lower-cased and
// padded with two leading blanks and one trailing blank before slicing, as
// pg_trgm does.
func Set(s string) map[string]struct{} {
	set := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity returns the ratio of shared trigrams to all distinct trigrams of
// a and b, in [0, 1]
func Similarity(a, b string) float64 {
	sa, sb := Set(a), Set(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	shared := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(sa)+len(sb)-shared)
}

// Match reports whether a and b are similar under DefaultThreshold
func Match(a, b string) bool {
	return Similarity(a, b) >= DefaultThreshold
}
