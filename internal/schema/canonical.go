package schema

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CanonicalName produces the comparison key for a display name:
// NFC-normalized, then Unicode case-folded. Two names that differ only
// in composition form or letter case compare equal through this key.
//
// A fresh folder per call: cases.Caser carries internal buffers and is
// not safe for concurrent use.
func CanonicalName(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// CompareNames compares two display names case-insensitively, returning
// -1, 0, or +1 in the usual comparator convention.
func CompareNames(a, b string) int {
	ca, cb := CanonicalName(a), CanonicalName(b)
	switch {
	case ca < cb:
		return -1
	case ca > cb:
		return 1
	default:
		return 0
	}
}
