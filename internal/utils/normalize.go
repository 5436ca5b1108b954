package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeTerm trims and lowercases a search term.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RuneLen returns the length of s in runes. Offsets handed to and from
// editors are rune offsets, never byte offsets.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ClampRune clamps an offset into [0, n].
func ClampRune(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
