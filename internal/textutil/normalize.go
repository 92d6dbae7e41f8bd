// Package textutil normalizes user-supplied text (comment bodies, group
// names) before it is validated and stored.
//
// Normalization is Unicode NFC composition followed by full-width folding of
// ASCII-range characters, whitespace-run collapsing on each line, and
// trimming. Two strings that render the same therefore store the same bytes
// and have the same rune length.
package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize returns the canonical stored form of s.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = width.Fold.String(s)
	return strings.TrimSpace(collapseSpaces(s))
}

// TooLong reports whether s exceeds max runes. max <= 0 means unlimited.
func TooLong(s string, max int) bool {
	return max > 0 && utf8.RuneCountInString(s) > max
}

// collapseSpaces folds runs of spaces, tabs and carriage returns into a
// single space. Newlines are kept so multi-line comments survive.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\u00a0' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
