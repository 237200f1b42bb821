// Package search implements the text matching used to filter notes: a substring match that ignores
// letter case and diacritics, so "cafe" finds "Café" and "NAIVE" finds "naïve".
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"notekeeper/internal/model"
)

// Fold returns s case-folded and stripped of combining marks.
// Transformers and casers are stateful, so a fresh chain is built per call.
func Fold(s string) string {
	if s == "" {
		return s
	}
	folded := cases.Fold().String(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, folded)
	if err != nil {
		return folded
	}
	return out
}

// Contains reports whether text contains filter, ignoring case and diacritics.
// An empty filter matches everything.
func Contains(text, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(Fold(text), Fold(filter))
}

// MatchNote reports whether the note's title or content contains filter.
func MatchNote(n model.Note, filter string) bool {
	if filter == "" {
		return true
	}
	f := Fold(filter)
	return strings.Contains(Fold(n.Title), f) || strings.Contains(Fold(n.Content), f)
}
