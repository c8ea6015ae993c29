package registry

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName canonicalises a personal name: lower-case everything, then
// upper-case the first rune of each whitespace-separated word when it is a
// letter. Words are re-joined with single spaces.
//
//	"  mARIO   de rossi " -> "Mario De Rossi"
//	"d'angelo"           -> "D'angelo"
//	"3rd"                -> "3rd"
func NormalizeName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// A Caser keeps state between calls, so each call gets its own.
	words := strings.Fields(cases.Lower(language.Und).String(trimmed))
	for i, w := range words {
		words[i] = titleFirst(w)
	}
	return strings.Join(words, " ")
}

func titleFirst(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if !unicode.IsLetter(r) {
		return word
	}
	return string(unicode.ToTitle(r)) + word[size:]
}
