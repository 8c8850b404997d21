// Package textfilter turns raw page text into vocabulary candidate tokens.
package textfilter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultMinLength is the minimum token length in runes
	DefaultMinLength = 5
)

// Filter normalizes text and drops tokens that are not worth studying.
// A Filter is not safe for concurrent use; create one per request.
type Filter struct {
	minLength int
	stop      StopList
	lower     cases.Caser
}

// New creates a filter. A nil stop list means DefaultStopList.
func New(minLength int, stop StopList) *Filter {
	if minLength < 1 {
		minLength = DefaultMinLength
	}
	if stop == nil {
		stop = DefaultStopList()
	}
	return &Filter{
		minLength: minLength,
		stop:      stop,
		lower:     cases.Lower(language.German),
	}
}

// MinLength returns the configured minimum token length
func (f *Filter) MinLength() int {
	return f.minLength
}

// Tokens returns the kept tokens of text in reading order. Tokens keep their
// source case so nouns stay capitalized.
func (f *Filter) Tokens(text string) []string {
	cleaned := Clean(text)

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if f.Keep(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Keep reports whether a single cleaned token passes the filter
func (f *Filter) Keep(tok string) bool {
	if utf8.RuneCountInString(tok) < f.minLength {
		return false
	}
	if isNumeric(tok) {
		return false
	}
	return !f.stop.IsStop(f.Lower(tok))
}

// Lower returns the German lowercase form of s
func (f *Filter) Lower(s string) string {
	return f.lower.String(s)
}

// Clean removes every rune that is not a basic Latin letter, a German umlaut,
// ß or whitespace. Input is NFC-normalized first so decomposed umlauts from
// PDF text layers survive.
func Clean(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isGermanLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isGermanLetter(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	switch r {
	case 'ä', 'ö', 'ü', 'Ä', 'Ö', 'Ü', 'ß':
		return true
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
