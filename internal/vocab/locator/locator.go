// Package locator finds the sentence a word was used in.
package locator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultMaxLen caps returned sentences, in runes
	DefaultMaxLen = 150

	// Placeholder is returned when no sentence contains the word
	Placeholder = "-"

	ellipsis = "..."
)

// Locator returns usage examples from source text
type Locator struct {
	maxLen int
}

// New creates a locator. maxLen <= 0 selects DefaultMaxLen.
func New(maxLen int) *Locator {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Locator{maxLen: maxLen}
}

// Context returns the first sentence of text containing word, or Placeholder
func (l *Locator) Context(text, word string) string {
	if s, ok := l.Find(text, word); ok {
		return s
	}
	return Placeholder
}

// Find returns the first sentence containing word as a whole word, compared
// case-insensitively in composed (NFC) form. Overlong sentences are truncated
// with an ellipsis.
func (l *Locator) Find(text, word string) (string, bool) {
	word = norm.NFC.String(strings.TrimSpace(word))
	if word == "" {
		return "", false
	}
	text = norm.NFC.String(text)

	needle := []rune(strings.ToLower(word))
	for _, sentence := range SplitSentences(text) {
		if containsWord([]rune(strings.ToLower(sentence)), needle) {
			return truncate(sentence, l.maxLen), true
		}
	}
	return "", false
}

// SplitSentences splits text after '.', '!' or '?' followed by whitespace.
// Whitespace inside a sentence, including line breaks left by PDF
// extraction, is collapsed to single spaces.
func SplitSentences(text string) []string {
	runes := []rune(text)

	var sentences []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if !isSentenceEnd(runes[i]) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentences = appendSentence(sentences, runes[start:i+1])
		start = i + 1
	}
	if start < len(runes) {
		sentences = appendSentence(sentences, runes[start:])
	}
	return sentences
}

func appendSentence(sentences []string, runes []rune) []string {
	s := strings.Join(strings.Fields(string(runes)), " ")
	if s == "" {
		return sentences
	}
	return append(sentences, s)
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// containsWord reports whether needle occurs in hay bounded on both sides by
// something other than a letter or digit.
func containsWord(hay, needle []rune) bool {
	n := len(needle)
	for i := 0; i+n <= len(hay); i++ {
		if !equalRunes(hay[i:i+n], needle) {
			continue
		}
		if i > 0 && isWordRune(hay[i-1]) {
			continue
		}
		if i+n < len(hay) && isWordRune(hay[i+n]) {
			continue
		}
		return true
	}
	return false
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxLen])) + ellipsis
}
