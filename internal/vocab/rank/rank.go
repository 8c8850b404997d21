// Package rank aggregates vocabulary tokens into a frequency-ordered list.
package rank

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is a word with the number of times it occurred
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Counter accumulates tokens across pages. Tokens are aggregated by their
// German lowercase form; the spelling seen first is kept for display.
// A Counter is not safe for concurrent use.
type Counter struct {
	index   map[string]int
	entries []Entry
	lower   cases.Caser
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{
		index: make(map[string]int),
		lower: cases.Lower(language.German),
	}
}

// Add counts tokens in the order given
func (c *Counter) Add(tokens ...string) {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		key := c.lower.String(tok)
		if i, ok := c.index[key]; ok {
			c.entries[i].Count++
			continue
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, Entry{Word: tok, Count: 1})
	}
}

// Len returns the number of distinct words counted so far
func (c *Counter) Len() int {
	return len(c.entries)
}

// Ranked returns every entry ordered by descending count. Ties keep the order
// in which words were first seen.
func (c *Counter) Ranked() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns the n most frequent entries. Truncation happens after the full
// ranking; n <= 0 returns everything.
func (c *Counter) Top(n int) []Entry {
	ranked := c.Ranked()
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

// Rank counts tokens and returns the top n entries
func Rank(tokens []string, n int) []Entry {
	c := NewCounter()
	c.Add(tokens...)
	return c.Top(n)
}
