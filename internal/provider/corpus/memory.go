package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Memory is an in-memory corpus for a single language
type Memory struct {
	mu     sync.RWMutex
	lang   string
	scores map[string]float64
}

// NewMemory creates an empty corpus for lang
func NewMemory(lang string) *Memory {
	return &Memory{lang: lang, scores: make(map[string]float64)}
}

// LoadMemory reads a word<TAB>zipf list
func LoadMemory(r io.Reader, lang string) (*Memory, error) {
	m := NewMemory(lang)
	err := ReadTSV(r, func(e Entry) error {
		m.scores[e.Word] = e.Zipf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LoadMemoryFile reads a word<TAB>zipf file from disk
func LoadMemoryFile(path, lang string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return LoadMemory(f, lang)
}

// Set adds or replaces a score
func (m *Memory) Set(word string, zipf float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[strings.ToLower(word)] = zipf
}

// Len returns the number of words
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scores)
}

// Score returns the Zipf frequency of word, or 0 if it is unknown or lang
// differs from the corpus language
func (m *Memory) Score(ctx context.Context, word, lang string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if lang != "" && m.lang != "" && lang != m.lang {
		return 0, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[strings.ToLower(word)], nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
