// Package corpus provides word frequency lookups for difficulty levels.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry is one word frequency record
type Entry struct {
	Word string
	Zipf float64
}

// ReadTSV calls fn for every "word<TAB>zipf" line in r. Blank lines and
// lines starting with '#' are ignored. Words are lowercased.
func ReadTSV(r io.Reader, fn func(Entry) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, value, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("line %d: expected word<TAB>zipf", lineNo)
		}
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			return fmt.Errorf("line %d: empty word", lineNo)
		}

		zipf, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid zipf value: %w", lineNo, err)
		}
		if zipf < 0 {
			return fmt.Errorf("line %d: negative zipf value %v", lineNo, zipf)
		}

		if err := fn(Entry{Word: word, Zipf: zipf}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return nil
}
