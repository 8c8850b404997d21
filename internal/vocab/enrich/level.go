package enrich

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Level is a CEFR difficulty label
type Level string

const (
	LevelA1      Level = "A1"
	LevelA2      Level = "A2"
	LevelB1      Level = "B1"
	LevelB2      Level = "B2"
	LevelC1      Level = "C1"
	LevelUnknown Level = "unknown"
)

// String implements fmt.Stringer
func (l Level) String() string {
	return string(l)
}

// ParseLevel converts a label such as "b2" to a Level
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelA1:
		return LevelA1, nil
	case LevelA2:
		return LevelA2, nil
	case LevelB1:
		return LevelB1, nil
	case LevelB2:
		return LevelB2, nil
	case LevelC1:
		return LevelC1, nil
	}
	return LevelUnknown, fmt.Errorf("unknown level %q", s)
}

// Threshold maps the minimum Zipf score to a level
type Threshold struct {
	Min   float64 `json:"min"`
	Level Level   `json:"level"`
}

// LevelTable is a list of thresholds sorted by descending score. A positive
// score below every threshold is C1.
type LevelTable []Threshold

// DefaultLevelTable returns the built-in score bands
func DefaultLevelTable() LevelTable {
	return LevelTable{
		{Min: 5.5, Level: LevelA1},
		{Min: 4.5, Level: LevelA2},
		{Min: 3.5, Level: LevelB1},
		{Min: 2.5, Level: LevelB2},
	}
}

// Classify maps a Zipf score to a level. Scores <= 0 mean the corpus does
// not know the word.
func (t LevelTable) Classify(score float64) Level {
	if score <= 0 {
		return LevelUnknown
	}
	for _, th := range t {
		if score >= th.Min {
			return th.Level
		}
	}
	return LevelC1
}

// String renders the table in the form accepted by ParseLevelTable
func (t LevelTable) String() string {
	parts := make([]string, 0, len(t))
	for _, th := range t {
		parts = append(parts, fmt.Sprintf("%s=%s", th.Level, strconv.FormatFloat(th.Min, 'f', -1, 64)))
	}
	return strings.Join(parts, ",")
}

// ParseLevelTable reads a table such as "A1=5.5,A2=4.5,B1=3.5,B2=2.5".
// Entries may be given in any order; the result is sorted by descending score.
func ParseLevelTable(s string) (LevelTable, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("level table is empty")
	}

	var table LevelTable
	seen := make(map[Level]bool)
	for _, part := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("invalid level table entry %q: expected LEVEL=SCORE", part)
		}

		level, err := ParseLevel(name)
		if err != nil {
			return nil, err
		}
		if seen[level] {
			return nil, fmt.Errorf("level %s listed twice", level)
		}
		seen[level] = true

		min, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score for %s: %w", level, err)
		}
		if min <= 0 {
			return nil, fmt.Errorf("score for %s must be positive, got %v", level, min)
		}
		table = append(table, Threshold{Min: min, Level: level})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Min > table[j].Min
	})
	return table, nil
}
