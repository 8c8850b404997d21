package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelTable_Classify(t *testing.T) {
	table := DefaultLevelTable()

	tests := []struct {
		score float64
		want  Level
	}{
		{7.0, LevelA1},
		{5.5, LevelA1},
		{5.49, LevelA2},
		{4.5, LevelA2},
		{4.0, LevelB1},
		{3.5, LevelB1},
		{2.5, LevelB2},
		{2.49, LevelC1},
		{0.3, LevelC1},
		{0, LevelUnknown},
		{-1, LevelUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Classify(tt.score), "score %v", tt.score)
	}
}

func TestParseLevelTable(t *testing.T) {
	table, err := ParseLevelTable("B2=2.0, A1=6, A2=5,B1=3.5")
	require.NoError(t, err)

	assert.Equal(t, LevelTable{
		{Min: 6, Level: LevelA1},
		{Min: 5, Level: LevelA2},
		{Min: 3.5, Level: LevelB1},
		{Min: 2.0, Level: LevelB2},
	}, table)
	assert.Equal(t, "A1=6,A2=5,B1=3.5,B2=2", table.String())
	assert.Equal(t, LevelB1, table.Classify(4.9))
}

func TestParseLevelTable_RoundTripsDefault(t *testing.T) {
	table, err := ParseLevelTable(DefaultLevelTable().String())
	require.NoError(t, err)
	assert.Equal(t, DefaultLevelTable(), table)
}

func TestParseLevelTable_Errors(t *testing.T) {
	for _, input := range []string{
		"",
		"A1",
		"Z9=3",
		"A1=abc",
		"A1=0",
		"A1=5,A1=4",
	} {
		_, err := ParseLevelTable(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" b2 ")
	require.NoError(t, err)
	assert.Equal(t, LevelB2, l)

	_, err = ParseLevel("unknown")
	assert.Error(t, err)
}
