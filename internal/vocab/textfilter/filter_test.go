package textfilter

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "punctuation and digits removed",
			in:   "Seite 12: Die Resilienz, (wichtig)!",
			want: "Seite  Die Resilienz wichtig",
		},
		{
			name: "umlauts and sharp s kept",
			in:   "Größe über Fußgänger",
			want: "Größe über Fußgänger",
		},
		{
			name: "decomposed umlaut is composed",
			in:   "Gru\u0308n",
			want: "Grün",
		},
		{
			name: "foreign letters dropped",
			in:   "café naïve",
			want: "caf nave",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestFilter_Tokens(t *testing.T) {
	f := New(4, nil)

	got := f.Tokens("Die Resilienz ist wichtig für die Gesundheit.")
	assert.Equal(t, []string{"Resilienz", "wichtig", "Gesundheit"}, got)

	got = f.Tokens("Resilienz bedeutet Widerstandsfähigkeit.")
	assert.Equal(t, []string{"Resilienz", "bedeutet", "Widerstandsfähigkeit"}, got)
}

func TestFilter_TokensKeepOriginalCase(t *testing.T) {
	f := New(3, NewStopList())

	got := f.Tokens("Haus haus HAUS")
	assert.Equal(t, []string{"Haus", "haus", "HAUS"}, got)
}

func TestFilter_Invariants(t *testing.T) {
	stop := DefaultStopList()
	inputs := []string{
		"Aufgabe 3: Lesen Sie den Text auf Seite 42 und kreuzen Sie an.",
		"12345 6789 Über Brücken gehen wir gemeinsam, obwohl es regnet.",
		"Hueber Verlag GmbH, ISBN 978-3-19-001234-5 - Kursbuch B2",
		"Die Kinder spielen im Garten; der Hund bellt laut!",
		"",
	}

	for _, minLen := range []int{3, 4, 5, 8} {
		f := New(minLen, stop)
		for _, in := range inputs {
			for _, tok := range f.Tokens(in) {
				assert.GreaterOrEqual(t, utf8.RuneCountInString(tok), minLen, "token %q", tok)
				assert.False(t, stop.IsStop(f.Lower(tok)), "stop word %q leaked", tok)
				assert.False(t, isNumeric(tok), "numeric token %q leaked", tok)
			}
		}
	}
}

func TestFilter_BoilerplateExcluded(t *testing.T) {
	f := New(3, nil)

	got := f.Tokens("Lektion Kapitel Aufgabe Übung Cornelsen Hueber Klett Wohnung")
	assert.Equal(t, []string{"Wohnung"}, got)
}

func TestFilter_MinLengthCountsRunes(t *testing.T) {
	f := New(4, NewStopList())

	// "Öl" + "Maß": short in runes even though longer in bytes
	got := f.Tokens("Öl Maß Größe")
	assert.Equal(t, []string{"Größe"}, got)
}

func TestNew_Defaults(t *testing.T) {
	f := New(0, nil)
	require.NotNil(t, f)
	assert.Equal(t, DefaultMinLength, f.MinLength())
	assert.True(t, f.stop.IsStop("und"))
}

func TestStopWords(t *testing.T) {
	s := NewStopList("Foo", " bar ", "")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.IsStop("foo"))
	assert.True(t, s.IsStop("bar"))
	assert.False(t, s.IsStop("Foo"), "lookups expect lowercase input")

	s.Add("Baz")
	assert.Equal(t, []string{"bar", "baz", "foo"}, s.All())
}

func TestDefaultStopList_ContainsBaseWords(t *testing.T) {
	s := DefaultStopList()
	for _, w := range []string{
		"der", "die", "das", "und", "ist", "in", "zu", "den", "dem", "des",
		"mit", "auf", "für", "von", "ein", "eine", "einen", "sich", "aus",
		"dass", "nicht", "war", "aber", "man", "bei", "wie", "wir", "oder",
		"kann", "sind", "werden", "wird", "auch", "noch", "nur", "vor", "nach",
		"über", "wenn", "zum", "zur", "habe", "hat", "durch", "unter", "diese",
	} {
		assert.True(t, s.IsStop(w), w)
	}
}
