package locator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic",
			text: "Der Zug kommt. Ist er pünktlich? Ja!",
			want: []string{"Der Zug kommt.", "Ist er pünktlich?", "Ja!"},
		},
		{
			name: "line breaks collapse",
			text: "Die Resilienz ist\nwichtig.\n\nResilienz bedeutet\tWiderstandsfähigkeit.",
			want: []string{"Die Resilienz ist wichtig.", "Resilienz bedeutet Widerstandsfähigkeit."},
		},
		{
			name: "abbreviation without space does not split",
			text: "Der Preis ist 3.50 Euro. Danke.",
			want: []string{"Der Preis ist 3.50 Euro.", "Danke."},
		},
		{
			name: "no terminal punctuation",
			text: "ohne Punkt am Ende",
			want: []string{"ohne Punkt am Ende"},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestLocator_WholeWordOnly(t *testing.T) {
	l := New(0)

	_, ok := l.Find("Der Zugang ist frei.", "Zug")
	assert.False(t, ok, "must not match inside a longer word")

	got, ok := l.Find("Der Zug kommt.", "Zug")
	assert.True(t, ok)
	assert.Equal(t, "Der Zug kommt.", got)
}

func TestLocator_FirstMatchingSentence(t *testing.T) {
	l := New(0)
	text := "Der Zugang ist frei. Der Zug kommt. Noch ein Zug fährt."

	assert.Equal(t, "Der Zug kommt.", l.Context(text, "Zug"))
}

func TestLocator_CaseInsensitive(t *testing.T) {
	l := New(0)
	assert.Equal(t, "Wichtig ist das.", l.Context("Wichtig ist das.", "wichtig"))
	assert.Equal(t, "Das ist WICHTIG.", l.Context("Das ist WICHTIG.", "Wichtig"))
}

func TestLocator_UmlautBoundaries(t *testing.T) {
	l := New(0)

	// "Bär" inside "Bärenhunger" must not count; the ä must count as a letter
	_, ok := l.Find("Ich habe Bärenhunger.", "Bär")
	assert.False(t, ok)

	// the tail of a compound must not match either
	_, ok = l.Find("Der Plattfuß tut weh.", "fuß")
	assert.False(t, ok)

	assert.Equal(t, "Ein Bär, groß und braun.", l.Context("Ein Bär, groß und braun.", "Bär"))
}

func TestLocator_DecomposedUmlauts(t *testing.T) {
	l := New(0)
	sentence := "Die Größe des Gebäudes ist beeindruckend."
	decomposed := norm.NFD.String(sentence)
	assert.NotEqual(t, sentence, decomposed)

	for _, word := range []string{"Größe", "Gebäudes", "beeindruckend"} {
		assert.Equal(t, sentence, l.Context(decomposed, word), word)
	}

	// a decomposed word still matches composed text
	assert.Equal(t, sentence, l.Context(sentence, norm.NFD.String("Größe")))
}

func TestLocator_Placeholder(t *testing.T) {
	l := New(0)
	assert.Equal(t, Placeholder, l.Context("Nichts zu sehen.", "Resilienz"))
	assert.Equal(t, Placeholder, l.Context("", "Resilienz"))
	assert.Equal(t, Placeholder, l.Context("Text.", "  "))
}

func TestLocator_Truncates(t *testing.T) {
	l := New(20)
	long := "Resilienz " + strings.Repeat("ist sehr wichtig ", 10) + "."

	got := l.Context(long, "Resilienz")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 20+len("..."))
	assert.True(t, strings.HasPrefix(got, "Resilienz"))
}

func TestLocator_ShortSentenceNotTruncated(t *testing.T) {
	l := New(DefaultMaxLen)
	s := "Die Gesundheit ist wichtig."
	assert.Equal(t, s, l.Context(s, "Gesundheit"))
}
