package textfilter

import (
	"sort"
	"strings"
)

// StopList decides whether a lowercase token is excluded from vocabulary
// candidates.
type StopList interface {
	IsStop(lower string) bool
}

// StopWords is a set-backed StopList
type StopWords struct {
	words map[string]struct{}
}

// NewStopList creates a stop list from the given words. Words are stored in
// lowercase.
func NewStopList(words ...string) *StopWords {
	s := &StopWords{words: make(map[string]struct{}, len(words))}
	s.Add(words...)
	return s
}

// DefaultStopList returns the built-in German stop list: function words plus
// the boilerplate that shows up on every page of textbook and exam material.
func DefaultStopList() *StopWords {
	s := NewStopList(functionWords...)
	s.Add(boilerplateWords...)
	return s
}

// Add inserts words into the stop list
func (s *StopWords) Add(words ...string) {
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
}

// IsStop reports whether lower is a stop word
func (s *StopWords) IsStop(lower string) bool {
	_, ok := s.words[lower]
	return ok
}

// Len returns the number of stop words
func (s *StopWords) Len() int {
	return len(s.words)
}

// All returns the stop words in sorted order
func (s *StopWords) All() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

var functionWords = []string{
	// articles and determiners
	"der", "die", "das", "den", "dem", "des",
	"ein", "eine", "einen", "einem", "einer", "eines",
	"kein", "keine", "keinen", "keinem", "keiner", "keines",
	"dieser", "diese", "dieses", "diesen", "diesem",
	"jeder", "jede", "jedes", "jeden", "jedem",
	"welcher", "welche", "welches", "welchen", "welchem",
	"alle", "allen", "aller", "alles", "viele", "vielen", "einige", "manche",
	// pronouns
	"ich", "du", "er", "sie", "es", "wir", "ihr",
	"mich", "dich", "sich", "uns", "euch",
	"mir", "dir", "ihm", "ihn", "ihnen",
	"mein", "meine", "meinen", "meinem", "meiner", "meines",
	"dein", "deine", "deinen", "deinem", "deiner",
	"sein", "seine", "seinen", "seinem", "seiner", "seines",
	"ihre", "ihren", "ihrem", "ihrer", "ihres",
	"unser", "unsere", "unseren", "unserem", "unserer",
	"euer", "eure", "euren", "eurem", "eurer",
	"man", "etwas", "nichts", "jemand", "niemand", "selbst",
	// auxiliaries and modals
	"bin", "bist", "ist", "sind", "seid", "war", "waren", "warst", "gewesen",
	"habe", "hast", "hat", "haben", "habt", "hatte", "hatten", "gehabt",
	"werde", "wirst", "wird", "werden", "werdet", "wurde", "wurden", "worden",
	"kann", "kannst", "können", "konnte", "konnten",
	"muss", "musst", "müssen", "musste", "mussten",
	"soll", "sollst", "sollen", "sollte", "sollten",
	"will", "willst", "wollen", "wollte", "wollten",
	"darf", "darfst", "dürfen", "durfte",
	"mag", "mögen", "möchte", "möchten", "würde", "würden", "wäre", "wären", "hätte", "hätten",
	// prepositions
	"in", "im", "ins", "an", "am", "ans", "auf", "aus", "bei", "beim", "mit", "nach",
	"von", "vom", "vor", "zu", "zum", "zur", "für", "über", "unter", "durch", "gegen",
	"ohne", "um", "bis", "seit", "zwischen", "neben", "hinter", "während", "wegen", "trotz",
	// conjunctions
	"und", "oder", "aber", "denn", "sondern", "dass", "weil", "wenn", "als", "ob",
	"obwohl", "damit", "bevor", "nachdem", "sodass", "sowie", "sowohl", "weder", "noch",
	// adverbs and particles
	"nicht", "auch", "nur", "schon", "noch", "sehr", "mehr", "so", "wie", "was", "wer",
	"wo", "wann", "warum", "wieso", "hier", "dort", "da", "dann", "jetzt", "immer",
	"ja", "nein", "doch", "mal", "eben", "halt", "wohl", "zwar", "also", "etwa",
	"ganz", "gar", "bereits", "dabei", "dazu", "darauf", "darüber", "davon", "dafür",
	"hierzu", "sowie", "oft", "wieder", "einmal", "heute", "gestern", "morgen",
}

var boilerplateWords = []string{
	// task and page labels
	"seite", "seiten", "aufgabe", "aufgaben", "lektion", "kapitel", "übung", "übungen",
	"lösung", "lösungen", "beispiel", "teil", "modul", "einheit", "abschnitt",
	"text", "texte", "hörtext", "lesetext", "punkte", "punkt", "minuten",
	"ankreuzen", "kreuzen", "markieren", "ergänzen", "lesen", "hören", "schreiben", "sprechen",
	"richtig", "falsch", "antwort", "antworten", "frage", "fragen",
	// exam and publisher names
	"goethe", "zertifikat", "telc", "testdaf", "ösd", "dsh",
	"hueber", "klett", "cornelsen", "langenscheidt", "duden", "verlag", "verlags",
	"gmbh", "isbn", "copyright", "auflage", "druck",
	"kursbuch", "arbeitsbuch", "lehrbuch", "testbuch",
}
