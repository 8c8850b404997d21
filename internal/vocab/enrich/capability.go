// Package enrich attaches translation, synonyms, difficulty level and a usage
// example to ranked words.
package enrich

import (
	"context"
)

// Translator translates a single word between two languages
type Translator interface {
	Translate(ctx context.Context, word, source, target string) (string, error)
}

// SynSet is one group of synonymous terms returned by a thesaurus
type SynSet struct {
	Terms []string `json:"terms"`
}

// SynonymProvider queries a thesaurus
type SynonymProvider interface {
	Synonyms(ctx context.Context, query string) ([]SynSet, error)
}

// FrequencyCorpus returns the Zipf frequency of a word; 0 means not found
type FrequencyCorpus interface {
	Score(ctx context.Context, word, lang string) (float64, error)
}
