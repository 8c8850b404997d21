package enrich

import (
	"strings"
	"unicode/utf8"
)

// MaxSynonyms caps the synonyms attached to a word
const MaxSynonyms = 4

// minRetryLength is the rune length a word must exceed before its ending is
// stripped for a second thesaurus query
const minRetryLength = 4

// retryQuery returns the query for the second thesaurus lookup. Only one
// ending is removed: "en" when present, otherwise a single trailing s, n or e.
func retryQuery(word string) (string, bool) {
	if utf8.RuneCountInString(word) <= minRetryLength {
		return "", false
	}

	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "en"):
		return word[:len(word)-2], true
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "n"), strings.HasSuffix(lower, "e"):
		return word[:len(word)-1], true
	}
	return "", false
}

// filterSynonyms flattens thesaurus results into at most MaxSynonyms
// candidates. Parenthetical annotations are removed, phrases of three or
// more words dropped, and any of the excluded forms (compared
// case-insensitively) skipped.
func filterSynonyms(sets []SynSet, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if e != "" {
			skip[strings.ToLower(e)] = true
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, set := range sets {
		for _, term := range set.Terms {
			term = stripParentheticals(term)
			if term == "" || len(strings.Fields(term)) >= 3 {
				continue
			}

			key := strings.ToLower(term)
			if skip[key] || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, term)

			if len(out) == MaxSynonyms {
				return out
			}
		}
	}
	return out
}

// stripParentheticals removes "(ugs.)"-style annotations and normalizes
// whitespace
func stripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
