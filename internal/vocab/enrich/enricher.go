package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/a3tai/mcp-german-vocab/internal/vocab/cache"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/locator"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/rank"
)

// TranslationPlaceholder is shown when no translation could be obtained
const TranslationPlaceholder = "-"

// DefaultTimeout bounds every external lookup
const DefaultTimeout = 3 * time.Second

// EnrichedWord is a ranked word with everything a learner needs
type EnrichedWord struct {
	Word        string   `json:"word"`
	Count       int      `json:"count"`
	Level       Level    `json:"level"`
	Translation string   `json:"translation"`
	Synonyms    []string `json:"synonyms"`
	Context     string   `json:"context"`
}

// Options configures an Enricher
type Options struct {
	SourceLang string        // language of the document, e.g. "de"
	TargetLang string        // translation target, e.g. "ru"
	Timeout    time.Duration // per lookup; <= 0 selects DefaultTimeout
	Workers    int           // words enriched concurrently; <= 1 is sequential
	Levels     LevelTable    // nil selects DefaultLevelTable
}

// Enricher performs the per-word lookups. Each lookup fails on its own: a
// failing translator never costs the word its level or synonyms.
type Enricher struct {
	translator Translator
	synonyms   SynonymProvider
	corpus     FrequencyCorpus
	locator    *locator.Locator
	cache      cache.Cache
	logger     *slog.Logger
	opts       Options
}

// New creates an Enricher. Any capability may be nil, in which case the
// corresponding field falls back to its placeholder.
func New(
	translator Translator,
	synonyms SynonymProvider,
	corpus FrequencyCorpus,
	loc *locator.Locator,
	c cache.Cache,
	logger *slog.Logger,
	opts Options,
) *Enricher {
	if loc == nil {
		loc = locator.New(0)
	}
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Levels == nil {
		opts.Levels = DefaultLevelTable()
	}
	if opts.SourceLang == "" {
		opts.SourceLang = "de"
	}
	if opts.TargetLang == "" {
		opts.TargetLang = "ru"
	}

	return &Enricher{
		translator: translator,
		synonyms:   synonyms,
		corpus:     corpus,
		locator:    loc,
		cache:      c,
		logger:     logger,
		opts:       opts,
	}
}

// Enrich builds the learner view of a single ranked word. It never fails.
func (e *Enricher) Enrich(ctx context.Context, fullText string, entry rank.Entry) EnrichedWord {
	return EnrichedWord{
		Word:        entry.Word,
		Count:       entry.Count,
		Level:       e.level(ctx, entry.Word),
		Translation: e.translate(ctx, entry.Word),
		Synonyms:    e.lookupSynonyms(ctx, entry.Word),
		Context:     e.locator.Context(fullText, entry.Word),
	}
}

// EnrichAll enriches entries preserving their order
func (e *Enricher) EnrichAll(ctx context.Context, fullText string, entries []rank.Entry) []EnrichedWord {
	out := make([]EnrichedWord, len(entries))

	if e.opts.Workers <= 1 {
		for i, entry := range entries {
			out[i] = e.Enrich(ctx, fullText, entry)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, entry := range entries {
		g.Go(func() error {
			out[i] = e.Enrich(ctx, fullText, entry)
			return nil
		})
	}
	_ = g.Wait() // Enrich does not fail

	return out
}

func (e *Enricher) translate(ctx context.Context, word string) string {
	if e.translator == nil {
		return TranslationPlaceholder
	}

	key := cacheKey("translate", word)
	if v, ok := e.cache.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	text, err := e.translator.Translate(callCtx, word, e.opts.SourceLang, e.opts.TargetLang)
	if err != nil {
		e.logger.WarnContext(ctx, "translation failed", "word", word, "error", err)
		return TranslationPlaceholder
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return TranslationPlaceholder
	}

	e.cache.Put(key, text)
	return text
}

func (e *Enricher) lookupSynonyms(ctx context.Context, word string) []string {
	if e.synonyms == nil {
		return []string{}
	}

	key := cacheKey("synonyms", word)
	if v, ok := e.cache.Get(key); ok {
		if list, ok := v.([]string); ok {
			return append([]string{}, list...)
		}
	}

	sets, err := e.querySynonyms(ctx, word)
	if err != nil {
		e.logger.WarnContext(ctx, "synonym lookup failed", "word", word, "error", err)
		return []string{}
	}

	exclude := []string{word}
	if len(sets) == 0 {
		stripped, ok := retryQuery(word)
		if ok {
			e.logger.DebugContext(ctx, "retrying synonym lookup", "word", word, "query", stripped)
			sets, err = e.querySynonyms(ctx, stripped)
			if err != nil {
				e.logger.WarnContext(ctx, "synonym lookup failed", "word", word, "query", stripped, "error", err)
				return []string{}
			}
			exclude = append(exclude, stripped)
		}
	}

	list := filterSynonyms(sets, exclude...)
	if list == nil {
		list = []string{}
	}
	e.cache.Put(key, list)
	return append([]string{}, list...)
}

func (e *Enricher) querySynonyms(ctx context.Context, query string) ([]SynSet, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()
	return e.synonyms.Synonyms(callCtx, query)
}

func (e *Enricher) level(ctx context.Context, word string) Level {
	if e.corpus == nil {
		return LevelUnknown
	}

	lower := strings.ToLower(word)
	key := cacheKey("level", lower)
	if v, ok := e.cache.Get(key); ok {
		if score, ok := v.(float64); ok {
			return e.opts.Levels.Classify(score)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	score, err := e.corpus.Score(callCtx, lower, e.opts.SourceLang)
	if err != nil {
		e.logger.WarnContext(ctx, "frequency lookup failed", "word", word, "error", err)
		return LevelUnknown
	}

	e.cache.Put(key, score)
	return e.opts.Levels.Classify(score)
}

func cacheKey(kind, word string) string {
	return fmt.Sprintf("%s:%s", kind, word)
}
