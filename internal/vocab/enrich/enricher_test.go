package enrich

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-german-vocab/internal/vocab/cache"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/rank"
)

type fakeTranslator struct {
	mu    sync.Mutex
	calls int
	dict  map[string]string
	err   error
}

func (f *fakeTranslator) Translate(_ context.Context, word, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.dict[word], nil
}

type fakeSynonyms struct {
	mu      sync.Mutex
	queries []string
	results map[string][]SynSet
	err     error
}

func (f *fakeSynonyms) Synonyms(_ context.Context, query string) ([]SynSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

type fakeCorpus struct {
	mu     sync.Mutex
	calls  int
	scores map[string]float64
	err    error
}

func (f *fakeCorpus) Score(_ context.Context, word, _ string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.scores[word], nil
}

type slowTranslator struct{}

func (slowTranslator) Translate(ctx context.Context, _, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnricher(tr Translator, syn SynonymProvider, corpus FrequencyCorpus, c cache.Cache) *Enricher {
	return New(tr, syn, corpus, nil, c, quietLogger(), Options{})
}

func TestEnrich_AllLookupsSucceed(t *testing.T) {
	tr := &fakeTranslator{dict: map[string]string{"Resilienz": "устойчивость"}}
	syn := &fakeSynonyms{results: map[string][]SynSet{
		"Resilienz": {{Terms: []string{"Resilienz", "Widerstandsfähigkeit", "Belastbarkeit"}}},
	}}
	corpus := &fakeCorpus{scores: map[string]float64{"resilienz": 2.1}}

	e := newTestEnricher(tr, syn, corpus, cache.New(0))
	got := e.Enrich(context.Background(), "Die Resilienz ist wichtig.", rank.Entry{Word: "Resilienz", Count: 3})

	assert.Equal(t, EnrichedWord{
		Word:        "Resilienz",
		Count:       3,
		Level:       LevelC1,
		Translation: "устойчивость",
		Synonyms:    []string{"Widerstandsfähigkeit", "Belastbarkeit"},
		Context:     "Die Resilienz ist wichtig.",
	}, got)
}

func TestEnrich_FailuresAreIsolated(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("service down")}
	syn := &fakeSynonyms{results: map[string][]SynSet{
		"Gesundheit": {{Terms: []string{"Wohlbefinden"}}},
	}}
	corpus := &fakeCorpus{scores: map[string]float64{"gesundheit": 4.8}}

	e := newTestEnricher(tr, syn, corpus, cache.New(0))
	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Gesundheit", Count: 1})

	assert.Equal(t, TranslationPlaceholder, got.Translation)
	assert.Equal(t, []string{"Wohlbefinden"}, got.Synonyms)
	assert.Equal(t, LevelA2, got.Level)
	assert.Equal(t, "-", got.Context)
}

func TestEnrich_EveryLookupFails(t *testing.T) {
	boom := errors.New("boom")
	e := newTestEnricher(
		&fakeTranslator{err: boom},
		&fakeSynonyms{err: boom},
		&fakeCorpus{err: boom},
		cache.New(0),
	)

	got := e.Enrich(context.Background(), "Der Zug kommt.", rank.Entry{Word: "Zug", Count: 2})
	assert.Equal(t, TranslationPlaceholder, got.Translation)
	assert.Empty(t, got.Synonyms)
	assert.NotNil(t, got.Synonyms)
	assert.Equal(t, LevelUnknown, got.Level)
	assert.Equal(t, "Der Zug kommt.", got.Context)
}

func TestEnrich_NilCapabilities(t *testing.T) {
	e := New(nil, nil, nil, nil, nil, quietLogger(), Options{})
	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Haus", Count: 1})
	assert.Equal(t, TranslationPlaceholder, got.Translation)
	assert.Equal(t, []string{}, got.Synonyms)
	assert.Equal(t, LevelUnknown, got.Level)
}

func TestEnrich_UnknownWordIsUnknownLevel(t *testing.T) {
	e := newTestEnricher(nil, nil, &fakeCorpus{scores: map[string]float64{}}, nil)
	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Xyzzywort", Count: 1})
	assert.Equal(t, LevelUnknown, got.Level)
}

func TestEnrich_SynonymRetryStripsEnding(t *testing.T) {
	syn := &fakeSynonyms{results: map[string][]SynSet{
		"Prüfung": {{Terms: []string{"Prüfungen", "Examen", "Test"}}},
	}}
	e := newTestEnricher(nil, syn, nil, nil)

	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Prüfungen", Count: 1})

	assert.Equal(t, []string{"Prüfungen", "Prüfung"}, syn.queries)
	assert.Equal(t, []string{"Examen", "Test"}, got.Synonyms, "original and stripped forms are excluded")
}

func TestEnrich_SynonymRetryOnlyOnce(t *testing.T) {
	syn := &fakeSynonyms{results: map[string][]SynSet{}}
	e := newTestEnricher(nil, syn, nil, nil)

	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Häusern", Count: 1})

	assert.Equal(t, []string{"Häusern", "Häuser"}, syn.queries)
	assert.Empty(t, got.Synonyms)
}

func TestEnrich_NoRetryForShortWords(t *testing.T) {
	syn := &fakeSynonyms{results: map[string][]SynSet{}}
	e := newTestEnricher(nil, syn, nil, nil)

	e.Enrich(context.Background(), "", rank.Entry{Word: "Hose", Count: 1})
	assert.Equal(t, []string{"Hose"}, syn.queries)
}

func TestEnrich_NoRetryWhenFirstQueryHasResults(t *testing.T) {
	syn := &fakeSynonyms{results: map[string][]SynSet{
		"Lernen": {{Terms: []string{"Studium"}}},
	}}
	e := newTestEnricher(nil, syn, nil, nil)

	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Lernen", Count: 1})
	assert.Equal(t, []string{"Lernen"}, syn.queries)
	assert.Equal(t, []string{"Studium"}, got.Synonyms)
}

func TestEnrich_CachesSuccessfulLookups(t *testing.T) {
	tr := &fakeTranslator{dict: map[string]string{"Wetter": "погода"}}
	syn := &fakeSynonyms{results: map[string][]SynSet{"Wetter": {{Terms: []string{"Witterung"}}}}}
	corpus := &fakeCorpus{scores: map[string]float64{"wetter": 5.0}}
	store := cache.New(0)
	e := newTestEnricher(tr, syn, corpus, store)

	first := e.Enrich(context.Background(), "", rank.Entry{Word: "Wetter", Count: 1})
	second := e.Enrich(context.Background(), "", rank.Entry{Word: "Wetter", Count: 1})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, tr.calls)
	assert.Len(t, syn.queries, 1)
	assert.Equal(t, 1, corpus.calls)
	assert.Equal(t, 3, store.Len())
}

func TestEnrich_FailuresAreNotCached(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("timeout")}
	store := cache.New(0)
	e := newTestEnricher(tr, nil, nil, store)

	e.Enrich(context.Background(), "", rank.Entry{Word: "Wetter", Count: 1})
	tr.err = nil
	tr.dict = map[string]string{"Wetter": "погода"}
	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Wetter", Count: 1})

	assert.Equal(t, "погода", got.Translation)
	assert.Equal(t, 2, tr.calls)
}

func TestEnrich_TimeoutBoundsLookup(t *testing.T) {
	e := New(slowTranslator{}, nil, nil, nil, nil, quietLogger(), Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := e.Enrich(context.Background(), "", rank.Entry{Word: "Wetter", Count: 1})

	assert.Equal(t, TranslationPlaceholder, got.Translation)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEnrichAll_PreservesOrder(t *testing.T) {
	entries := []rank.Entry{
		{Word: "Alpha", Count: 5},
		{Word: "Bravo", Count: 4},
		{Word: "Charlie", Count: 3},
		{Word: "Delta", Count: 2},
		{Word: "Echo", Count: 1},
	}
	tr := &fakeTranslator{dict: map[string]string{
		"Alpha": "a", "Bravo": "b", "Charlie": "c", "Delta": "d", "Echo": "e",
	}}

	for _, workers := range []int{1, 3} {
		e := New(tr, nil, nil, nil, cache.New(0), quietLogger(), Options{Workers: workers})
		got := e.EnrichAll(context.Background(), "", entries)

		require.Len(t, got, len(entries))
		for i, entry := range entries {
			assert.Equal(t, entry.Word, got[i].Word)
			assert.Equal(t, entry.Count, got[i].Count)
		}
		assert.Equal(t, "c", got[2].Translation)
	}
}

func TestEnrichAll_Empty(t *testing.T) {
	e := newTestEnricher(nil, nil, nil, nil)
	assert.Empty(t, e.EnrichAll(context.Background(), "", nil))
}
