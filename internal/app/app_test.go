package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-german-vocab/internal/config"
	"github.com/a3tai/mcp-german-vocab/internal/pdf"
	"github.com/a3tai/mcp-german-vocab/internal/pdf/pdftest"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/pipeline"
)

const lesson = "Die Resilienz hilft Menschen in schwierigen Situationen. " +
	"Resilienz braucht Geduld und Training."

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServers(t *testing.T) (translateURL, synonymURL string) {
	t.Helper()

	tr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Resilienz" {
			_, _ = io.WriteString(w, `[[["устойчивость","Resilienz",null,null,10]],null,"de"]`)
			return
		}
		_, _ = io.WriteString(w, `[null,null,"de"]`)
	}))
	t.Cleanup(tr.Close)

	syn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Resilienz" {
			_, _ = io.WriteString(w, `{"synsets":[{"terms":[{"term":"Resilienz"},{"term":"Widerstandskraft"}]}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"synsets":[]}`)
	}))
	t.Cleanup(syn.Close)

	return tr.URL, syn.URL
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "freq.tsv")
	require.NoError(t, os.WriteFile(corpusPath, []byte("resilienz\t2.9\nmenschen\t5.1\n"), 0o600))

	cfg := config.DefaultConfig()
	cfg.DocDirectory = dir
	cfg.CorpusPath = corpusPath
	cfg.TranslateURL, cfg.SynonymURL = newTestServers(t)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNew_ExtractsFromPDF(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DocDirectory, "lektion.pdf"), pdftest.TextPDF(lesson), 0o600))

	a, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer a.Close()

	doc, err := a.LoadDocument("lektion.pdf")
	require.NoError(t, err)

	result, err := a.Service.Extract(context.Background(), a.Request(doc))
	require.NoError(t, err)

	require.NotEmpty(t, result.Words)
	top := result.Words[0]
	assert.Equal(t, "Resilienz", top.Word)
	assert.Equal(t, 2, top.Count)
	assert.Equal(t, "устойчивость", top.Translation)
	assert.Equal(t, []string{"Widerstandskraft"}, top.Synonyms)
	assert.Equal(t, enrich.LevelB2, top.Level)
	assert.Equal(t, "Die Resilienz hilft Menschen in schwierigen Situationen.", top.Context)

	assert.Equal(t, 1, result.Pages.Native)
	assert.True(t, result.HasWarning(pipeline.WarnPagesSkipped))
	assert.Greater(t, a.Cache.Stats().Size, 0)
}

func TestNew_DisabledServices(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocDirectory = t.TempDir()
	cfg.TranslateURL = ""
	cfg.SynonymURL = ""
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	assert.NoError(t, a.Close())

	doc := pdf.Document{Name: "lektion.pdf", Data: pdftest.TextPDF(lesson)}
	result, err := a.Service.Extract(context.Background(), a.Request(doc))
	require.NoError(t, err)

	require.NotEmpty(t, result.Words)
	for _, w := range result.Words {
		assert.Equal(t, enrich.TranslationPlaceholder, w.Translation)
		assert.Empty(t, w.Synonyms)
		assert.Equal(t, enrich.LevelUnknown, w.Level)
	}
}

func TestNew_MissingCorpus(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocDirectory = t.TempDir()
	cfg.CorpusPath = filepath.Join(cfg.DocDirectory, "missing.tsv")
	require.NoError(t, cfg.Validate())

	_, err := New(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestRequest_UsesDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocDirectory = t.TempDir()
	cfg.StartPage = 4
	cfg.PageCount = 2
	cfg.MinLength = 6
	cfg.MaxWords = 15
	cfg.TranslateURL = ""
	cfg.SynonymURL = ""
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	req := a.Request(pdf.Document{Name: "x.pdf"})
	assert.Equal(t, pdf.Window{Start: 4, Count: 2}, req.Window)
	assert.Equal(t, 6, req.MinLength)
	assert.Equal(t, 15, req.MaxWords)
}

func TestLoadDocument_OutsideDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocDirectory = t.TempDir()
	cfg.TranslateURL = ""
	cfg.SynonymURL = ""
	require.NoError(t, cfg.Validate())

	a, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	_, err = a.LoadDocument("../../etc/passwd")
	assert.Error(t, err)

	_, err = a.LoadDocument("missing.pdf")
	assert.Error(t, err)
}
