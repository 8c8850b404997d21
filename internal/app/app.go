// Package app assembles the extraction service from a configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/a3tai/mcp-german-vocab/internal/config"
	"github.com/a3tai/mcp-german-vocab/internal/ocr"
	"github.com/a3tai/mcp-german-vocab/internal/pdf"
	"github.com/a3tai/mcp-german-vocab/internal/pdf/security"
	"github.com/a3tai/mcp-german-vocab/internal/provider/corpus"
	"github.com/a3tai/mcp-german-vocab/internal/provider/synonym"
	"github.com/a3tai/mcp-german-vocab/internal/provider/translate"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/cache"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/locator"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/pipeline"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/textfilter"
)

// App holds the wired components shared by the binaries
type App struct {
	Config    *config.Config
	Service   *pipeline.Service
	Validator *pdf.Validator
	Paths     *security.PathValidator
	Cache     *cache.Store

	// OCRAvailable reports whether scanned pages can be recognized
	OCRAvailable bool

	corpus corpus.Corpus
	logger *slog.Logger
}

// New wires every component described by cfg. Lookup services with an empty
// endpoint are disabled and their fields fall back to placeholders.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := security.NewPathValidator(cfg.DocDirectory)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Validator: pdf.NewValidator(cfg.MaxFileSize),
		Paths:     paths,
		Cache:     cache.New(cfg.CacheSize),
		logger:    logger,
	}

	var engine ocr.Engine
	tess := ocr.NewTesseract(cfg.TesseractPath, logger)
	tess.Lang = cfg.OCRLanguage
	if tess.Available() {
		engine = tess
		a.OCRAvailable = true
	} else {
		logger.Warn("tesseract not found, scanned pages cannot be read", "path", cfg.TesseractPath)
	}

	acquirer := pdf.NewAcquirer(
		pdf.NewNativeTextLayer(cfg.NativeThreshold),
		pdf.NewEmbeddedImageRasterizer(),
		engine,
		pdf.AcquirerConfig{OCRLanguage: cfg.OCRLanguage, MaxFileSize: cfg.MaxFileSize},
		logger,
	)

	var translator enrich.Translator = translate.NewStub()
	if cfg.TranslateURL != "" {
		translator = translate.NewGoogleWithURL(cfg.TranslateURL, logger)
	}

	var synonyms enrich.SynonymProvider
	if cfg.SynonymURL != "" {
		synonyms = synonym.NewOpenThesaurusWithURL(cfg.SynonymURL, logger)
	}

	var freq enrich.FrequencyCorpus
	if cfg.CorpusPath != "" {
		c, err := corpus.Open(ctx, cfg.CorpusPath, cfg.SourceLang)
		if err != nil {
			return nil, fmt.Errorf("open corpus %s: %w", cfg.CorpusPath, err)
		}
		a.corpus = c
		freq = c
	}

	enricher := enrich.New(translator, synonyms, freq, locator.New(cfg.ContextLength), a.Cache, logger, enrich.Options{
		SourceLang: cfg.SourceLang,
		TargetLang: cfg.TargetLang,
		Timeout:    cfg.LookupTimeout,
		Workers:    cfg.Workers,
		Levels:     cfg.Levels,
	})

	stop := textfilter.DefaultStopList()
	stop.Add(cfg.StopWords...)

	a.Service = pipeline.NewService(acquirer, enricher, stop, pipeline.NewLinguaDetector(), logger)
	return a, nil
}

// Request builds an extraction request with the configured defaults
func (a *App) Request(doc pdf.Document) pipeline.Request {
	return pipeline.Request{
		Document:  doc,
		Window:    pdf.Window{Start: a.Config.StartPage, Count: a.Config.PageCount},
		MinLength: a.Config.MinLength,
		MaxWords:  a.Config.MaxWords,
	}
}

// LoadDocument reads a document from inside the document directory
func (a *App) LoadDocument(path string) (pdf.Document, error) {
	resolved, err := a.Paths.Resolve(path)
	if err != nil {
		return pdf.Document{}, err
	}
	return pdf.LoadDocument(resolved, a.Config.MaxFileSize)
}

// Close releases the corpus
func (a *App) Close() error {
	if a.corpus == nil {
		return nil
	}
	return a.corpus.Close()
}
