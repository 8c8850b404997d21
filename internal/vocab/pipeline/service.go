// Package pipeline turns a document into an enriched vocabulary list.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/a3tai/mcp-german-vocab/internal/pdf"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/rank"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/textfilter"
)

// PageSource delivers page texts one at a time
type PageSource interface {
	Acquire(ctx context.Context, doc pdf.Document, window pdf.Window, fn func(pdf.RawPage) error) (*pdf.AcquireReport, error)
}

// WordEnricher attaches lookups to ranked words
type WordEnricher interface {
	EnrichAll(ctx context.Context, fullText string, entries []rank.Entry) []enrich.EnrichedWord
}

// Request describes one extraction
type Request struct {
	Document  pdf.Document
	Window    pdf.Window
	MinLength int
	MaxWords  int
}

// Validate checks the request parameters
func (r Request) Validate() error {
	if err := r.Window.Validate(); err != nil {
		return err
	}
	if r.MinLength < 1 {
		return fmt.Errorf("min length must be at least 1, got %d", r.MinLength)
	}
	if r.MaxWords < 1 {
		return fmt.Errorf("max words must be at least 1, got %d", r.MaxWords)
	}
	return nil
}

// Service orchestrates acquisition, filtering, ranking and enrichment. It
// keeps no per-request state; the only thing shared between requests is the
// lookup cache inside the enricher.
type Service struct {
	pages    PageSource
	enricher WordEnricher
	stop     textfilter.StopList
	detector LanguageDetector
	logger   *slog.Logger
}

// NewService creates a Service. stop and detector may be nil.
func NewService(pages PageSource, enricher WordEnricher, stop textfilter.StopList, detector LanguageDetector, logger *slog.Logger) *Service {
	if stop == nil {
		stop = textfilter.DefaultStopList()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pages:    pages,
		enricher: enricher,
		stop:     stop,
		detector: detector,
		logger:   logger,
	}
}

// Extract runs the full pipeline. Failures confined to a page or a single
// lookup are reported inside the result; an error means the document could
// not be processed at all.
func (s *Service) Extract(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "document", req.Document.Name)
	start := time.Now()

	logger.InfoContext(ctx, "extraction started",
		"start_page", req.Window.Start,
		"page_count", req.Window.Count,
		"min_length", req.MinLength,
		"max_words", req.MaxWords)

	filter := textfilter.New(req.MinLength, s.stop)
	counter := rank.NewCounter()
	var fullText strings.Builder

	report, err := s.pages.Acquire(ctx, req.Document, req.Window, func(page pdf.RawPage) error {
		counter.Add(filter.Tokens(page.Text)...)
		fullText.WriteString(page.Text)
		fullText.WriteString("\n")
		logger.DebugContext(ctx, "page processed", "page", page.Index, "source", string(page.Source))
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "extraction failed", "error", err)
		return nil, fmt.Errorf("extract %s: %w", displayName(req.Document), err)
	}

	text := fullText.String()
	result := &Result{
		RequestID:   requestID,
		Document:    req.Document.Name,
		MIMEType:    report.MIMEType,
		UniqueWords: counter.Len(),
		Pages: PageStats{
			Total:   report.TotalPages,
			Visited: report.Visited,
			Native:  report.Native,
			OCR:     report.OCR,
			Skipped: report.Skipped,
		},
		PageErrors: report.PageErrors,
		Preview:    preview(text),
	}

	result.Ranked = counter.Top(req.MaxWords)
	if len(result.Ranked) > 0 {
		result.Words = s.enricher.EnrichAll(ctx, text, result.Ranked)
	} else {
		result.Words = []enrich.EnrichedWord{}
	}

	s.addWarnings(result, report, text)

	logger.InfoContext(ctx, "extraction finished",
		"pages_visited", report.Visited,
		"ocr_pages", report.OCR,
		"unique_words", result.UniqueWords,
		"words", len(result.Words),
		"warnings", len(result.Warnings),
		"duration", time.Since(start))

	return result, nil
}

func (s *Service) addWarnings(result *Result, report *pdf.AcquireReport, text string) {
	hasText := strings.TrimSpace(text) != ""

	if report.Skipped > 0 {
		result.Warnings = append(result.Warnings, Warning{
			Code: WarnPagesSkipped,
			Message: fmt.Sprintf("%d requested page(s) lie beyond the end of the document (%d pages)",
				report.Skipped, report.TotalPages),
		})
	}

	if len(report.PageErrors) > 0 {
		pages := make([]string, len(report.PageErrors))
		for i, pe := range report.PageErrors {
			pages[i] = fmt.Sprint(pe.Page)
		}
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarnPageErrors,
			Message: fmt.Sprintf("%d page(s) could not be read and were skipped: %s", len(pages), strings.Join(pages, ", ")),
		})
	}

	switch {
	case !hasText:
		result.Warnings = append(result.Warnings, Warning{
			Code: WarnNoText,
			Message: "No text found in the selected pages. The file is probably a scan; " +
				"if text recognition is unavailable, export the page as a JPG or PNG image and upload that instead.",
		})
	case result.UniqueWords == 0:
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarnNoCandidates,
			Message: "Text was found but no word passed the filters; try a smaller minimum word length.",
		})
	}

	if hasText && s.detector != nil {
		if det, ok := s.detector.Detect(text); ok {
			result.Language = det.Code
			if det.Code != "de" {
				result.Warnings = append(result.Warnings, Warning{
					Code:    WarnNotGerman,
					Message: fmt.Sprintf("The text looks like %s rather than German; levels and synonyms may be meaningless.", det.Name),
				})
			}
		}
	}
}

// UserMessage renders err for display, adding a remedy for document-level
// failures
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *pdf.AcquisitionError
	if errors.As(err, &ae) && ae.Hint() != "" {
		return fmt.Sprintf("%v (%s)", err, ae.Hint())
	}
	return err.Error()
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	return string([]rune(text)[:PreviewLength]) + "..."
}

func displayName(doc pdf.Document) string {
	if doc.Name == "" {
		return "document"
	}
	return doc.Name
}
