package pipeline

import (
	"github.com/a3tai/mcp-german-vocab/internal/pdf"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/enrich"
	"github.com/a3tai/mcp-german-vocab/internal/vocab/rank"
)

// Warning codes
const (
	WarnNoText       = "no_text"
	WarnNoCandidates = "no_candidates"
	WarnNotGerman    = "not_german"
	WarnPagesSkipped = "pages_skipped"
	WarnPageErrors   = "page_errors"
)

// PreviewLength is the number of characters of extracted text kept for
// display
const PreviewLength = 500

// Warning is a non-fatal condition the user should know about
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageStats summarizes how the pages were read
type PageStats struct {
	Total   int `json:"total"`
	Visited int `json:"visited"`
	Native  int `json:"native"`
	OCR     int `json:"ocr"`
	Skipped int `json:"skipped"`
}

// Result is the outcome of one extraction request
type Result struct {
	RequestID   string                `json:"request_id"`
	Document    string                `json:"document"`
	MIMEType    string                `json:"mime_type"`
	Words       []enrich.EnrichedWord `json:"words"`
	Ranked      []rank.Entry          `json:"-"`
	UniqueWords int                   `json:"unique_words"`
	Pages       PageStats             `json:"pages"`
	PageErrors  []pdf.PageError       `json:"page_errors,omitempty"`
	Warnings    []Warning             `json:"warnings,omitempty"`
	Language    string                `json:"language,omitempty"`
	Preview     string                `json:"preview,omitempty"`
}

// HasWarning reports whether a warning with code was raised
func (r *Result) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
