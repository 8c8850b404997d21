package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// DefaultMinNativeChars is the least number of characters, after trimming, a
// page's text layer must yield before it is trusted over OCR
const DefaultMinNativeChars = 50

// NativeStatus tells whether a page's native text can be used
type NativeStatus int

const (
	NativeAccepted NativeStatus = iota
	NativeNeedsFallback
)

// String implements fmt.Stringer
func (s NativeStatus) String() string {
	if s == NativeAccepted {
		return "accepted"
	}
	return "needs_fallback"
}

// NativeResult is the outcome of reading one page's text layer
type NativeResult struct {
	Text   string
	Status NativeStatus
	Reason string
}

// TextLayer opens the embedded text of a PDF
type TextLayer interface {
	Open(data []byte) (TextDocument, error)
}

// TextDocument gives page-by-page access to a PDF's text layer. Page indices
// are 1-based.
type TextDocument interface {
	NumPages() int
	PageText(index int) NativeResult
}

// NativeTextLayer reads text layers with github.com/ledongthuc/pdf
type NativeTextLayer struct {
	minChars int
}

// NewNativeTextLayer creates a text layer that falls back for pages with
// fewer than minChars non-whitespace characters
func NewNativeTextLayer(minChars int) *NativeTextLayer {
	if minChars <= 0 {
		minChars = DefaultMinNativeChars
	}
	return &NativeTextLayer{minChars: minChars}
}

// Open parses the PDF cross-reference table. Malformed files that make the
// parser panic are reported as errors.
func (l *NativeTextLayer) Open(data []byte) (doc TextDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &nativeDocument{reader: reader, minChars: l.minChars}, nil
}

type nativeDocument struct {
	reader   *pdf.Reader
	minChars int
}

func (d *nativeDocument) NumPages() (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()
	return d.reader.NumPage()
}

// PageText never fails; anything that goes wrong asks for the OCR fallback
func (d *nativeDocument) PageText(index int) (result NativeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = NativeResult{Status: NativeNeedsFallback, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	page := d.reader.Page(index)
	if page.V.IsNull() {
		return NativeResult{Status: NativeNeedsFallback, Reason: "page object missing"}
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return NativeResult{Status: NativeNeedsFallback, Reason: err.Error()}
	}

	if meaningfulLength(text) < d.minChars {
		return NativeResult{Text: text, Status: NativeNeedsFallback, Reason: "text layer too short"}
	}
	return NativeResult{Text: text, Status: NativeAccepted}
}

// meaningfulLength is the rune length of text without surrounding whitespace
func meaningfulLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}
