package pdf

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/a3tai/mcp-german-vocab/internal/ocr"
)

// AcquireReport summarizes one acquisition run
type AcquireReport struct {
	MIMEType   string      `json:"mime_type"`
	TotalPages int         `json:"total_pages"`
	Window     Window      `json:"window"`
	Visited    int         `json:"visited"`
	Native     int         `json:"native"`
	OCR        int         `json:"ocr"`
	Skipped    int         `json:"skipped"`
	PageErrors []PageError `json:"page_errors,omitempty"`
}

// AcquirerConfig holds acquisition settings
type AcquirerConfig struct {
	OCRLanguage string
	MaxFileSize int64
}

// Acquirer turns a document into page texts, preferring the embedded text
// layer and falling back to OCR page by page
type Acquirer struct {
	text   TextLayer
	raster Rasterizer
	ocr    ocr.Engine
	config AcquirerConfig
	logger *slog.Logger
}

// NewAcquirer creates an Acquirer. raster and engine may be nil, in which
// case pages without a usable text layer are reported as page errors.
func NewAcquirer(text TextLayer, raster Rasterizer, engine ocr.Engine, config AcquirerConfig, logger *slog.Logger) *Acquirer {
	if text == nil {
		text = NewNativeTextLayer(DefaultMinNativeChars)
	}
	if config.OCRLanguage == "" {
		config.OCRLanguage = ocr.DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{
		text:   text,
		raster: raster,
		ocr:    engine,
		config: config,
		logger: logger,
	}
}

// Acquire visits the pages of the window in order and passes each one to fn.
// The page is not retained once fn returns. Pages beyond the end of the
// document are counted as skipped. Failures confined to a page are recorded
// in the report; an error is returned only when the document cannot be read
// at all, the context is canceled or fn fails.
func (a *Acquirer) Acquire(ctx context.Context, doc Document, window Window, fn func(RawPage) error) (*AcquireReport, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return nil, NewAcquisitionError(KindEmpty, "no data in "+displayName(doc), ErrEmptyDocument)
	}
	if a.config.MaxFileSize > 0 && int64(len(doc.Data)) > a.config.MaxFileSize {
		return nil, NewAcquisitionError(KindTooLarge,
			fmt.Sprintf("%d bytes (max: %d bytes)", len(doc.Data), a.config.MaxFileSize), ErrFileTooLarge)
	}

	mimeType := doc.DetectMIME()
	report := &AcquireReport{MIMEType: mimeType, Window: window}

	switch {
	case mimeType == MIMEPDF:
		return report, a.acquirePDF(ctx, doc, window, report, fn)
	case supportedImages[mimeType]:
		return report, a.acquireImage(ctx, doc, window, report, fn)
	default:
		return nil, NewAcquisitionError(KindUnsupportedMedia,
			fmt.Sprintf("%s has type %q", displayName(doc), mimeType), ErrUnsupportedMedia)
	}
}

func (a *Acquirer) acquirePDF(ctx context.Context, doc Document, window Window, report *AcquireReport, fn func(RawPage) error) error {
	logger := a.logger.With("document", displayName(doc))

	textDoc, textErr := a.text.Open(doc.Data)
	if textErr != nil {
		logger.WarnContext(ctx, "text layer unavailable, relying on ocr", "error", textErr)
	}

	// The rasterizer is opened only once a page needs it.
	var (
		pageImages PageImages
		rasterErr  error
		rasterOpen bool
	)
	openRaster := func() (PageImages, error) {
		if !rasterOpen {
			rasterOpen = true
			if a.raster == nil {
				rasterErr = errors.New("no rasterizer configured")
			} else {
				pageImages, rasterErr = a.raster.Open(doc.Data)
			}
		}
		return pageImages, rasterErr
	}

	total := 0
	if textDoc != nil {
		total = textDoc.NumPages()
	}
	if total == 0 {
		images, err := openRaster()
		if err != nil {
			cause := err
			if textErr != nil {
				cause = errors.Join(textErr, err)
			}
			return NewAcquisitionError(KindUnreadable, "cannot open "+displayName(doc), cause)
		}
		total = images.NumPages()
	}
	report.TotalPages = total

	first, last, skipped := window.Clamp(total)
	report.Skipped = skipped
	if skipped > 0 {
		logger.InfoContext(ctx, "window extends beyond document",
			"start", window.Start, "count", window.Count, "total_pages", total, "skipped", skipped)
	}

	for index := first; index <= last; index++ {
		if err := ctx.Err(); err != nil {
			return NewAcquisitionError(KindCanceled, "acquisition canceled", err).WithPage(index)
		}
		report.Visited++

		var native NativeResult
		if textDoc != nil {
			native = textDoc.PageText(index)
		} else {
			native = NativeResult{Status: NativeNeedsFallback, Reason: "text layer unavailable"}
		}

		if native.Status == NativeAccepted {
			report.Native++
			if err := fn(RawPage{Index: index, Text: native.Text, Source: SourceNative}); err != nil {
				return err
			}
			continue
		}

		logger.DebugContext(ctx, "falling back to ocr", "page", index, "reason", native.Reason)
		text, err := a.ocrPage(ctx, index, openRaster)
		if err != nil {
			if ctx.Err() != nil {
				return NewAcquisitionError(KindCanceled, "acquisition canceled", ctx.Err()).WithPage(index)
			}
			pageErr := PageError{Page: index, Stage: "ocr", Message: err.Error()}
			report.PageErrors = append(report.PageErrors, pageErr)
			logger.WarnContext(ctx, "page skipped", "page", index, "error", err)

			// a short text layer is still better than nothing
			if native.Text != "" {
				report.Native++
				if err := fn(RawPage{Index: index, Text: native.Text, Source: SourceNative}); err != nil {
					return err
				}
			}
			continue
		}

		report.OCR++
		if err := fn(RawPage{Index: index, Text: text, Source: SourceOCR}); err != nil {
			return err
		}
	}

	return nil
}

// ocrPage renders and recognizes one page. The bitmap goes out of scope on
// return, so at most one page image is alive at a time.
func (a *Acquirer) ocrPage(ctx context.Context, index int, openRaster func() (PageImages, error)) (string, error) {
	if a.ocr == nil {
		return "", errors.New("ocr engine not configured")
	}

	images, err := openRaster()
	if err != nil {
		return "", fmt.Errorf("rasterizer: %w", err)
	}

	img, err := images.PageImage(ctx, index)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	return a.recognize(ctx, img)
}

func (a *Acquirer) recognize(ctx context.Context, img image.Image) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ocr panic: %v", r)
		}
	}()
	return a.ocr.Recognize(ctx, img, a.config.OCRLanguage)
}

// acquireImage treats an uploaded image as a single page and sends it
// straight to OCR
func (a *Acquirer) acquireImage(ctx context.Context, doc Document, window Window, report *AcquireReport, fn func(RawPage) error) error {
	img, _, err := DecodeImage(doc.Data)
	if err != nil {
		return NewAcquisitionError(KindCorruptedImage, "cannot decode "+displayName(doc), err)
	}

	report.TotalPages = 1
	first, last, skipped := window.Clamp(1)
	report.Skipped = skipped
	if first > last {
		return nil
	}
	report.Visited = 1

	if a.ocr == nil {
		report.PageErrors = append(report.PageErrors, PageError{Page: 1, Stage: "ocr", Message: "ocr engine not configured"})
		return nil
	}

	text, err := a.recognize(ctx, img)
	if err != nil {
		if ctx.Err() != nil {
			return NewAcquisitionError(KindCanceled, "acquisition canceled", ctx.Err()).WithPage(1)
		}
		report.PageErrors = append(report.PageErrors, PageError{Page: 1, Stage: "ocr", Message: err.Error()})
		a.logger.WarnContext(ctx, "ocr failed", "document", displayName(doc), "error", err)
		return nil
	}

	report.OCR++
	return fn(RawPage{Index: 1, Text: text, Source: SourceOCR})
}

func displayName(doc Document) string {
	if doc.Name == "" {
		return "document"
	}
	return doc.Name
}
