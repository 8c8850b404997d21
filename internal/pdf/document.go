package pdf

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Media types accepted for acquisition
const (
	MIMEPDF  = "application/pdf"
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEGIF  = "image/gif"
	MIMETIFF = "image/tiff"
	MIMEBMP  = "image/bmp"
	MIMEWebP = "image/webp"
)

var supportedImages = map[string]bool{
	MIMEPNG:  true,
	MIMEJPEG: true,
	MIMEGIF:  true,
	MIMETIFF: true,
	MIMEBMP:  true,
	MIMEWebP: true,
}

// Document is an uploaded file held in memory
type Document struct {
	Name     string
	Data     []byte
	MIMEType string
}

// LoadDocument reads a file from disk, enforcing maxSize when positive
func LoadDocument(path string, maxSize int64) (Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Document{}, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return Document{}, NewAcquisitionError(KindTooLarge,
			fmt.Sprintf("%d bytes (max: %d bytes)", info.Size(), maxSize), ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}

	return Document{
		Name:     filepath.Base(path),
		Data:     data,
		MIMEType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
	}, nil
}

// DetectMIME returns the document's media type. A declared type is trusted
// unless it is empty or generic, in which case the content is sniffed and the
// file extension consulted last.
func (d Document) DetectMIME() string {
	declared := normalizeMIME(d.MIMEType)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	if sniffed := sniffMIME(d.Data); sniffed != "" {
		return sniffed
	}

	if ext := filepath.Ext(d.Name); ext != "" {
		if byExt := normalizeMIME(mime.TypeByExtension(strings.ToLower(ext))); byExt != "" {
			return byExt
		}
	}
	return declared
}

// IsPDF reports whether the document is a PDF
func (d Document) IsPDF() bool {
	return d.DetectMIME() == MIMEPDF
}

// IsImage reports whether the document is a supported image
func (d Document) IsImage() bool {
	return supportedImages[d.DetectMIME()]
}

func normalizeMIME(t string) string {
	if t == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(t))
	}
	if mediaType == "image/jpg" || mediaType == "image/pjpeg" {
		return MIMEJPEG
	}
	if mediaType == "image/x-ms-bmp" {
		return MIMEBMP
	}
	return mediaType
}

func sniffMIME(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	// http.DetectContentType does not know TIFF
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return MIMETIFF
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return MIMEPDF
	}

	sniffed := normalizeMIME(http.DetectContentType(data))
	if sniffed == "application/octet-stream" || strings.HasPrefix(sniffed, "text/") {
		return ""
	}
	return sniffed
}

// Window selects a contiguous range of pages, 1-based
type Window struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// Validate checks both bounds are positive
func (w Window) Validate() error {
	if w.Start < 1 || w.Count < 1 {
		return NewAcquisitionError(KindInvalidWindow,
			fmt.Sprintf("start=%d count=%d", w.Start, w.Count), ErrInvalidWindow)
	}
	return nil
}

// End returns the last page of the window
func (w Window) End() int {
	return w.Start + w.Count - 1
}

// Clamp returns the pages of the window that exist in a document of total
// pages, and how many requested pages lie beyond its end
func (w Window) Clamp(total int) (first, last, skipped int) {
	first, last = w.Start, w.End()
	if last > total {
		skipped = last - total
		if skipped > w.Count {
			skipped = w.Count
		}
		last = total
	}
	return first, last, skipped
}

// TextSource tells where a page's text came from
type TextSource string

const (
	SourceNative TextSource = "native"
	SourceOCR    TextSource = "ocr"
)

// RawPage is the text of one page. The acquirer hands pages to the caller one
// at a time and keeps no reference afterwards.
type RawPage struct {
	Index  int        `json:"index"`
	Text   string     `json:"text"`
	Source TextSource `json:"source"`
}
