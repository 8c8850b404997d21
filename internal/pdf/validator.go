package pdf

import (
	"bytes"
	"fmt"
	"image"
	"os"
)

// ValidationResult describes whether a file can be processed
type ValidationResult struct {
	Path     string `json:"path"`
	Valid    bool   `json:"valid"`
	MIMEType string `json:"mime_type,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	Size     int64  `json:"size"`
	Message  string `json:"message,omitempty"`
}

// Validator handles document validation before acquisition
type Validator struct {
	maxFileSize int64
	text        TextLayer
}

// NewValidator creates a new validator with the specified size limit
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
		text:        NewNativeTextLayer(DefaultMinNativeChars),
	}
}

// ValidateFile checks that a file exists, is within the size limit and can
// be opened as a PDF or decoded as an image. Validation failures are
// reported in the result, not as an error.
func (v *Validator) ValidateFile(path string) *ValidationResult {
	result := &ValidationResult{Path: path}

	if path == "" {
		result.Message = "path cannot be empty"
		return result
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Message = fmt.Sprintf("file does not exist: %s", path)
		return result
	}
	if err != nil {
		result.Message = fmt.Sprintf("cannot access file: %v", err)
		return result
	}
	if info.IsDir() {
		result.Message = fmt.Sprintf("path is a directory, not a file: %s", path)
		return result
	}
	result.Size = info.Size()

	if info.Size() == 0 {
		result.Message = fmt.Sprintf("file is empty: %s", path)
		return result
	}
	if v.maxFileSize > 0 && info.Size() > v.maxFileSize {
		result.Message = fmt.Sprintf("file too large: %d bytes (max: %d bytes)", info.Size(), v.maxFileSize)
		return result
	}

	doc, err := LoadDocument(path, v.maxFileSize)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	if err := v.ValidateDocument(doc, result); err != nil {
		result.Message = err.Error()
		return result
	}

	result.Valid = true
	return result
}

// ValidateDocument checks an in-memory document and fills in its type and
// page count
func (v *Validator) ValidateDocument(doc Document, result *ValidationResult) error {
	if len(doc.Data) == 0 {
		return ErrEmptyDocument
	}

	mimeType := doc.DetectMIME()
	result.MIMEType = mimeType

	switch {
	case mimeType == MIMEPDF:
		textDoc, err := v.text.Open(doc.Data)
		if err != nil {
			return fmt.Errorf("invalid PDF file: %w", err)
		}
		result.Pages = textDoc.NumPages()
		return nil
	case supportedImages[mimeType]:
		if _, _, err := image.DecodeConfig(bytes.NewReader(doc.Data)); err != nil {
			return fmt.Errorf("invalid image file: %w", err)
		}
		result.Pages = 1
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMedia, mimeType)
	}
}

// IsValid performs a quick check to see if a file can be processed
func (v *Validator) IsValid(path string) bool {
	return v.ValidateFile(path).Valid
}
