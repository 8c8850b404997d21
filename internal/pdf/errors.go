package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMedia is returned for documents that are neither PDF nor a
	// supported image format
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrEmptyDocument is returned for zero-byte uploads
	ErrEmptyDocument = errors.New("document is empty")

	// ErrFileTooLarge is returned when a document exceeds the size limit
	ErrFileTooLarge = errors.New("document too large")

	// ErrInvalidWindow is returned for page windows with non-positive values
	ErrInvalidWindow = errors.New("invalid page window")
)

// ErrorKind categorizes document-level acquisition failures
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnsupportedMedia
	KindEmpty
	KindTooLarge
	KindInvalidWindow
	KindUnreadable
	KindCorruptedImage
	KindCanceled
)

// String returns a string representation of the ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedMedia:
		return "UNSUPPORTED_MEDIA"
	case KindEmpty:
		return "EMPTY_DOCUMENT"
	case KindTooLarge:
		return "TOO_LARGE"
	case KindInvalidWindow:
		return "INVALID_WINDOW"
	case KindUnreadable:
		return "UNREADABLE_PDF"
	case KindCorruptedImage:
		return "CORRUPTED_IMAGE"
	case KindCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// AcquisitionError is a failure that prevents reading the document at all.
// Failures confined to a single page are reported as PageError instead.
type AcquisitionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Page    int       `json:"page,omitempty"`
	Err     error     `json:"-"`
}

// NewAcquisitionError creates an error of the given kind
func NewAcquisitionError(kind ErrorKind, message string, err error) *AcquisitionError {
	return &AcquisitionError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *AcquisitionError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (page %d)", msg, e.Page)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// WithPage sets the page the failure was detected on
func (e *AcquisitionError) WithPage(page int) *AcquisitionError {
	e.Page = page
	return e
}

// Hint returns a user-facing suggestion for resolving the failure
func (e *AcquisitionError) Hint() string {
	switch e.Kind {
	case KindUnsupportedMedia:
		return "upload a PDF or an image (PNG, JPEG, TIFF, BMP, GIF, WebP)"
	case KindEmpty:
		return "the file is empty; check the upload"
	case KindTooLarge:
		return "split the document or select fewer pages"
	case KindInvalidWindow:
		return "start page and page count must both be at least 1"
	case KindUnreadable, KindCorruptedImage:
		return "the file could not be read; re-save or re-export it and try again"
	default:
		return ""
	}
}

// PageError records a failure confined to one page; acquisition continues
// with the next page
type PageError struct {
	Page    int    `json:"page"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e PageError) Error() string {
	return fmt.Sprintf("page %d: %s: %s", e.Page, e.Stage, e.Message)
}

// IsAcquisitionError reports whether err carries an AcquisitionError
func IsAcquisitionError(err error) bool {
	var ae *AcquisitionError
	return errors.As(err, &ae)
}
