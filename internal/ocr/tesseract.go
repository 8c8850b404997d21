// Package ocr recognizes text in page bitmaps.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultLanguage is the tesseract language pack for German, which covers
// umlauts and ß
const DefaultLanguage = "deu"

// ErrNotInstalled is returned when the tesseract binary cannot be found
var ErrNotInstalled = errors.New("tesseract binary not found")

// Engine recognizes text in an image
type Engine interface {
	Recognize(ctx context.Context, img image.Image, lang string) (string, error)
}

// Tesseract runs the tesseract command line tool, feeding the page as PNG on
// stdin and reading the text from stdout.
type Tesseract struct {
	Path string // binary; empty means "tesseract" from PATH
	PSM  int    // page segmentation mode; 0 keeps the tesseract default
	Lang string // used when Recognize is called with an empty language

	logger *slog.Logger
}

// NewTesseract creates an engine for the given binary path
func NewTesseract(path string, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tesseract{
		Path:   path,
		Lang:   DefaultLanguage,
		logger: logger.With("adapter", "tesseract"),
	}
}

// Available reports whether the binary can be located
func (t *Tesseract) Available() bool {
	_, err := exec.LookPath(t.binary())
	return err == nil
}

// Recognize runs OCR on img
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, lang string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("ocr: nil image")
	}
	if lang == "" {
		lang = t.Lang
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	bin, err := exec.LookPath(t.binary())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}

	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return "", fmt.Errorf("ocr: encode page: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, t.args(lang)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = &input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	bounds := img.Bounds()
	t.logger.DebugContext(ctx, "running ocr",
		"lang", lang,
		"width", bounds.Dx(),
		"height", bounds.Dy())

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("ocr: %w", ctxErr)
		}
		return "", fmt.Errorf("ocr: tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

func (t *Tesseract) binary() string {
	if t.Path != "" {
		return t.Path
	}
	return "tesseract"
}

func (t *Tesseract) args(lang string) []string {
	args := []string{"stdin", "stdout", "-l", lang}
	if t.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.PSM))
	}
	return args
}
