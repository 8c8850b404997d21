package ocr

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTesseract_Args(t *testing.T) {
	tess := NewTesseract("", nil)
	assert.Equal(t, []string{"stdin", "stdout", "-l", "deu"}, tess.args("deu"))

	tess.PSM = 6
	assert.Equal(t, []string{"stdin", "stdout", "-l", "eng", "--psm", "6"}, tess.args("eng"))
}

func TestTesseract_Defaults(t *testing.T) {
	tess := NewTesseract("", nil)
	assert.Equal(t, "tesseract", tess.binary())
	assert.Equal(t, DefaultLanguage, tess.Lang)

	tess = NewTesseract("/opt/bin/tesseract", nil)
	assert.Equal(t, "/opt/bin/tesseract", tess.binary())
}

func TestTesseract_MissingBinary(t *testing.T) {
	tess := NewTesseract(filepath.Join(t.TempDir(), "no-such-tesseract"), nil)
	assert.False(t, tess.Available())

	_, err := tess.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInstalled))
}

func TestTesseract_NilImage(t *testing.T) {
	tess := NewTesseract("", nil)
	_, err := tess.Recognize(context.Background(), nil, "deu")
	assert.Error(t, err)
}

func TestTesseract_ImplementsEngine(t *testing.T) {
	var _ Engine = NewTesseract("", nil)
}
