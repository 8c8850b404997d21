package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Rasterizer produces page bitmaps for OCR
type Rasterizer interface {
	Open(data []byte) (PageImages, error)
}

// PageImages renders individual pages. Page indices are 1-based.
type PageImages interface {
	NumPages() int
	PageImage(ctx context.Context, index int) (image.Image, error)
}

// EmbeddedImageRasterizer uses pdfcpu to pull the largest image embedded in
// a page. Scanned PDFs store each page as one full-page image, which is
// exactly what OCR needs.
type EmbeddedImageRasterizer struct{}

// NewEmbeddedImageRasterizer creates a pdfcpu-backed rasterizer
func NewEmbeddedImageRasterizer() *EmbeddedImageRasterizer {
	return &EmbeddedImageRasterizer{}
}

// Open reads and optimizes the PDF with relaxed validation
func (r *EmbeddedImageRasterizer) Open(data []byte) (pages PageImages, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("pdfcpu panic: %v", rec)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &embeddedImages{ctx: pdfCtx}, nil
}

type embeddedImages struct {
	ctx *model.Context
}

func (p *embeddedImages) NumPages() int {
	return p.ctx.PageCount
}

func (p *embeddedImages) PageImage(ctx context.Context, index int) (img image.Image, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 1 || index > p.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range (1-%d)", index, p.ctx.PageCount)
	}

	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("pdfcpu panic: %v", rec)
		}
	}()

	images, err := pdfcpu.ExtractPageImages(p.ctx, index, false)
	if err != nil {
		return nil, fmt.Errorf("extract page images: %w", err)
	}

	var best *model.Image
	for objNr := range images {
		candidate := images[objNr]
		if best == nil || candidate.Width*candidate.Height > best.Width*best.Height {
			best = &candidate
		}
	}
	if best == nil {
		return nil, fmt.Errorf("page has neither a text layer nor an embedded image")
	}

	decoded, _, err := image.Decode(best)
	if err != nil {
		return nil, fmt.Errorf("decode %s page image: %w", best.FileType, err)
	}
	return decoded, nil
}

// DecodeImage decodes an uploaded image in any registered format
func DecodeImage(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}
