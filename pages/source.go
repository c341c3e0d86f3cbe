package pages

import (
	"context"
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/pagecap/format"
)

// Source is one page's content.
type Source interface {
	// Size returns the page size in layout units at scale 1.
	Size() (w, h float64)

	// Render produces the page raster at the given display scale. The
	// raster should be about Size()*scale pixels; callers do not depend on
	// the exact size.
	Render(ctx context.Context, scale float64) (image.Image, error)
}

// ImageSource is a page backed by an already decoded image.
type ImageSource struct {
	img     image.Image
	density float64
	interp  xdraw.Interpolator
}

// NewImageSource wraps img. density is the number of image pixels per layout
// unit; an image scanned for a 2x display has density 2. Values <= 0 mean 1.
func NewImageSource(img image.Image, density float64) *ImageSource {
	if density <= 0 {
		density = 1
	}
	return &ImageSource{img: img, density: density, interp: xdraw.CatmullRom}
}

// OpenImage decodes the image at path into an ImageSource with density 1.
func OpenImage(path string) (*ImageSource, error) {
	img, _, err := format.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return NewImageSource(img, 1), nil
}

// Size implements Source.
func (s *ImageSource) Size() (w, h float64) {
	b := s.img.Bounds()
	return float64(b.Dx()) / s.density, float64(b.Dy()) / s.density
}

// Render implements Source. When the requested size matches the image, the
// image itself is returned.
func (s *ImageSource) Render(ctx context.Context, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("pages: invalid render scale %g", scale)
	}

	w, h := s.Size()
	pw := int(math.Round(w * scale))
	ph := int(math.Round(h * scale))
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("pages: page renders to empty raster at scale %g", scale)
	}

	b := s.img.Bounds()
	if pw == b.Dx() && ph == b.Dy() {
		return s.img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.interp.Scale(dst, dst.Bounds(), s.img, b, xdraw.Src, nil)
	return dst, nil
}
