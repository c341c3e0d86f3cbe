package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/pagecap/format"
	"github.com/tsawler/pagecap/model"
)

// Selection is the region to capture, in document coordinates.
type Selection struct {
	Box model.Box

	// Ratio is the device pixel ratio of the output. Zero means 1.
	Ratio float64

	// Background fills pixels no page covers. Nil uses the engine default.
	Background color.Color
}

// Composite is the output of one capture. The image is owned by the caller.
type Composite struct {
	Image     *image.RGBA
	Selection Selection

	// Pages lists, in scan order, the pages that contributed pixels.
	Pages []int
}

// Empty reports whether no page contributed to the composite.
func (c *Composite) Empty() bool {
	return len(c.Pages) == 0
}

// HasPixels reports whether the image has positive area. A zero-width or
// zero-height selection yields a valid composite without pixels.
func (c *Composite) HasPixels() bool {
	return c.Image != nil && !c.Image.Bounds().Empty()
}

// Encode writes the composite image to w in format f. A composite without
// pixels writes nothing, since no image format can hold it.
func (c *Composite) Encode(w io.Writer, f format.Format, opts *format.EncodeOptions) error {
	if !c.HasPixels() {
		return nil
	}
	return format.Encode(w, c.Image, f, opts)
}

// DefaultMaxPixels bounds the output of a single capture, about 1 GiB of RGBA.
const DefaultMaxPixels = 1 << 28

// Engine composes the page pixels under a selection into one image.
// An Engine holds only configuration and is safe for concurrent use; each
// Capture call allocates its own output.
type Engine struct {
	border      float64
	borderSet   bool
	renderScale float64
	background  color.Color
	interp      xdraw.Interpolator
	scanAll     bool
	maxPixels   int64
	logger      *slog.Logger
}

// New creates an Engine. By default the background is white, resampling uses
// approximate bilinear interpolation and scanning stops early.
func New(opts ...Option) *Engine {
	e := &Engine{
		background: color.White,
		interp:     xdraw.ApproxBiLinear,
		maxPixels:  DefaultMaxPixels,
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capture returns the pixels of every page visible under sel.
//
// Pages are visited in index order. Each page whose content box (layout box
// minus the border) collides with the selection has its raster fetched,
// rendering it on demand, and the overlapping part is drawn into the output.
// Once a colliding page has been seen, the first non-colliding page ends the
// scan unless the engine was built WithScanAll.
//
// The result is never partial: a render failure, provider error or context
// cancellation returns a *CaptureError and no composite. A selection that
// hits no page yields a background-only image.
//
// Page positions are read while scanning. If the provider re-lays out pages
// concurrently, the composite may combine old and new positions.
func (e *Engine) Capture(ctx context.Context, p Provider, sel Selection) (*Composite, error) {
	if sel.Ratio == 0 {
		sel.Ratio = 1
	}
	if sel.Background == nil {
		sel.Background = e.background
	}
	width, height, err := e.outputSize(sel)
	if err != nil {
		return nil, &CaptureError{Op: "validate", Page: -1, Err: err}
	}

	box := sel.Box
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(sel.Background), image.Point{}, xdraw.Src)

	// selection-local units to output pixels
	toDevice := model.Translate(-box.X, -box.Y).Multiply(model.Scale(sel.Ratio, sel.Ratio))
	fromDevice := model.Scale(1/sel.Ratio, 1/sel.Ratio).Multiply(model.Translate(box.X, box.Y))

	border := e.pageBorder(p)
	scale := e.displayScale(p)
	log := e.logger.With("selection", box, "ratio", sel.Ratio)

	var pages []int
	seen := false
	n := p.PageCount()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &CaptureError{Op: "scan", Page: i, Err: err}
		}

		layout, err := p.PageBox(i)
		if err != nil {
			return nil, &CaptureError{Op: "layout", Page: i, Err: err}
		}
		content := layout.ExpandBy(-border)

		if !model.Collides(box, content) {
			if seen && !e.scanAll {
				log.Debug("scan stopped", "page", i)
				break
			}
			continue
		}
		seen = true

		src, err := e.raster(ctx, p, i, scale)
		if err != nil {
			return nil, &CaptureError{Op: "render", Page: i, Err: err}
		}

		overlap, ok := model.Intersect(box, content)
		if !ok {
			// touching edges only
			continue
		}
		log.Debug("page overlaps selection", "page", i, "overlap", overlap)
		if e.drawPage(dst, toDevice, fromDevice, src, content, overlap) {
			pages = append(pages, i)
		}
	}

	log.Info("capture complete", "width", width, "height", height, "pages", pages)

	return &Composite{Image: dst, Selection: sel, Pages: pages}, nil
}

// raster returns the materialized raster of page i, rendering it if needed.
func (e *Engine) raster(ctx context.Context, p Provider, i int, scale float64) (image.Image, error) {
	if img, ok := p.Raster(i); ok && img != nil {
		return img, nil
	}

	e.logger.Debug("rendering page", "page", i, "scale", scale)
	img, err := p.Render(ctx, i, scale)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, &RenderError{Page: i, Scale: scale, Err: err}
	}
	if img == nil {
		return nil, &RenderError{Page: i, Scale: scale, Err: errors.New("provider returned no raster")}
	}
	// the render may have finished after cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// drawPage copies the part of src under overlap into dst and reports whether
// any pixel was written. content is the page's content box in document
// coordinates; src covers it exactly.
//
// The device rectangle covers every output pixel the overlap touches, so a
// fractional selection edge is not left as background. The source rectangle
// is the document region under those pixels.
func (e *Engine) drawPage(dst *image.RGBA, toDevice, fromDevice model.Matrix, src image.Image, content, overlap model.Box) bool {
	sb := src.Bounds()

	// Source rasters may be rendered at any density, so each axis gets its
	// own ratio rather than the output ratio.
	toSource := model.Translate(-content.X, -content.Y).
		Multiply(model.Scale(float64(sb.Dx())/content.W, float64(sb.Dy())/content.H)).
		Multiply(model.Translate(float64(sb.Min.X), float64(sb.Min.Y)))

	dr := deviceRect(toDevice.TransformBox(overlap)).Intersect(dst.Bounds())
	if dr.Empty() {
		return false
	}
	under := fromDevice.TransformBox(model.BoxFromRect(dr))
	sr := deviceRect(toSource.TransformBox(under)).Intersect(sb)
	if sr.Empty() {
		return false
	}

	if sr.Dx() == dr.Dx() && sr.Dy() == dr.Dy() {
		xdraw.Copy(dst, dr.Min, src, sr, xdraw.Over, nil)
		return true
	}
	e.interp.Scale(dst, dr, src, sr, xdraw.Over, nil)
	return true
}

// deviceRect rounds the min edges of b to the nearest pixel and the max edges
// up, so partially covered pixels are included.
func deviceRect(b model.Box) image.Rectangle {
	minX, minY := math.Round(b.MinX()), math.Round(b.MinY())
	maxX, maxY := math.Ceil(b.MaxX()-pixelEpsilon), math.Ceil(b.MaxY()-pixelEpsilon)
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

// pixelEpsilon absorbs float error in transformed edges that land on a pixel
// boundary.
const pixelEpsilon = 1e-9

func (e *Engine) pageBorder(p Provider) float64 {
	if e.borderSet {
		return e.border
	}
	if br, ok := p.(BorderReporter); ok {
		return br.BorderWidth()
	}
	return 0
}

func (e *Engine) displayScale(p Provider) float64 {
	if e.renderScale > 0 {
		return e.renderScale
	}
	if sr, ok := p.(ScaleReporter); ok {
		if s := sr.CurrentScale(); s > 0 {
			return s
		}
	}
	return 1
}

// outputSize validates sel and returns the output dimensions in pixels.
func (e *Engine) outputSize(sel Selection) (int, int, error) {
	b := sel.Box
	if !b.IsFinite() {
		return 0, 0, fmt.Errorf("%w: selection %+v is not finite", ErrInvalidGeometry, b)
	}
	if b.W < 0 || b.H < 0 {
		return 0, 0, fmt.Errorf("%w: selection %+v has negative size", ErrInvalidGeometry, b)
	}
	if math.IsNaN(sel.Ratio) || math.IsInf(sel.Ratio, 0) || sel.Ratio < 0 {
		return 0, 0, fmt.Errorf("%w: device pixel ratio %g", ErrInvalidGeometry, sel.Ratio)
	}

	// Checked in float64 so huge sizes cannot overflow int.
	w := math.Ceil(b.W * sel.Ratio)
	h := math.Ceil(b.H * sel.Ratio)
	limit := float64(e.maxPixels)
	if w > limit || h > limit || w*h > limit {
		return 0, 0, fmt.Errorf("%w: %gx%g output exceeds %d pixels", ErrInvalidGeometry, w, h, e.maxPixels)
	}
	return int(w), int(h), nil
}
