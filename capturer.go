package pagecap

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/tsawler/pagecap/capture"
	"github.com/tsawler/pagecap/format"
	"github.com/tsawler/pagecap/model"
	"github.com/tsawler/pagecap/ocr"
	"github.com/tsawler/pagecap/pages"
	xdraw "golang.org/x/image/draw"
)

// Capturer provides a fluent interface for capturing page regions.
// Each configuration method returns a new Capturer instance, making it
// safe for concurrent use and allowing method chaining.
type Capturer struct {
	// Source (exactly one is set)
	paths    []string
	provider capture.Provider

	// Configuration
	options CaptureOptions
}

// clone creates a shallow copy of the Capturer with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Capturer) clone() *Capturer {
	return &Capturer{
		paths:    c.paths,
		provider: c.provider,
		options:  c.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Capturer instance)
// ============================================================================

// Select sets the region to capture, in document coordinates.
//
// Example:
//
//	data, err := pagecap.Open("p.png").Select(10, 10, 200, 100).PNG(ctx)
func (c *Capturer) Select(x, y, w, h float64) *Capturer {
	return c.Selection(model.NewBox(x, y, w, h))
}

// Selection sets the region to capture from a Box.
func (c *Capturer) Selection(box model.Box) *Capturer {
	newCap := c.clone()
	newCap.options.selection = box
	newCap.options.selected = true
	return newCap
}

// Ratio sets the device pixel ratio of the output. The output image is
// ceil(w*ratio) by ceil(h*ratio) pixels.
//
// Example:
//
//	data, err := pagecap.Open("p.png").Select(0, 0, 100, 100).Ratio(2).PNG(ctx)
func (c *Capturer) Ratio(ratio float64) *Capturer {
	newCap := c.clone()
	newCap.options.ratio = ratio
	return newCap
}

// Background sets the colour of pixels no page covers.
func (c *Capturer) Background(col color.Color) *Capturer {
	newCap := c.clone()
	newCap.options.background = col
	return newCap
}

// Scale sets the display scale pages are laid out and rendered at.
func (c *Capturer) Scale(scale float64) *Capturer {
	newCap := c.clone()
	newCap.options.scale = scale
	return newCap
}

// Border sets the page border width.
func (c *Capturer) Border(width float64) *Capturer {
	newCap := c.clone()
	newCap.options.border = width
	newCap.options.hasBorder = true
	return newCap
}

// Gap sets the space between pages.
func (c *Capturer) Gap(gap float64) *Capturer {
	newCap := c.clone()
	newCap.options.gap = gap
	newCap.options.hasGap = true
	return newCap
}

// ScanAll visits every page instead of stopping once the selection has been
// passed. Use it with providers whose pages are not in scroll order.
func (c *Capturer) ScanAll() *Capturer {
	newCap := c.clone()
	newCap.options.scanAll = true
	return newCap
}

// Interpolator sets the kernel used to resample pages whose pixel density
// differs from the output.
func (c *Capturer) Interpolator(interp xdraw.Interpolator) *Capturer {
	newCap := c.clone()
	newCap.options.interp = interp
	return newCap
}

// MaxPixels caps the size of the composed image. Larger selections fail
// with capture.ErrInvalidGeometry.
func (c *Capturer) MaxPixels(n int64) *Capturer {
	newCap := c.clone()
	newCap.options.maxPixels = n
	return newCap
}

// Logger sets the logger used by the capture engine.
func (c *Capturer) Logger(logger *slog.Logger) *Capturer {
	newCap := c.clone()
	newCap.options.logger = logger
	return newCap
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Provider returns the page provider the Capturer reads from, opening the
// image files if the Capturer was created with Open.
func (c *Capturer) Provider() (capture.Provider, error) {
	if c.provider != nil {
		return c.provider, nil
	}
	if len(c.paths) == 0 {
		return nil, fmt.Errorf("no pages specified")
	}

	opts := []pages.Option{pages.WithScale(c.options.scale)}
	if c.options.hasBorder {
		opts = append(opts, pages.WithBorder(c.options.border))
	}
	if c.options.hasGap {
		opts = append(opts, pages.WithGap(c.options.gap))
	}

	doc, err := pages.Open(c.paths, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open pages: %w", err)
	}
	return doc, nil
}

// Layout returns the layout box of every page.
func (c *Capturer) Layout() ([]model.Box, error) {
	p, err := c.Provider()
	if err != nil {
		return nil, err
	}

	boxes := make([]model.Box, p.PageCount())
	for i := range boxes {
		if boxes[i], err = p.PageBox(i); err != nil {
			return nil, err
		}
	}
	return boxes, nil
}

// Composite runs the capture and returns the composed image.
func (c *Capturer) Composite(ctx context.Context) (*capture.Composite, error) {
	if !c.options.selected {
		return nil, fmt.Errorf("no selection specified")
	}

	p, err := c.Provider()
	if err != nil {
		return nil, err
	}

	return c.engine().Capture(ctx, p, capture.Selection{
		Box:        c.options.selection,
		Ratio:      c.options.ratio,
		Background: c.options.background,
	})
}

// Encode runs the capture and writes the result to w in format f. A
// selection without area writes nothing.
func (c *Capturer) Encode(ctx context.Context, w io.Writer, f format.Format) error {
	out, err := c.Composite(ctx)
	if err != nil {
		return err
	}
	return out.Encode(w, f, nil)
}

// PNG runs the capture and returns the PNG-encoded result, which is empty
// for a selection without area.
func (c *Capturer) PNG(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(ctx, &buf, format.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Text runs the capture and recognizes the text in it with OCR. It returns
// ocr.ErrOCRNotEnabled unless built with the "ocr" tag.
func (c *Capturer) Text(ctx context.Context) (string, error) {
	out, err := c.Composite(ctx)
	if err != nil {
		return "", err
	}

	client, err := ocr.New()
	if err != nil {
		return "", err
	}
	defer client.Close()

	return client.RecognizeRaster(out.Image)
}

func (c *Capturer) engine() *capture.Engine {
	opts := []capture.Option{capture.WithLogger(c.options.logger)}
	// documents opened from files already report their border
	if c.options.hasBorder && c.provider != nil {
		opts = append(opts, capture.WithBorder(c.options.border))
	}
	if c.options.scanAll {
		opts = append(opts, capture.WithScanAll())
	}
	if c.options.interp != nil {
		opts = append(opts, capture.WithInterpolator(c.options.interp))
	}
	if c.options.maxPixels > 0 {
		opts = append(opts, capture.WithMaxPixels(c.options.maxPixels))
	}
	return capture.New(opts...)
}
