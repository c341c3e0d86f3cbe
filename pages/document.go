package pages

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/tsawler/pagecap/capture"
	"github.com/tsawler/pagecap/model"
)

// Default layout values, in layout units.
const (
	DefaultBorder = 9
	DefaultGap    = 2
	DefaultScale  = 1
)

// Option configures a Document.
type Option func(*Document)

// WithScale sets the display scale (zoom) pages are laid out and rendered at.
func WithScale(scale float64) Option {
	return func(d *Document) {
		if scale > 0 {
			d.scale = scale
		}
	}
}

// WithBorder sets the border drawn around every page. Layout boxes include
// it on all four sides.
func WithBorder(width float64) Option {
	return func(d *Document) {
		if width >= 0 {
			d.border = width
		}
	}
}

// WithGap sets the space between consecutive layout boxes and around the
// outside of the document.
func WithGap(gap float64) Option {
	return func(d *Document) {
		if gap >= 0 {
			d.gap = gap
		}
	}
}

// State summarises the document layout.
type State struct {
	Scale     float64 `json:"scale"`
	PageCount int     `json:"pageCount"`
	Border    float64 `json:"border"`
	Width     float64 `json:"width"`  // widest layout box
	Height    float64 `json:"height"` // sum of layout boxes and gaps
	GapX      float64 `json:"gapX"`   // total horizontal space outside pages
	GapY      float64 `json:"gapY"`   // total vertical space outside pages
}

// Document lays pages out top to bottom in a single column, centred on the
// widest page, and caches their rasters once rendered. It implements
// capture.Provider and is safe for concurrent use.
type Document struct {
	mu      sync.RWMutex
	sources []Source
	scale   float64
	border  float64
	gap     float64
	boxes   []model.Box
	rasters []image.Image
}

var (
	_ capture.Provider       = (*Document)(nil)
	_ capture.BorderReporter = (*Document)(nil)
	_ capture.ScaleReporter  = (*Document)(nil)
)

// New creates a Document from sources.
func New(sources []Source, opts ...Option) *Document {
	d := &Document{
		sources: append([]Source(nil), sources...),
		scale:   DefaultScale,
		border:  DefaultBorder,
		gap:     DefaultGap,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.layout()
	return d
}

// Open decodes each image file into a page, in order.
func Open(paths []string, opts ...Option) (*Document, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		src, err := OpenImage(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open page %d: %w", len(sources), err)
		}
		sources = append(sources, src)
	}
	return New(sources, opts...), nil
}

// layout recomputes every layout box. Caller must hold the write lock or own
// d exclusively.
func (d *Document) layout() {
	d.boxes = make([]model.Box, len(d.sources))
	d.rasters = make([]image.Image, len(d.sources))

	var widest float64
	for i, src := range d.sources {
		w, h := src.Size()
		d.boxes[i] = model.NewBox(0, 0, w*d.scale, h*d.scale).ExpandBy(d.border)
		if d.boxes[i].W > widest {
			widest = d.boxes[i].W
		}
	}

	y := d.gap
	for i, b := range d.boxes {
		x := d.gap + (widest-b.W)/2
		d.boxes[i] = b.WithOrigin(model.Point{X: x, Y: y})
		y += b.H + d.gap
	}
}

// PageCount implements capture.Provider.
func (d *Document) PageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.boxes)
}

// PageBox implements capture.Provider.
func (d *Document) PageBox(i int) (model.Box, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.boxes) {
		return model.Box{}, fmt.Errorf("page %d of %d: %w", i, len(d.boxes), capture.ErrPageOutOfRange)
	}
	return d.boxes[i], nil
}

// ContentBox returns the layout box of page i without its border.
func (d *Document) ContentBox(i int) (model.Box, error) {
	b, err := d.PageBox(i)
	if err != nil {
		return model.Box{}, err
	}
	return b.ExpandBy(-d.BorderWidth()), nil
}

// Raster implements capture.Provider.
func (d *Document) Raster(i int) (image.Image, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.rasters) || d.rasters[i] == nil {
		return nil, false
	}
	return d.rasters[i], true
}

// Render implements capture.Provider. A raster rendered at the current
// display scale is cached and returned by Raster afterwards.
func (d *Document) Render(ctx context.Context, i int, scale float64) (image.Image, error) {
	d.mu.RLock()
	if i < 0 || i >= len(d.sources) {
		n := len(d.sources)
		d.mu.RUnlock()
		return nil, fmt.Errorf("page %d of %d: %w", i, n, capture.ErrPageOutOfRange)
	}
	src := d.sources[i]
	d.mu.RUnlock()

	img, err := src.Render(ctx, scale)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	// the document may have been re-laid out while rendering
	if scale == d.scale && i < len(d.rasters) {
		d.rasters[i] = img
	}
	d.mu.Unlock()

	return img, nil
}

// BorderWidth implements capture.BorderReporter.
func (d *Document) BorderWidth() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.border
}

// CurrentScale implements capture.ScaleReporter.
func (d *Document) CurrentScale() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scale
}

// SetScale changes the display scale, re-lays out every page and drops all
// cached rasters.
func (d *Document) SetScale(scale float64) {
	if scale <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scale = scale
	d.layout()
}

// Boxes returns a copy of every layout box, in page order.
func (d *Document) Boxes() []model.Box {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]model.Box(nil), d.boxes...)
}

// Bounds returns the box enclosing every page. An empty document has zero
// bounds.
func (d *Document) Bounds() model.Box {
	boxes := d.Boxes()
	if len(boxes) == 0 {
		return model.Box{}
	}
	return model.Common(boxes)
}

// PageAt returns the index of the page whose layout box contains p, or -1.
func (d *Document) PageAt(p model.Point) int {
	for i, b := range d.Boxes() {
		if b.ContainsPoint(p, 0) {
			return i
		}
	}
	return -1
}

// State reports the layout metrics of the document.
func (d *Document) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := State{
		Scale:     d.scale,
		PageCount: len(d.boxes),
		Border:    d.border,
		GapX:      2 * d.gap,
		GapY:      d.gap * float64(len(d.boxes)+1),
	}
	for _, b := range d.boxes {
		if b.W > s.Width {
			s.Width = b.W
		}
		s.Height += b.H
	}
	s.Height += s.GapY
	return s
}
