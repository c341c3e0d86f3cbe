package capture

import (
	"image/color"
	"io"
	"log/slog"

	xdraw "golang.org/x/image/draw"
)

// Option configures an Engine.
type Option func(*Engine)

// WithBorder sets the uniform page border subtracted from every layout box.
// It takes precedence over a provider's BorderWidth.
func WithBorder(width float64) Option {
	return func(e *Engine) {
		e.border = width
		e.borderSet = true
	}
}

// WithRenderScale sets the display scale used for on-demand renders. It
// takes precedence over a provider's CurrentScale.
func WithRenderScale(scale float64) Option {
	return func(e *Engine) {
		e.renderScale = scale
	}
}

// WithBackground sets the default fill for pixels no page covers.
func WithBackground(c color.Color) Option {
	return func(e *Engine) {
		if c != nil {
			e.background = c
		}
	}
}

// WithInterpolator sets the resampler used when a page raster and the output
// differ in pixel density.
func WithInterpolator(interp xdraw.Interpolator) Option {
	return func(e *Engine) {
		if interp != nil {
			e.interp = interp
		}
	}
}

// WithScanAll makes the engine visit every page instead of stopping at the
// first non-colliding page after a colliding one. Use it when the provider
// cannot guarantee pages are ordered along the scroll axis.
func WithScanAll() Option {
	return func(e *Engine) {
		e.scanAll = true
	}
}

// WithMaxPixels caps the number of pixels a single capture may allocate.
// Selections whose output would exceed it fail with ErrInvalidGeometry.
// Zero or less restores DefaultMaxPixels.
func WithMaxPixels(n int64) Option {
	return func(e *Engine) {
		if n <= 0 {
			n = DefaultMaxPixels
		}
		e.maxPixels = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
