package pagecap

import (
	"image/color"
	"log/slog"

	"github.com/tsawler/pagecap/model"
	xdraw "golang.org/x/image/draw"
)

// CaptureOptions holds configuration for a capture.
type CaptureOptions struct {
	// Region
	selection model.Box
	selected  bool
	ratio     float64

	// Page layout (only used when the Capturer opens image files)
	scale     float64
	border    float64
	hasBorder bool
	gap       float64
	hasGap    bool

	// Compositing
	background color.Color
	scanAll    bool
	interp     xdraw.Interpolator
	maxPixels  int64

	logger *slog.Logger
}

// defaultOptions returns the default capture options.
func defaultOptions() CaptureOptions {
	return CaptureOptions{
		ratio:      1,
		scale:      1,
		background: color.White,
	}
}

// clone creates a copy of CaptureOptions. Nothing in it is mutated in place,
// so a value copy is enough.
func (o CaptureOptions) clone() CaptureOptions {
	return o
}
