package capture

import (
	"context"
	"image"

	"github.com/tsawler/pagecap/model"
)

// Provider supplies page layout boxes and page rasters.
//
// Pages are indexed 0..PageCount()-1 and are expected to be laid out in
// non-decreasing order along the scroll axis. The engine relies on that order
// to stop scanning early; see WithScanAll for providers that cannot promise
// it.
type Provider interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageBox returns the layout box of page i in document coordinates,
	// including the page border.
	PageBox(i int) (model.Box, error)

	// Raster returns the already materialized raster of page i, if any.
	// The pixel size of the raster is its Bounds().
	Raster(i int) (image.Image, bool)

	// Render materializes page i at the given display scale. It may block;
	// implementations should honour ctx.
	Render(ctx context.Context, i int, scale float64) (image.Image, error)
}

// BorderReporter is implemented by providers whose page layout boxes include
// a border. The border is read once per capture and applied to every page.
type BorderReporter interface {
	BorderWidth() float64
}

// ScaleReporter is implemented by providers that know the current display
// scale. Missing rasters are rendered at this scale.
type ScaleReporter interface {
	CurrentScale() float64
}
