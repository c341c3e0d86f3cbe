// Package capture composes the pixels under a rectangular selection that
// spans several independently rendered pages into a single image.
//
// # Providers
//
// Pages come from a [Provider], which reports each page's layout box in
// document coordinates and hands out its raster, rendering it on demand when
// it has not been materialized yet. Providers that know their page border or
// display scale can also implement [BorderReporter] and [ScaleReporter].
//
// # Capturing
//
//	engine := capture.New(capture.WithBackground(color.White))
//	out, err := engine.Capture(ctx, doc, capture.Selection{
//	    Box:   model.NewBox(40, 900, 300, 200),
//	    Ratio: 2,
//	})
//	if err != nil {
//	    // *CaptureError; RenderError and ErrInvalidGeometry are wrapped inside
//	}
//	_ = out.Encode(w, format.PNG, nil)
//
// The output is ceil(w*ratio) by ceil(h*ratio) pixels. Each page contributes
// the part of its raster under the selection, mapped with per-axis ratios
// between the raster's pixel size and the page's content box, so pages
// rendered at a different density than the output are resampled.
//
// # Ordering
//
// Pages are assumed to be laid out in non-decreasing order along the scroll
// axis. Once a page collides with the selection, the first later page that
// does not ends the scan. If the order cannot be guaranteed, build the engine
// with [WithScanAll].
package capture
