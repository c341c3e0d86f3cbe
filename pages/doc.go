// Package pages provides an in-memory page document that can be captured
// with the capture package.
//
// # Layout
//
// A [Document] stacks its pages top to bottom in one column. Every page gets
// a layout box of its size times the display scale, grown by the page border
// on all four sides and centred horizontally on the widest page:
//
//	doc, err := pages.Open([]string{"p1.png", "p2.png"},
//	    pages.WithScale(1.5),
//	    pages.WithBorder(9),
//	)
//	box, _ := doc.PageBox(1)
//
// # Rasters
//
// Pages are materialized lazily. [Document.Render] asks the page [Source] for
// a raster and caches it when it was rendered at the current scale;
// [Document.Raster] only returns cached rasters. [Document.SetScale] drops
// the cache because every layout box changes.
//
// [ImageSource] adapts a decoded image to the Source interface, resampling it
// for scales other than its native density.
package pages
