// Package model provides the geometric value types shared by the page layout
// and region capture packages.
//
// # Boxes
//
// [Box] is an axis-aligned rectangle anchored at its minimum corner:
//
//	sel := model.NewBox(100, 250, 300, 120)
//	page := model.NewBox(0, 0, 612, 792)
//	if overlap, ok := model.Intersect(sel, page); ok {
//	    fmt.Println(overlap.Area())
//	}
//
// All operations are pure: methods such as [Box.Expand], [Box.Scale] or
// [Box.Translate] return a new value and never modify the receiver.
//
// Edge semantics differ between predicates and are relied upon by callers:
//
//   - [Collides] is boundary inclusive; boxes sharing an edge collide.
//   - [Contains] is strict; a box touching any edge is not contained.
//   - [Intersect] is strict; a zero-width or zero-height overlap reports false.
//
// Width and height are expected to be non-negative and finite. Nothing in this
// package checks that; NaN and Inf propagate through every operation.
//
// # Points and Transforms
//
//   - [Point] - 2D coordinate in document, viewer or pixel space
//   - [Matrix] - 2D affine transformation used to move boxes between spaces
package model
