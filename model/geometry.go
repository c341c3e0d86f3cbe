package model

import (
	"image"
	"math"
)

// Point represents a 2D point
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by other
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the vector from other to p
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Box is an axis-aligned bounding box anchored at its minimum corner (X, Y).
//
// W and H are expected to be non-negative. This is not enforced: a negative
// size silently swaps the meaning of the Min and Max edges.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewBox creates a box from its minimum corner and size
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// BoxFromPoints returns the bounding box of points.
// An empty slice yields the zero box.
func BoxFromPoints(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(p.X, minX)
		minY = math.Min(p.Y, minY)
		maxX = math.Max(p.X, maxX)
		maxY = math.Max(p.Y, maxY)
	}

	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// BoxFromCenter creates a box of the given size centred on center
func BoxFromCenter(center, size Point) Box {
	return Box{
		X: center.X - size.X/2,
		Y: center.Y - size.Y/2,
		W: size.X,
		H: size.Y,
	}
}

// BoxFromRect converts an integer pixel rectangle to a Box
func BoxFromRect(r image.Rectangle) Box {
	return Box{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}

// Rect converts the box to an integer rectangle, rounding each edge to the
// nearest pixel.
func (b Box) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(b.MinX())),
		int(math.Round(b.MinY())),
		int(math.Round(b.MaxX())),
		int(math.Round(b.MaxY())),
	)
}

// MinX returns the left edge
func (b Box) MinX() float64 {
	return b.X
}

// MidX returns the horizontal centre
func (b Box) MidX() float64 {
	return b.X + b.W/2
}

// MaxX returns the right edge
func (b Box) MaxX() float64 {
	return b.X + b.W
}

// MinY returns the top edge
func (b Box) MinY() float64 {
	return b.Y
}

// MidY returns the vertical centre
func (b Box) MidY() float64 {
	return b.Y + b.H/2
}

// MaxY returns the bottom edge
func (b Box) MaxY() float64 {
	return b.Y + b.H
}

// Width returns W
func (b Box) Width() float64 {
	return b.W
}

// Height returns H
func (b Box) Height() float64 {
	return b.H
}

// AspectRatio returns W/H. A zero height gives ±Inf or NaN.
func (b Box) AspectRatio() float64 {
	return b.W / b.H
}

// Origin returns the minimum corner
func (b Box) Origin() Point {
	return Point{X: b.X, Y: b.Y}
}

// Size returns the dimensions as a point
func (b Box) Size() Point {
	return Point{X: b.W, Y: b.H}
}

// Center returns the center point
func (b Box) Center() Point {
	return Point{X: b.MidX(), Y: b.MidY()}
}

// Corners returns the four corners clockwise starting at (MinX, MinY).
func (b Box) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX(), Y: b.MinY()},
		{X: b.MaxX(), Y: b.MinY()},
		{X: b.MaxX(), Y: b.MaxY()},
		{X: b.MinX(), Y: b.MaxY()},
	}
}

// CornersAndCenter returns Corners followed by Center.
func (b Box) CornersAndCenter() [5]Point {
	c := b.Corners()
	return [5]Point{c[0], c[1], c[2], c[3], b.Center()}
}

// Sides returns the four edges as corner pairs, in the same order as Corners.
func (b Box) Sides() [4][2]Point {
	c := b.Corners()
	return [4][2]Point{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// Area returns the area of the box
func (b Box) Area() float64 {
	return b.W * b.H
}

// IsEmpty returns true if the box has zero area
func (b Box) IsEmpty() bool {
	return b.W <= 0 || b.H <= 0
}

// IsFinite reports whether all four fields are finite numbers.
func (b Box) IsFinite() bool {
	for _, v := range [4]float64{b.X, b.Y, b.W, b.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// WithMinX moves the box so its left edge is at x, keeping its size.
func (b Box) WithMinX(x float64) Box {
	b.X = x
	return b
}

// WithMinY moves the box so its top edge is at y, keeping its size.
func (b Box) WithMinY(y float64) Box {
	b.Y = y
	return b
}

// WithOrigin moves the minimum corner to p, keeping the size.
func (b Box) WithOrigin(p Point) Box {
	b.X, b.Y = p.X, p.Y
	return b
}

// WithCenter moves the box so it is centred on p, keeping the size.
func (b Box) WithCenter(p Point) Box {
	b.X = p.X - b.W/2
	b.Y = p.Y - b.H/2
	return b
}

// WithSize returns a box with the same origin and the given size.
func (b Box) WithSize(w, h float64) Box {
	b.W, b.H = w, h
	return b
}

// Set returns a box with all four fields replaced. It is NewBox spelled as a
// method for call sites that build boxes in a chain.
func (b Box) Set(x, y, w, h float64) Box {
	return NewBox(x, y, w, h)
}

// Expand returns the smallest box containing both b and other.
func (b Box) Expand(other Box) Box {
	return Expand(b, other)
}

// ExpandBy grows the box by n on every side. A negative n insets it.
func (b Box) ExpandBy(n float64) Box {
	return ExpandBy(b, n)
}

// Scale multiplies position and size by n. The origin moves with the scale,
// which is what a change of coordinate space needs.
func (b Box) Scale(n float64) Box {
	return Box{X: b.X * n, Y: b.Y * n, W: b.W * n, H: b.H * n}
}

// Translate moves the box by delta
func (b Box) Translate(delta Point) Box {
	b.X += delta.X
	b.Y += delta.Y
	return b
}

// SnapToGrid rounds each field independently to the nearest multiple of size.
func (b Box) SnapToGrid(size float64) Box {
	snap := func(v float64) float64 {
		return math.Round(v/size) * size
	}
	return Box{X: snap(b.X), Y: snap(b.Y), W: snap(b.W), H: snap(b.H)}
}

// Union is Expand computed from other's raw fields.
func (b Box) Union(other Box) Box {
	minX := math.Min(b.MinX(), other.X)
	minY := math.Min(b.MinY(), other.Y)
	maxX := math.Max(b.MaxX(), other.X+other.W)
	maxY := math.Max(b.MaxY(), other.Y+other.H)

	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ToFixed rounds X and Y to two decimal places and W and H to whole units.
func (b Box) ToFixed() Box {
	return Box{
		X: math.Round(b.X*100) / 100,
		Y: math.Round(b.Y*100) / 100,
		W: math.Round(b.W),
		H: math.Round(b.H),
	}
}

// Collides reports whether b and other overlap or touch
func (b Box) Collides(other Box) bool {
	return Collides(b, other)
}

// Contains reports whether other lies strictly inside b
func (b Box) Contains(other Box) bool {
	return Contains(b, other)
}

// Includes reports Collides || Contains
func (b Box) Includes(other Box) bool {
	return Includes(b, other)
}

// ContainsPoint reports whether v is inside b grown by margin
func (b Box) ContainsPoint(v Point, margin float64) bool {
	return ContainsPoint(b, v, margin)
}

// Collides reports whether a and b overlap. Edges are inclusive: boxes that
// only share a border collide.
func Collides(a, b Box) bool {
	return !(a.MaxX() < b.MinX() ||
		a.MinX() > b.MaxX() ||
		a.MaxY() < b.MinY() ||
		a.MinY() > b.MaxY())
}

// Contains reports whether b lies strictly inside a. A box touching any edge
// of a is not contained, even when it is otherwise inside.
func Contains(a, b Box) bool {
	return a.MinX() < b.MinX() &&
		a.MinY() < b.MinY() &&
		a.MaxY() > b.MaxY() &&
		a.MaxX() > b.MaxX()
}

// Includes reports whether a and b collide or a contains b.
func Includes(a, b Box) bool {
	return Collides(a, b) || Contains(a, b)
}

// ContainsPoint reports whether v lies within a grown by margin on every side.
// Points on the boundary are inside.
func ContainsPoint(a Box, v Point, margin float64) bool {
	return !(v.X < a.MinX()-margin ||
		v.Y < a.MinY()-margin ||
		v.X > a.MaxX()+margin ||
		v.Y > a.MaxY()+margin)
}

// Intersect returns the overlap of a and b. The second result is false when
// the overlap has no area (including boxes that only touch), in which case the
// returned Box is the zero value and must not be used.
func Intersect(a, b Box) (Box, bool) {
	minX := math.Max(a.MinX(), b.MinX())
	minY := math.Max(a.MinY(), b.MinY())
	maxX := math.Min(a.MaxX(), b.MaxX())
	maxY := math.Min(a.MaxY(), b.MaxY())

	if minX < maxX && minY < maxY {
		return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
	}
	return Box{}, false
}

// Expand returns the smallest box containing both a and b.
func Expand(a, b Box) Box {
	minX := math.Min(b.MinX(), a.MinX())
	minY := math.Min(b.MinY(), a.MinY())
	maxX := math.Max(b.MaxX(), a.MaxX())
	maxY := math.Max(b.MaxY(), a.MaxY())

	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ExpandBy returns a grown by n on every side.
func ExpandBy(a Box, n float64) Box {
	return Box{X: a.MinX() - n, Y: a.MinY() - n, W: a.W + n*2, H: a.H + n*2}
}

// Common returns the bounding box of boxes.
//
// The accumulators start at ±Inf, so an empty slice yields a box with an
// origin of +Inf and a size of -Inf. Callers must handle empty input.
func Common(boxes []Box) Box {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, b := range boxes {
		minX = math.Min(minX, b.MinX())
		minY = math.Min(minY, b.MinY())
		maxX = math.Max(maxX, b.MaxX())
		maxY = math.Max(maxY, b.MaxY())
	}

	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Matrix represents a 2D affine transformation matrix
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformBox maps b through m. Only scale and translation are meaningful
// here; the result is the bounding box of the transformed corners.
func (m Matrix) TransformBox(b Box) Box {
	c := b.Corners()
	pts := make([]Point, len(c))
	for i, p := range c {
		pts[i] = m.Transform(p)
	}
	return BoxFromPoints(pts)
}

// Multiply returns the transform that applies m first and then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
