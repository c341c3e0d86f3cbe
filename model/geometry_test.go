package model

import (
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPointAddSub(t *testing.T) {
	p := Point{3, 4}
	if got := p.Add(Point{1, -1}); got != (Point{4, 3}) {
		t.Errorf("Add() = %+v, want {4 3}", got)
	}
	if got := p.Sub(Point{1, -1}); got != (Point{2, 5}) {
		t.Errorf("Sub() = %+v, want {2 5}", got)
	}
}

// ============================================================================
// Box Construction
// ============================================================================

func TestNewBox(t *testing.T) {
	b := NewBox(10, 20, 100, 50)
	if b.X != 10 || b.Y != 20 || b.W != 100 || b.H != 50 {
		t.Errorf("NewBox() = %+v, want {10, 20, 100, 50}", b)
	}
	if (Box{}) != NewBox(0, 0, 0, 0) {
		t.Error("zero Box should equal NewBox(0, 0, 0, 0)")
	}
}

func TestBoxFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Box
	}{
		{"empty", nil, Box{}},
		{"single", []Point{{5, 7}}, Box{5, 7, 0, 0}},
		{"two", []Point{{10, 20}, {50, 70}}, Box{10, 20, 40, 50}},
		{"reversed", []Point{{50, 70}, {10, 20}}, Box{10, 20, 40, 50}},
		{"scattered", []Point{{0, 5}, {-3, 2}, {4, -1}}, Box{-3, -1, 7, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxFromPoints(tt.points)
			if got != tt.want {
				t.Errorf("BoxFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoxFromCenter(t *testing.T) {
	got := BoxFromCenter(Point{50, 50}, Point{20, 10})
	want := Box{40, 45, 20, 10}
	if got != want {
		t.Errorf("BoxFromCenter() = %+v, want %+v", got, want)
	}
	if got.Center() != (Point{50, 50}) {
		t.Errorf("Center() = %+v, want {50 50}", got.Center())
	}
}

func TestBoxRectRoundTrip(t *testing.T) {
	r := image.Rect(3, 4, 13, 24)
	b := BoxFromRect(r)
	if b != (Box{3, 4, 10, 20}) {
		t.Errorf("BoxFromRect() = %+v", b)
	}
	if b.Rect() != r {
		t.Errorf("Rect() = %v, want %v", b.Rect(), r)
	}
	if got := NewBox(0.4, 0.6, 9.2, 9.3).Rect(); got != image.Rect(0, 1, 10, 10) {
		t.Errorf("Rect() rounding = %v", got)
	}
}

// ============================================================================
// Derived Properties
// ============================================================================

func TestBoxDerived(t *testing.T) {
	b := NewBox(10, 20, 100, 50)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"MinX", b.MinX(), 10},
		{"MidX", b.MidX(), 60},
		{"MaxX", b.MaxX(), 110},
		{"MinY", b.MinY(), 20},
		{"MidY", b.MidY(), 45},
		{"MaxY", b.MaxY(), 70},
		{"Width", b.Width(), 100},
		{"Height", b.Height(), 50},
		{"AspectRatio", b.AspectRatio(), 2},
		{"Area", b.Area(), 5000},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s() = %v, want %v", c.name, c.got, c.want)
		}
	}
	if b.Origin() != (Point{10, 20}) || b.Size() != (Point{100, 50}) {
		t.Errorf("Origin()/Size() = %+v/%+v", b.Origin(), b.Size())
	}
}

func TestBoxCornersAndSides(t *testing.T) {
	b := NewBox(0, 0, 4, 2)

	wantCorners := [4]Point{{0, 0}, {4, 0}, {4, 2}, {0, 2}}
	if diff := cmp.Diff(wantCorners, b.Corners()); diff != "" {
		t.Errorf("Corners() mismatch (-want +got):\n%s", diff)
	}

	wantSides := [4][2]Point{
		{{0, 0}, {4, 0}},
		{{4, 0}, {4, 2}},
		{{4, 2}, {0, 2}},
		{{0, 2}, {0, 0}},
	}
	if diff := cmp.Diff(wantSides, b.Sides()); diff != "" {
		t.Errorf("Sides() mismatch (-want +got):\n%s", diff)
	}

	cc := b.CornersAndCenter()
	if cc[4] != (Point{2, 1}) {
		t.Errorf("CornersAndCenter()[4] = %+v, want {2 1}", cc[4])
	}
}

func TestBoxTranslatingSetters(t *testing.T) {
	b := NewBox(10, 20, 30, 40)

	if got := b.WithMinX(0); got != (Box{0, 20, 30, 40}) {
		t.Errorf("WithMinX() = %+v", got)
	}
	if got := b.WithMinY(5); got != (Box{10, 5, 30, 40}) {
		t.Errorf("WithMinY() = %+v", got)
	}
	if got := b.WithCenter(Point{0, 0}); got != (Box{-15, -20, 30, 40}) {
		t.Errorf("WithCenter() = %+v", got)
	}
	if got := b.WithOrigin(Point{1, 2}); got != (Box{1, 2, 30, 40}) {
		t.Errorf("WithOrigin() = %+v", got)
	}
	if got := b.WithSize(1, 2); got != (Box{10, 20, 1, 2}) {
		t.Errorf("WithSize() = %+v", got)
	}
	if b != (Box{10, 20, 30, 40}) {
		t.Errorf("receiver modified: %+v", b)
	}
}

func TestBoxIsEmpty(t *testing.T) {
	tests := []struct {
		b    Box
		want bool
	}{
		{NewBox(0, 0, 10, 10), false},
		{NewBox(0, 0, 0, 10), true},
		{NewBox(0, 0, 10, 0), true},
		{NewBox(0, 0, -1, 10), true},
	}
	for _, tt := range tests {
		if got := tt.b.IsEmpty(); got != tt.want {
			t.Errorf("IsEmpty(%+v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestBoxIsFinite(t *testing.T) {
	if !NewBox(1, 2, 3, 4).IsFinite() {
		t.Error("finite box reported non-finite")
	}
	if NewBox(math.NaN(), 0, 1, 1).IsFinite() {
		t.Error("NaN box reported finite")
	}
	if NewBox(0, 0, math.Inf(1), 1).IsFinite() {
		t.Error("Inf box reported finite")
	}
}

// ============================================================================
// Box Operations
// ============================================================================

func TestBoxExpand(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(5, -5, 10, 10)
	want := Box{0, -5, 15, 15}

	if got := a.Expand(b); got != want {
		t.Errorf("Expand() = %+v, want %+v", got, want)
	}
	if got := Expand(a, b); got != want {
		t.Errorf("Expand(a, b) = %+v, want %+v", got, want)
	}
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestBoxExpandBy(t *testing.T) {
	b := NewBox(10, 10, 20, 20)
	if got := b.ExpandBy(5); got != (Box{5, 5, 30, 30}) {
		t.Errorf("ExpandBy(5) = %+v", got)
	}
	if got := ExpandBy(b, -2); got != (Box{12, 12, 16, 16}) {
		t.Errorf("ExpandBy(-2) = %+v", got)
	}
}

func TestBoxScale(t *testing.T) {
	got := NewBox(1, 2, 3, 4).Scale(2)
	if got != (Box{2, 4, 6, 8}) {
		t.Errorf("Scale(2) = %+v, want origin and size doubled", got)
	}
}

func TestBoxTranslate(t *testing.T) {
	got := NewBox(1, 2, 3, 4).Translate(Point{10, -2})
	if got != (Box{11, 0, 3, 4}) {
		t.Errorf("Translate() = %+v", got)
	}
}

func TestBoxSnapToGrid(t *testing.T) {
	got := NewBox(7, 12, 18, 26).SnapToGrid(5)
	if got != (Box{5, 10, 20, 25}) {
		t.Errorf("SnapToGrid(5) = %+v", got)
	}
}

func TestBoxToFixed(t *testing.T) {
	got := NewBox(1.23456, 9.8765, 10.4, 10.6).ToFixed()
	want := Box{1.23, 9.88, 10, 11}
	if got != want {
		t.Errorf("ToFixed() = %+v, want %+v", got, want)
	}
}

func TestBoxSet(t *testing.T) {
	if got := NewBox(9, 9, 9, 9).Set(1, 2, 0, 0); got != (Box{1, 2, 0, 0}) {
		t.Errorf("Set() = %+v", got)
	}
}

// ============================================================================
// Predicates
// ============================================================================

func TestCollides(t *testing.T) {
	box := NewBox(0, 0, 10, 10)

	tests := []struct {
		name     string
		other    Box
		expected bool
	}{
		{"overlapping", NewBox(5, 5, 10, 10), true},
		{"touching edge", NewBox(10, 0, 10, 10), true},
		{"touching corner", NewBox(10, 10, 5, 5), true},
		{"inside", NewBox(2, 2, 5, 5), true},
		{"containing", NewBox(-10, -10, 30, 30), true},
		{"just right", NewBox(10.01, 0, 10, 10), false},
		{"left", NewBox(-20, 0, 10, 10), false},
		{"below", NewBox(0, 15, 10, 10), false},
		{"above", NewBox(0, -15, 10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(box, tt.other); got != tt.expected {
				t.Errorf("Collides(%+v) = %v, want %v", tt.other, got, tt.expected)
			}
			if got := Collides(tt.other, box); got != tt.expected {
				t.Errorf("Collides is not symmetric for %+v", tt.other)
			}
			if got := box.Collides(tt.other); got != tt.expected {
				t.Errorf("method Collides(%+v) = %v, want %v", tt.other, got, tt.expected)
			}
		})
	}
}

func TestContains(t *testing.T) {
	box := NewBox(0, 0, 10, 10)

	tests := []struct {
		name     string
		other    Box
		expected bool
	}{
		{"strictly inside", NewBox(2, 2, 5, 5), true},
		{"touching min edge", NewBox(0, 0, 5, 5), false},
		{"touching max edge", NewBox(5, 5, 5, 5), false},
		{"equal", NewBox(0, 0, 10, 10), false},
		{"overlapping", NewBox(5, 5, 10, 10), false},
		{"outside", NewBox(20, 20, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.other); got != tt.expected {
				t.Errorf("Contains(%+v) = %v, want %v", tt.other, got, tt.expected)
			}
		})
	}
}

func TestIncludes(t *testing.T) {
	boxes := []Box{
		NewBox(0, 0, 10, 10),
		NewBox(2, 2, 5, 5),
		NewBox(10, 0, 10, 10),
		NewBox(30, 30, 1, 1),
		NewBox(-5, -5, 40, 40),
	}
	for _, a := range boxes {
		for _, b := range boxes {
			want := Collides(a, b) || Contains(a, b)
			if got := Includes(a, b); got != want {
				t.Errorf("Includes(%+v, %+v) = %v, want %v", a, b, got, want)
			}
			if got := a.Includes(b); got != want {
				t.Errorf("method Includes(%+v, %+v) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestContainsPoint(t *testing.T) {
	box := NewBox(0, 0, 10, 10)

	tests := []struct {
		name   string
		p      Point
		margin float64
		want   bool
	}{
		{"inside", Point{5, 5}, 0, true},
		{"on edge", Point{10, 5}, 0, true},
		{"on corner", Point{0, 0}, 0, true},
		{"outside", Point{11, 5}, 0, false},
		{"outside within margin", Point{11, 5}, 2, true},
		{"outside beyond margin", Point{13, 5}, 2, false},
		{"above within margin", Point{5, -1}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsPoint(tt.p, tt.margin); got != tt.want {
				t.Errorf("ContainsPoint(%+v, %v) = %v, want %v", tt.p, tt.margin, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Intersect and Common
// ============================================================================

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Box
		want   Box
		wantOK bool
	}{
		{"overlap", NewBox(0, 0, 10, 10), NewBox(5, 5, 10, 10), Box{5, 5, 5, 5}, true},
		{"inside", NewBox(0, 0, 10, 10), NewBox(2, 3, 4, 5), Box{2, 3, 4, 5}, true},
		{"touching edge", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), Box{}, false},
		{"disjoint", NewBox(0, 0, 10, 10), NewBox(20, 20, 5, 5), Box{}, false},
		{"zero width", NewBox(0, 0, 10, 10), NewBox(5, 5, 0, 2), Box{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intersect(tt.a, tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersect() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
			if ok && !(Includes(tt.a, got) && Includes(tt.b, got)) {
				t.Errorf("intersection %+v not included by both inputs", got)
			}
		})
	}
}

func TestCommon(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(20, -5, 5, 5)

	if got := Common([]Box{a}); got != a {
		t.Errorf("Common([a]) = %+v, want %+v", got, a)
	}
	if got := Common([]Box{a, b}); got != Expand(a, b) {
		t.Errorf("Common([a, b]) = %+v, want %+v", got, Expand(a, b))
	}

	empty := Common(nil)
	if !math.IsInf(empty.X, 1) || !math.IsInf(empty.Y, 1) ||
		!math.IsInf(empty.W, -1) || !math.IsInf(empty.H, -1) {
		t.Errorf("Common(nil) = %+v, want +Inf origin and -Inf size", empty)
	}
}

// ============================================================================
// Matrix Tests
// ============================================================================

func TestIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Errorf("Identity() = %v, not an identity matrix", m)
	}
}

func TestMatrixTransform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Point
		want Point
	}{
		{"identity", Identity(), Point{3, 4}, Point{3, 4}},
		{"translate", Translate(10, 20), Point{1, 1}, Point{11, 21}},
		{"scale", Scale(2, 3), Point{1, 1}, Point{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Transform(tt.p)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Transform() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatrixMultiply(t *testing.T) {
	// translate first, then scale
	m := Translate(-10, -20).Multiply(Scale(2, 2))
	got := m.Transform(Point{15, 25})
	if got != (Point{10, 10}) {
		t.Errorf("Transform() = %+v, want {10 10}", got)
	}

	if !Identity().Multiply(Identity()).IsIdentity() {
		t.Error("Identity * Identity should be identity")
	}
}

func TestMatrixTransformBox(t *testing.T) {
	m := Translate(-100, -50).Multiply(Scale(2, 2))
	got := m.TransformBox(NewBox(110, 60, 5, 10))
	want := Box{20, 20, 10, 20}
	if got != want {
		t.Errorf("TransformBox() = %+v, want %+v", got, want)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if Translate(1, 0).IsIdentity() {
		t.Error("translation reported as identity")
	}
	if Scale(1, 1).IsIdentity() != true {
		t.Error("unit scale should be identity")
	}
}
