package pagecap

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/pagecap/capture"
	"github.com/tsawler/pagecap/format"
	"github.com/tsawler/pagecap/model"
	"github.com/tsawler/pagecap/pages"
)

func writePage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	var buf bytes.Buffer
	if err := format.Encode(&buf, img, format.Detect(name), nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

var (
	red   = color.RGBA{0xFF, 0, 0, 0xFF}
	green = color.RGBA{0, 0xFF, 0, 0xFF}
)

func TestOpen(t *testing.T) {
	// Test with non-existent file
	_, err := Open("nonexistent.png").Select(0, 0, 10, 10).PNG(context.Background())
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestNoPages(t *testing.T) {
	_, err := Open().Select(0, 0, 10, 10).Composite(context.Background())
	if err == nil {
		t.Error("expected error when no pages are given")
	}
}

func TestNoSelection(t *testing.T) {
	dir := t.TempDir()
	p := writePage(t, dir, "a.png", 10, 10, red)
	if _, err := Open(p).Composite(context.Background()); err == nil {
		t.Error("expected error without a selection")
	}
}

func TestCaptureAcrossPages(t *testing.T) {
	dir := t.TempDir()
	a := writePage(t, dir, "a.png", 100, 100, red)
	b := writePage(t, dir, "b.png", 100, 100, green)

	out, err := Open(a, b).Border(0).Gap(0).Select(10, 90, 20, 20).Ratio(2).Composite(context.Background())
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	if got := out.Image.Bounds(); got != image.Rect(0, 0, 40, 40) {
		t.Fatalf("bounds = %v, want 40x40", got)
	}
	if got := out.Image.RGBAAt(10, 5); got != red {
		t.Errorf("top pixel = %v, want red", got)
	}
	if got := out.Image.RGBAAt(10, 35); got != green {
		t.Errorf("bottom pixel = %v, want green", got)
	}
}

func TestZeroWidthSelectionEncodesNothing(t *testing.T) {
	dir := t.TempDir()
	a := writePage(t, dir, "a.png", 20, 20, red)
	c := Open(a).Border(0).Gap(0).Select(5, 5, 0, 10)

	data, err := c.PNG(context.Background())
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("PNG() returned %d bytes, want none", len(data))
	}

	var buf bytes.Buffer
	if err := c.Encode(context.Background(), &buf, format.PDF); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode() wrote %d bytes, want none", buf.Len())
	}
}

func TestMaxPixels(t *testing.T) {
	dir := t.TempDir()
	a := writePage(t, dir, "a.png", 20, 20, red)

	_, err := Open(a).Border(0).Gap(0).Select(0, 0, 20, 20).MaxPixels(100).Composite(context.Background())
	if !errors.Is(err, capture.ErrInvalidGeometry) {
		t.Errorf("Composite() error = %v, want ErrInvalidGeometry", err)
	}
	if _, err := Open(a).Border(0).Gap(0).Select(0, 0, 10, 10).MaxPixels(100).Composite(context.Background()); err != nil {
		t.Errorf("Composite() within limit error = %v", err)
	}
}

func TestLayout(t *testing.T) {
	dir := t.TempDir()
	a := writePage(t, dir, "a.png", 100, 50, red)
	b := writePage(t, dir, "b.bmp", 100, 50, green)

	boxes, err := Open(a, b).Scale(2).Border(1).Gap(0).Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	want := []model.Box{
		{X: 0, Y: 0, W: 202, H: 102},
		{X: 0, Y: 102, W: 202, H: 102},
	}
	if len(boxes) != 2 || boxes[0] != want[0] || boxes[1] != want[1] {
		t.Errorf("Layout() = %+v, want %+v", boxes, want)
	}
}

func TestFromProvider(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	doc := pages.New([]pages.Source{pages.NewImageSource(src, 1)}, pages.WithBorder(0), pages.WithGap(0))

	data, err := FromProvider(doc).Select(0, 0, 25, 25).Background(color.Black).PNG(context.Background())
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}

	img, f, err := format.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f != format.PNG || img.Bounds() != image.Rect(0, 0, 25, 25) {
		t.Errorf("decoded %v %v", f, img.Bounds())
	}
}

func TestChainingIsImmutable(t *testing.T) {
	base := Open("a.png")
	selected := base.Select(1, 2, 3, 4)
	doubled := selected.Ratio(2)

	if base.options.selected {
		t.Error("Select modified the receiver")
	}
	if selected.options.ratio != 1 {
		t.Errorf("Ratio modified the receiver: %v", selected.options.ratio)
	}
	if doubled.options.selection != model.NewBox(1, 2, 3, 4) || doubled.options.ratio != 2 {
		t.Errorf("options = %+v", doubled.options)
	}
	if !base.ScanAll().options.scanAll || base.options.scanAll {
		t.Error("ScanAll not applied to the copy only")
	}
}

func TestMust(t *testing.T) {
	if got := Must(3, nil); got != 3 {
		t.Errorf("Must() = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(Open().Layout())
}
