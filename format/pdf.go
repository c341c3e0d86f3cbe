package format

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// pixelsPerInch maps raster pixels to PDF points for page sizing.
const (
	pixelsPerInch = 96
	pointsPerInch = 72
)

func pixelsToPoints(pixels int) float64 {
	return float64(pixels) * pointsPerInch / pixelsPerInch
}

// encodePDF writes img as the only page of a PDF sized to the image at
// 96 DPI.
func encodePDF(w io.Writer, img image.Image, opts *EncodeOptions) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("cannot place an empty %dx%d image on a page", b.Dx(), b.Dy())
	}

	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return err
	}

	wPt, hPt := pixelsToPoints(b.Dx()), pixelsToPoints(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.SetCompression(opts.Compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("capture", opt, &raw)
	pdf.AddPage()
	pdf.ImageOptions("capture", 0, 0, wPt, hPt, false, opt, 0, "")

	return pdf.Output(w)
}
