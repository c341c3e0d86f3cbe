package format

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupported is returned when data or a requested output format is not
// one of the supported raster formats.
var ErrUnsupported = errors.New("format: unsupported image format")

// DefaultJPEGQuality is used when EncodeOptions leaves Quality at zero.
const DefaultJPEGQuality = 92

// EncodeOptions controls lossy and compressed encoders. The zero value is
// valid.
type EncodeOptions struct {
	// Quality is the JPEG quality, 1-100.
	Quality int
	// Compress enables deflate compression for TIFF and PDF output.
	Compress bool
	// Title is stored in the document metadata of PDF output.
	Title string
}

// Decode reads one image, choosing the decoder from the leading magic bytes.
func Decode(r io.Reader) (image.Image, Format, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(16)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, Unknown, fmt.Errorf("format: failed to read header: %w", err)
	}

	f := DetectFromMagic(magic)
	var img image.Image
	switch f {
	case PNG:
		img, err = png.Decode(br)
	case JPEG:
		img, err = jpeg.Decode(br)
	case GIF:
		img, err = gif.Decode(br)
	case BMP:
		img, err = bmp.Decode(br)
	case TIFF:
		img, err = tiff.Decode(br)
	default:
		return nil, Unknown, ErrUnsupported
	}
	if err != nil {
		return nil, f, fmt.Errorf("format: failed to decode %s: %w", f, err)
	}
	return img, f, nil
}

// DecodeFile opens and decodes the image stored at path.
func DecodeFile(path string) (image.Image, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Unknown, fmt.Errorf("format: failed to open %s: %w", path, err)
	}
	defer file.Close()

	img, f, err := Decode(file)
	if err != nil {
		return nil, f, fmt.Errorf("%s: %w", path, err)
	}
	return img, f, nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format, opts *EncodeOptions) error {
	if opts == nil {
		opts = &EncodeOptions{}
	}

	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		quality := opts.Quality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case GIF:
		err = gif.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		compression := tiff.Uncompressed
		if opts.Compress {
			compression = tiff.Deflate
		}
		err = tiff.Encode(w, img, &tiff.Options{Compression: compression})
	case PDF:
		err = encodePDF(w, img, opts)
	default:
		return ErrUnsupported
	}
	if err != nil {
		return fmt.Errorf("format: failed to encode %s: %w", f, err)
	}
	return nil
}
