// Package format provides raster image format detection, decoding and
// encoding for page sources and capture output.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a Portable Network Graphics image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// GIF indicates a GIF image (first frame only).
	GIF
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a TIFF image.
	TIFF
	// PDF indicates a single-page PDF wrapping the image. It is an output
	// format only; Decode does not read PDFs.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// MIMEType returns the media type used when the encoded image is sent
// somewhere other than a file.
func (f Format) MIMEType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	case PDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Parse maps a user supplied name ("png", "jpg", "tiff", ...) to a Format.
// It accepts the same spellings as file extensions, with or without the dot.
func Parse(name string) Format {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" && !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	return Detect("x" + name)
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

var (
	magicPNG      = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG     = []byte{0xFF, 0xD8, 0xFF}
	magicGIF87    = []byte("GIF87a")
	magicGIF89    = []byte("GIF89a")
	magicBMP      = []byte("BM")
	magicTIFFLE   = []byte("II*\x00")
	magicTIFFBE   = []byte("MM\x00*")
	magicMinBytes = 2
)

// DetectFromMagic checks leading magic bytes to determine the format.
// This is more reliable than extension-based detection. Only decodable
// formats are recognized, so PDF data reports Unknown.
func DetectFromMagic(data []byte) Format {
	if len(data) < magicMinBytes {
		return Unknown
	}

	switch {
	case bytes.HasPrefix(data, magicPNG):
		return PNG
	case bytes.HasPrefix(data, magicJPEG):
		return JPEG
	case bytes.HasPrefix(data, magicGIF87), bytes.HasPrefix(data, magicGIF89):
		return GIF
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return TIFF
	case bytes.HasPrefix(data, magicBMP):
		return BMP
	}

	return Unknown
}

// DetectFromReader reads the first bytes of r to determine the format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 16)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
