// Package pagecap provides a fluent API for capturing a rectangular region
// that spans several page images into a single image.
//
// Basic usage:
//
//	png, err := pagecap.Open("p1.png", "p2.png").
//	    Select(40, 900, 300, 200).
//	    PNG(ctx)
//
// With options:
//
//	out, err := pagecap.Open(files...).
//	    Scale(1.5).
//	    Ratio(2).
//	    Background(color.Black).
//	    Select(0, 0, 600, 400).
//	    Composite(ctx)
//
// For a custom page provider use FromProvider; the lower-level capture and
// pages packages are also available.
package pagecap

import (
	"github.com/tsawler/pagecap/capture"
)

// Open returns a Capturer over the given page images, laid out top to bottom
// in the order given. Files are decoded when a terminal operation runs.
//
// Example:
//
//	data, err := pagecap.Open("page1.png", "page2.png").Select(0, 0, 100, 100).PNG(ctx)
func Open(paths ...string) *Capturer {
	return &Capturer{
		paths:   append([]string(nil), paths...),
		options: defaultOptions(),
	}
}

// FromProvider creates a Capturer over an existing page provider.
// Layout options (Scale, Gap) are ignored; Border overrides the provider's.
//
// Example:
//
//	doc := pages.New(sources)
//	out, err := pagecap.FromProvider(doc).Select(0, 0, 50, 50).Composite(ctx)
func FromProvider(p capture.Provider) *Capturer {
	return &Capturer{
		provider: p,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := pagecap.Must(pagecap.Open("page.png").Select(0, 0, 10, 10).PNG(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
