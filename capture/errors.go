package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned when the selection box is not finite,
	// has a negative size, the device pixel ratio is not a positive
	// finite number, or the output would exceed the engine's pixel limit.
	ErrInvalidGeometry = errors.New("capture: invalid selection geometry")

	// ErrPageOutOfRange is returned by providers asked for a page index
	// outside 0..PageCount()-1.
	ErrPageOutOfRange = errors.New("capture: page index out of range")
)

// RenderError reports that a page could not be materialized on demand.
// A capture that hits a RenderError produces no output.
type RenderError struct {
	Page  int
	Scale float64
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("capture: render page %d at scale %g: %v", e.Page, e.Scale, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// CaptureError wraps every failure returned by Engine.Capture. Page is -1
// when the failure is not tied to a page.
type CaptureError struct {
	Op   string
	Page int
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("capture: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("capture: %s page %d: %v", e.Op, e.Page, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
