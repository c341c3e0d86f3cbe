package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tsawler/pagecap/format"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "capture.ratio")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateCapture()...)
	errors = append(errors, c.validateLayout()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateCapture() []ValidationError {
	var errors []ValidationError

	if c.Capture.Ratio <= 0 {
		errors = append(errors, ValidationError{
			Field:   "capture.ratio",
			Value:   c.Capture.Ratio,
			Message: "must be positive",
		})
	}

	if _, err := ParseColor(c.Capture.Background); err != nil {
		errors = append(errors, ValidationError{
			Field:   "capture.background",
			Value:   c.Capture.Background,
			Message: "must be a colour name or #rgb, #rrggbb, #rrggbbaa",
		})
	}

	if c.Capture.MaxPixels < 0 {
		errors = append(errors, ValidationError{
			Field:   "capture.max_pixels",
			Value:   c.Capture.MaxPixels,
			Message: "must not be negative",
		})
	}

	if c.Capture.Interpolator != "" && !slices.Contains(ValidInterpolators(), c.Capture.Interpolator) {
		errors = append(errors, ValidationError{
			Field:   "capture.interpolator",
			Value:   c.Capture.Interpolator,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidInterpolators(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateLayout() []ValidationError {
	var errors []ValidationError

	if c.Layout.Scale <= 0 {
		errors = append(errors, ValidationError{
			Field:   "layout.scale",
			Value:   c.Layout.Scale,
			Message: "must be positive",
		})
	}
	if c.Layout.Gap < 0 {
		errors = append(errors, ValidationError{
			Field:   "layout.gap",
			Value:   c.Layout.Gap,
			Message: "must be non-negative",
		})
	}
	if c.Layout.Border < 0 {
		errors = append(errors, ValidationError{
			Field:   "layout.border",
			Value:   c.Layout.Border,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if format.Parse(c.Output.Format) == format.Unknown {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: "must be one of: png, jpeg, gif, bmp, tiff, pdf",
		})
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		errors = append(errors, ValidationError{
			Field:   "output.quality",
			Value:   c.Output.Quality,
			Message: "must be between 1 and 100",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.Format != "" && !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}

	return errors
}
