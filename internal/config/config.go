// Package config loads pagecap settings from defaults, a YAML file, the
// environment and command line flags through viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tsawler/pagecap/capture"
)

// Config represents the complete pagecap configuration
type Config struct {
	Capture CaptureConfig `mapstructure:"capture"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CaptureConfig controls compositing
type CaptureConfig struct {
	// Ratio is the output pixels per selection unit
	Ratio float64 `mapstructure:"ratio"`
	// Background is a colour name ("white") or hex value ("#ffffff")
	Background string `mapstructure:"background"`
	// ScanAll disables the early exit after the last colliding page
	ScanAll bool `mapstructure:"scan_all"`
	// Interpolator resamples pages whose density differs from the output.
	// Options: "nearest", "approx-bilinear", "bilinear", "catmull-rom"
	Interpolator string `mapstructure:"interpolator"`
	// MaxPixels caps the pixel count of one composite. Zero uses the
	// engine default.
	MaxPixels int64 `mapstructure:"max_pixels"`
}

// LayoutConfig controls how page files are laid out
type LayoutConfig struct {
	// Scale is the display scale applied to every page
	Scale float64 `mapstructure:"scale"`
	// Gap separates neighbouring pages, in layout units
	Gap float64 `mapstructure:"gap"`
	// Border is the frame around each page, in layout units
	Border float64 `mapstructure:"border"`
}

// OutputConfig controls encoding of the composite
type OutputConfig struct {
	// Format is the default encoding when the output file has no extension.
	// Options: "png", "jpeg", "gif", "bmp", "tiff", "pdf"
	Format string `mapstructure:"format"`
	// Quality is the JPEG quality, 1-100
	Quality int `mapstructure:"quality"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
	// File, when set, receives JSON logs instead of stderr
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Capture: CaptureConfig{
			Ratio:        1,
			Background:   "white",
			ScanAll:      false,
			Interpolator: "approx-bilinear",
			MaxPixels:    capture.DefaultMaxPixels,
		},
		Layout: LayoutConfig{
			Scale:  1,
			Gap:    2,
			Border: 9,
		},
		Output: OutputConfig{
			Format:  "png",
			Quality: 92,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Capture defaults
	viper.SetDefault("capture.ratio", defaults.Capture.Ratio)
	viper.SetDefault("capture.background", defaults.Capture.Background)
	viper.SetDefault("capture.scan_all", defaults.Capture.ScanAll)
	viper.SetDefault("capture.interpolator", defaults.Capture.Interpolator)
	viper.SetDefault("capture.max_pixels", defaults.Capture.MaxPixels)

	// Layout defaults
	viper.SetDefault("layout.scale", defaults.Layout.Scale)
	viper.SetDefault("layout.gap", defaults.Layout.Gap)
	viper.SetDefault("layout.border", defaults.Layout.Border)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.quality", defaults.Output.Quality)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load for an explicit viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pagecap")
	}
	// Fall back to ~/.config/pagecap
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagecap"
	}
	return filepath.Join(home, ".config", "pagecap")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
