package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tsawler/pagecap"
	"github.com/tsawler/pagecap/capture"
	"github.com/tsawler/pagecap/format"
	"github.com/tsawler/pagecap/internal/config"
)

var captureCmd = &cobra.Command{
	Use:   "capture PAGE...",
	Short: "Composite the pixels under a selection into one image",
	Long: `Lay the given page images out top to bottom and write the region
under --select as a single image. Coordinates are in layout units: the
first page's border starts at the gap, and each page is scaled by the
layout scale.

Examples:
  pagecap capture --select 40,900,300,200 -o crop.png p1.png p2.png
  pagecap capture --select 0,0,600,400 --ratio 2 --background black p1.png > out.png
  pagecap capture --select 10,10,200,50 --ocr scan.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCapture,
}

var (
	captureSelect string // x,y,w,h
	captureOut    string // output path, "-" for stdout
	captureOCR    bool   // print recognized text instead of the image
)

func init() {
	f := captureCmd.Flags()
	f.StringVarP(&captureSelect, "select", "s", "", "selection as x,y,w,h (required)")
	f.StringVarP(&captureOut, "out", "o", "-", "output file, - for stdout")
	f.BoolVar(&captureOCR, "ocr", false, "print recognized text (requires the ocr build tag)")

	f.Float64("ratio", 1, "output pixels per selection unit")
	f.String("background", "white", "colour for uncovered pixels")
	f.Bool("scan-all", false, "visit every page instead of stopping after the selection")
	f.String("interpolator", "approx-bilinear", "resampling kernel: nearest, approx-bilinear, bilinear, catmull-rom")
	f.Int64("max-pixels", capture.DefaultMaxPixels, "largest composite allowed, in pixels")
	f.String("format", "png", "output format when --out has no known extension")
	f.Int("quality", 92, "JPEG quality")
	addLayoutFlags(captureCmd)

	_ = viper.BindPFlag("capture.ratio", f.Lookup("ratio"))
	_ = viper.BindPFlag("capture.background", f.Lookup("background"))
	_ = viper.BindPFlag("capture.scan_all", f.Lookup("scan-all"))
	_ = viper.BindPFlag("capture.interpolator", f.Lookup("interpolator"))
	_ = viper.BindPFlag("capture.max_pixels", f.Lookup("max-pixels"))
	_ = viper.BindPFlag("output.format", f.Lookup("format"))
	_ = viper.BindPFlag("output.quality", f.Lookup("quality"))
	_ = captureCmd.MarkFlagRequired("select")

	rootCmd.AddCommand(captureCmd)
}

// addLayoutFlags registers the page layout flags shared by commands that
// open page files.
func addLayoutFlags(c *cobra.Command) {
	f := c.Flags()
	f.Float64("scale", 1, "display scale applied to every page")
	f.Float64("gap", 2, "space between pages")
	f.Float64("border", 9, "border around each page")
}

// bindLayoutFlags points the layout keys at c's flags. Several commands
// share the keys, so binding happens when a command runs.
func bindLayoutFlags(c *cobra.Command) {
	f := c.Flags()
	_ = viper.BindPFlag("layout.scale", f.Lookup("scale"))
	_ = viper.BindPFlag("layout.gap", f.Lookup("gap"))
	_ = viper.BindPFlag("layout.border", f.Lookup("border"))
}

// capturer builds a Capturer over paths from the loaded configuration.
func capturer(cfg *config.Config, paths []string) (*pagecap.Capturer, error) {
	bg, err := config.ParseColor(cfg.Capture.Background)
	if err != nil {
		return nil, err
	}
	interp, err := config.Interpolator(cfg.Capture.Interpolator)
	if err != nil {
		return nil, err
	}

	c := pagecap.Open(paths...).
		Scale(cfg.Layout.Scale).
		Border(cfg.Layout.Border).
		Gap(cfg.Layout.Gap).
		Ratio(cfg.Capture.Ratio).
		Background(bg).
		Interpolator(interp).
		MaxPixels(cfg.Capture.MaxPixels)
	if cfg.Capture.ScanAll {
		c = c.ScanAll()
	}
	return c, nil
}

func runCapture(cmd *cobra.Command, args []string) error {
	bindLayoutFlags(cmd)
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	sel, err := parseBox(captureSelect)
	if err != nil {
		return err
	}

	c, err := capturer(cfg, args)
	if err != nil {
		return err
	}
	c = c.Selection(sel).Logger(logger)

	if captureOCR {
		text, err := c.Text(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to recognize text: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	out, err := c.Composite(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to capture: %w", err)
	}

	if !out.HasPixels() {
		logger.Warn("selection has no area, writing no image", "selection", sel)
	}

	f := format.Detect(captureOut)
	if f == format.Unknown {
		f = format.Parse(cfg.Output.Format)
	}
	opts := &format.EncodeOptions{Quality: cfg.Output.Quality}

	var w io.Writer = cmd.OutOrStdout()
	if captureOut != "-" {
		file, err := os.Create(captureOut)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := out.Encode(w, f, opts); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}

	b := out.Image.Bounds()
	logger.Info("capture written",
		"out", captureOut,
		"format", f.String(),
		"width", b.Dx(),
		"height", b.Dy(),
		"pages", out.Pages)
	if captureOut != "-" {
		printer().Fprintf(cmd.ErrOrStderr(), "wrote %d x %d %s from %d page(s) to %s\n",
			b.Dx(), b.Dy(), f, len(out.Pages), captureOut)
	}
	return nil
}
