package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsawler/pagecap/bridge"
	"github.com/tsawler/pagecap/capture"
	"github.com/tsawler/pagecap/internal/config"
	"github.com/tsawler/pagecap/pages"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge PAGE...",
	Short: "Serve JSON action requests over stdin and stdout",
	Long: `Read one JSON request per line from stdin, in the form
{"action": "...", "payload": {...}, "id": ...}, and write one JSON response
per line to stdout. Supported actions: capture, pageLayout, collides,
intersect, common, viewerState.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBridge,
}

func init() {
	addLayoutFlags(bridgeCmd)
	rootCmd.AddCommand(bridgeCmd)
}

func runBridge(cmd *cobra.Command, args []string) error {
	bindLayoutFlags(cmd)
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	doc, err := pages.Open(args,
		pages.WithScale(cfg.Layout.Scale),
		pages.WithBorder(cfg.Layout.Border),
		pages.WithGap(cfg.Layout.Gap))
	if err != nil {
		return fmt.Errorf("failed to open pages: %w", err)
	}

	opts := []capture.Option{
		capture.WithLogger(logger),
		capture.WithMaxPixels(cfg.Capture.MaxPixels),
	}
	if cfg.Capture.ScanAll {
		opts = append(opts, capture.WithScanAll())
	}
	interp, err := config.Interpolator(cfg.Capture.Interpolator)
	if err != nil {
		return err
	}
	opts = append(opts, capture.WithInterpolator(interp))

	d := bridge.NewDispatcher(bridge.Handlers(capture.New(opts...), doc), logger)
	logger.Info("bridge ready", "pages", doc.PageCount(), "actions", d.Actions())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	w := cmd.OutOrStdout()
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp, err := d.DispatchJSON(cmd.Context(), line)
		if err != nil {
			logger.Warn("rejected request", "error", err)
			resp, _ = json.Marshal(bridge.Response{Error: err.Error()})
		}
		if _, err := fmt.Fprintf(w, "%s\n", resp); err != nil {
			return err
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}
	}
	return scanner.Err()
}
