package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsawler/pagecap/model"
	"github.com/tsawler/pagecap/pages"
)

var layoutCmd = &cobra.Command{
	Use:   "layout PAGE...",
	Short: "Show where each page lands in the document",
	Long: `Print the layout box of every page, the document bounds and a
summary of the layout. Use these coordinates to build --select values
for the capture command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLayout,
}

var (
	layoutJSON bool // Output as JSON
)

func init() {
	layoutCmd.Flags().BoolVar(&layoutJSON, "json", false, "Output the layout as JSON")
	addLayoutFlags(layoutCmd)
	rootCmd.AddCommand(layoutCmd)
}

type layoutReport struct {
	Pages  []model.Box `json:"pages"`
	Bounds model.Box   `json:"bounds"`
	State  pages.State `json:"state"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	bindLayoutFlags(cmd)
	cfg, _, err := setup(cmd)
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

	report := layoutReport{
		Pages:  doc.Boxes(),
		Bounds: doc.Bounds(),
		State:  doc.State(),
	}

	if layoutJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	w := cmd.OutOrStdout()
	p := printer()
	for i, b := range report.Pages {
		p.Fprintf(w, "page %d  %s\n", i, formatBox(b))
	}
	p.Fprintf(w, "bounds  %s\n", formatBox(report.Bounds))
	p.Fprintf(w, "scale %.2f  border %.2f  pages %d  gaps %.2f x %.2f\n",
		report.State.Scale, report.State.Border, report.State.PageCount,
		report.State.GapX, report.State.GapY)
	return nil
}

func formatBox(b model.Box) string {
	return printer().Sprintf("x=%.2f y=%.2f w=%.2f h=%.2f", b.X, b.Y, b.W, b.H)
}
