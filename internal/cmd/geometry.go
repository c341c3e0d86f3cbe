package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsawler/pagecap/model"
)

var geometryCmd = &cobra.Command{
	Use:   "geometry BOX BOX [BOX...]",
	Short: "Compare boxes given as x,y,w,h",
	Long: `Report how the first two boxes relate (collision, containment and
intersection) and the bounding box of all of them.

Example:
  pagecap geometry 0,0,100,100 50,50,100,100`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGeometry,
}

func init() {
	rootCmd.AddCommand(geometryCmd)
}

func runGeometry(cmd *cobra.Command, args []string) error {
	boxes := make([]model.Box, len(args))
	for i, arg := range args {
		b, err := parseBox(arg)
		if err != nil {
			return err
		}
		boxes[i] = b
	}
	a, b := boxes[0], boxes[1]

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "collides  %t\n", model.Collides(a, b))
	fmt.Fprintf(w, "contains  %t\n", model.Contains(a, b))
	fmt.Fprintf(w, "includes  %t\n", model.Includes(a, b))
	if in, ok := model.Intersect(a, b); ok {
		fmt.Fprintf(w, "intersect %s\n", formatBox(in))
	} else {
		fmt.Fprintln(w, "intersect none")
	}
	fmt.Fprintf(w, "common    %s\n", formatBox(model.Common(boxes)))
	return nil
}
