// Command pagecap captures regions that span several page images.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/pagecap/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
