// Command grapheditor edits node graphs in the terminal, renders scenes to
// PNG and validates scene files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		bad.Fprintf(os.Stderr, "grapheditor: %v\n", err)
		stop()
		os.Exit(1)
	}
}
