package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/csabika98/Mythic/internal/cli/commands"
	"github.com/csabika98/Mythic/internal/cli/ui"
)

func main() {
	// Signal cancellation propagates to any wine process this invocation
	// started.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
		os.Exit(1)
	}
}
