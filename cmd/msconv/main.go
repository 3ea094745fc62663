package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucrnz/msconv/internal/cleanup"
	"github.com/lucrnz/msconv/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal, restore the default handling so a second one
	// kills the process.
	context.AfterFunc(ctx, stop)

	// Temporary output files are removed if the run does not finish
	tracker := cleanup.NewTracker(nil)
	defer tracker.Cleanup()

	err := cli.ExecuteContext(ctx, tracker)
	if err == nil {
		return cli.ExitOK
	}
	if ctx.Err() == context.Canceled {
		fmt.Fprintln(os.Stderr, "\nInterrupted")
		return cli.ExitInterrupted
	}
	fmt.Fprintln(os.Stderr, "msconv:", err)
	return cli.ExitCode(err)
}
