// Command orbisctl runs maintenance tasks against the ORBIS catalog database:
// schema migrations and sample-data seeding.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "orbisctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}
