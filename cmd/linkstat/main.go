package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"linkstat/internal/cli"
)

func main() {
	// Interrupted probes fail fast and still count toward the average
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx)
	stop()
	os.Exit(code)
}
