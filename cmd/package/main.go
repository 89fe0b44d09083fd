package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spachava753/purpltools/internal/cli"
)

func main() {
	// Setup context with manual signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	defer func() {
		signal.Stop(sigChan)
		cancel()
	}()

	go func() {
		sig := <-sigChan
		slog.Info("interrupt received, stopping packaging", "signal", sig)
		cancel()
	}()

	if err := cli.NewPackageCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			slog.Error("packaging failed", "error", err)
		}
		signal.Stop(sigChan)
		cancel()
		os.Exit(1)
	}
}
