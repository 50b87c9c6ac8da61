// Package main is the entry point for the solbuild compiler orchestrator.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/foundry-rs/compilers/cmd/solbuild/commands"
	"github.com/foundry-rs/compilers/internal/app"
	"github.com/foundry-rs/compilers/internal/core/domain"
	_ "github.com/foundry-rs/compilers/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrCompilationFailed) {
			// Diagnostics were already printed with the report.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
