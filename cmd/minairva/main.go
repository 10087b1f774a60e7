// Command minairva triages legal documents against a remote analysis service.
//
// Usage:
//
//	minairva                  open the interactive UI
//	minairva submit FILE      triage one document
//	minairva watch DIR        triage every file dropped into DIR
//	minairva mcp serve        expose triage to AI assistants
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
