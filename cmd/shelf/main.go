// cmd/shelf/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/shelf/internal/cli"
)

func main() {
	// The first interrupt cancels the running prompt or search so the command
	// can close its browser and report what happened
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A second interrupt, e.g. at the exit pause, ends the process
	go func() {
		<-ctx.Done()
		stop()
	}()

	cli.Execute(ctx)
}
