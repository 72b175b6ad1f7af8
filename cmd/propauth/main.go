package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/aussiebroadwan/propauth/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	application, err := app.New(ctx, cfg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		return 1
	}
	defer func() { _ = application.Close() }()

	if err := application.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, app.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
