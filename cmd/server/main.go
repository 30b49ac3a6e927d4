package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sundayezeilo/websitio/internal/app"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) (err error) {
	application, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := application.Shutdown(); shutdownErr != nil && err == nil {
			err = fmt.Errorf("shutdown: %w", shutdownErr)
		}
	}()

	// Blocks until SIGINT/SIGTERM.
	return application.Start(ctx)
}
