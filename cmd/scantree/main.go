package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scantree/scantree/internal/app"
	"github.com/scantree/scantree/internal/cli"
	"github.com/scantree/scantree/internal/lifecycle"
)

// main is the entrypoint for the scantree application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		// Rejected transitions get their own exit code so run scripts can
		// tell a lost race from a broken campaign.
		if errors.Is(err, lifecycle.ErrTransitionRejected) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	scantreeApp := app.New(outW, os.Stderr, appConfig)
	return scantreeApp.Run(context.Background(), appConfig)
}
