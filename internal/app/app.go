package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/scantree/scantree/internal/ctxlog"
)

// App executes one CLI operation with a configured logger.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
}

// New creates an App. Logs go to errW; operation output (status listings)
// goes to outW, keeping the two streams separable in scripts.
func New(outW, errW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		errW:   errW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, errW),
	}
}

// Run dispatches the configured command.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	switch cfg.Command {
	case "generate":
		return a.Generate(ctx, cfg.Generate)
	case "mark":
		return a.Mark(ctx, cfg.Mark)
	case "status":
		return a.Status(ctx, cfg.Status)
	case "watch":
		return a.Watch(ctx, cfg.Watch)
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}
