package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/yangjsonschema/internal/ctxlog"
	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader yang.Loader
	config *Config
}

// NewApp is the constructor for the main application. The generated
// document and check diffs go to outW; logs go to logW through an isolated
// logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader yang.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		config: cfg,
	}
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
