package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
	"github.com/specialistvlad/controlrig/internal/rig"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	rig    *rig.Rig
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded,
// validated rig.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the declared wiring into the format-agnostic model first.
	loaded, err := rig.Load(ctx, appConfig.RigPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load rig: %w", err))
	}
	logger.Debug("Rig configuration loaded and validated.")

	if appConfig.Ticks > 0 {
		loaded.Settings.Ticks = appConfig.Ticks
		logger.Debug("Tick count overridden from CLI.", "ticks", appConfig.Ticks)
	}

	return &App{
		outW:   outW,
		logger: logger,
		rig:    loaded,
	}
}

// Rig returns the application's loaded rig. This is primarily for testing.
func (a *App) Rig() *rig.Rig {
	return a.rig
}
