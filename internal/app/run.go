package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
	"github.com/specialistvlad/controlrig/internal/rig"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.DotPath != "" {
		dot, err := rig.ExportDOT(a.rig)
		if err != nil {
			return fmt.Errorf("failed to export wiring diagram: %w", err)
		}
		if err := os.WriteFile(appConfig.DotPath, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("failed to write wiring diagram: %w", err)
		}
		a.logger.Info("Wiring diagram exported.", "path", appConfig.DotPath)
	}

	a.logger.Debug("Building graph from rig model...")
	result, err := rig.Build(ctx, a.rig)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	defer result.Close()
	a.logger.Debug("Graph built.", "node_count", result.Graph.Len())

	a.logger.Info("🚀 Starting run...", "ticks", result.Ticks, "tick_interval", a.rig.Settings.TickInterval)
	if err := result.Driver.Run(ctx, result.Ticks); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	a.logger.Info("🏁 Run finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
