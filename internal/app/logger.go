package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated slog.Logger. The global default is
// never touched, so tests can run apps side by side with captured output.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	// cli.Parse has already validated the format; anything but "json",
	// including the zero value used by tests, falls back to text.
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
