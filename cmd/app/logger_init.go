package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/plushka/stitchfarm/internal/config"
)

// initLogger wires slog.Default to JSON output on stdout, duplicated into a
// log file when LogDir is configured.
func initLogger(cfg *config.Config) {
	var out io.Writer = os.Stdout

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o750); err == nil {
			f, err := os.OpenFile(filepath.Join(cfg.LogDir, "app.log"),
				os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
			if err == nil {
				out = io.MultiWriter(os.Stdout, f)
			}
		}
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
