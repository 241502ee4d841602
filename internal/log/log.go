// Package log builds the application logger: a JSON or text slog handler at
// the configured level, with sensitive attributes masked.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/garnizeh/skillbridge/internal/config"
)

// New returns a logger writing to w. An empty format means JSON.
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return slog.New(NewRedactingHandler(h)), nil
}

// Output returns the destination for log records: a rotating file when
// cfg.File is set, fallback otherwise. The returned close func is never nil.
func Output(cfg config.LogConfig, fallback io.Writer) (io.Writer, func() error, error) {
	if cfg.File == "" {
		return fallback, func() error { return nil }, nil
	}
	w, err := NewRotatingWriter(RotationConfig{File: cfg.File, MaxSizeMB: cfg.MaxSizeMB, MaxFiles: cfg.MaxFiles})
	if err != nil {
		return nil, nil, err
	}
	return w, w.Close, nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
