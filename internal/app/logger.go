package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leadflow/leadflow-backend/internal/config"
)

// NewLogger builds the process logger and installs it as the slog default.
//
// Every record carries the process name (server, seeder, agent) and the
// build version. Records go to cfg.File when set, otherwise to stderr.
// The returned close func releases the file and is safe to call when
// logging to stderr.
func NewLogger(cfg config.LogConfig, process string) (*slog.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	logger := newLogger(w, cfg).With(
		slog.String("process", process),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// newLogger picks the handler for cfg.Format. Text output includes the
// source location; anything other than "text" is JSON.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	text := strings.EqualFold(strings.TrimSpace(cfg.Format), "text")
	opts := &slog.HandlerOptions{
		Level:     levelOf(cfg.Level),
		AddSource: text,
	}
	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func levelOf(s string) slog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return slog.LevelInfo
}
