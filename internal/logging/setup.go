package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects how New builds the process logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	File   string // optional; records are written here as well as to Stdout
	Stdout io.Writer
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds a SlogLogger from opts. The returned close function releases
// the log file, if one was opened.
func New(opts Options) (*SlogLogger, func() error, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	closeFn := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(out, f)
		closeFn = f.Close
	}

	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		h = slog.NewTextHandler(out, ho)
	} else {
		h = slog.NewJSONHandler(out, ho)
	}

	return NewSlogLogger(slog.New(h)), closeFn, nil
}
