// Package logging sets up the diagnostic logger.
//
// The chat TUI owns the terminal, so log output goes to a file and is off
// unless a level is configured.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
)

// Options configures New
type Options struct {
	Level string // zerolog level name; "" or "disabled" turns logging off
	Path  string // log file, appended to
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing JSON lines to opts.Path.
// The returned closer must be closed when the program exits.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	levelName := strings.ToLower(strings.TrimSpace(opts.Level))
	if levelName == "" || levelName == "disabled" || levelName == "off" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	if opts.Path == "" {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewWithWriter(f, level), f, nil
}

// NewWithWriter builds a logger on an arbitrary writer
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "moechat").
		Logger()
}

type requestIDKey struct{}

// NewRequestID returns a fresh identifier for one outbound request
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores a request id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, or ""
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Preview shortens message text for log lines. Width is in terminal cells.
func Preview(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	return runewidth.Truncate(text, width, "…")
}

// Since is a small helper for duration fields
func Since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
