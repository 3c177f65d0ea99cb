// Package logger builds the slog loggers used by the xkcd commands.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Format selects the slog handler.
type Format string

const (
	FormatDev  Format = "dev"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type options struct {
	writer io.Writer
	level  slog.Level
	format Format
}

// Option configures New.
type Option func(*options)

// WithWriter sets the log destination. Defaults to stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithLevel sets the minimum level from a name such as "debug" or "warn".
// Unknown names leave the default (info).
func WithLevel(name string) Option {
	return func(o *options) {
		o.level = ParseLevel(name)
	}
}

// WithFormat picks the handler: "dev" (colored, via tint), "text" or "json".
func WithFormat(f string) Option {
	return func(o *options) {
		o.format = Format(strings.ToLower(f))
	}
}

// New returns a logger configured by opts.
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stderr,
		level:  slog.LevelInfo,
		format: FormatDev,
	}
	for _, apply := range opts {
		apply(o)
	}

	switch o.format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level}))
	case FormatText, "txt":
		return slog.New(slog.NewTextHandler(o.writer, &slog.HandlerOptions{Level: o.level}))
	default:
		return slog.New(tint.NewHandler(o.writer, &tint.Options{
			Level:      o.level,
			TimeFormat: "[15:04:05.000]",
		}))
	}
}

// Void discards everything.
func Void() *slog.Logger {
	return New(WithWriter(io.Discard))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
