package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownFormat is returned for a log format other than json or text.
var ErrUnknownFormat = errors.New("logger: unknown format")

// Format selects the stdout encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds logger configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format Format `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

type options struct {
	writer     io.Writer
	extractors []ContextExtractor
	level      slog.Level
	format     Format
}

// Option configures a logger built by New or NewWithSentry.
type Option func(*options)

// WithLevel sets the minimum level written to the output.
func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat selects JSON or text output.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithWriter replaces stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

func newOptions(opts []Option) *options {
	o := &options{writer: os.Stdout, level: slog.LevelInfo, format: FormatJSON}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level}
	if o.format == FormatText {
		return slog.NewTextHandler(o.writer, ho)
	}
	return slog.NewJSONHandler(o.writer, ho)
}

// New creates a logger writing to stdout, JSON-encoded at info level unless
// overridden by options.
func New(opts ...Option) *slog.Logger {
	o := newOptions(opts)
	return slog.New(NewLogHandlerDecorator(o.handler(), o.extractors...))
}

// NewNope creates a logger that discards all output.
// Use it as the default when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel converts debug, info, warn or error into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ParseFormat validates a format name. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options converts the configuration into logger options.
func (c Config) Options() ([]Option, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(string(c.Format))
	if err != nil {
		return nil, err
	}
	return []Option{WithLevel(level), WithFormat(format)}, nil
}
