package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Environment names understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the environment-driven logger configuration.
type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  Format `env:"LOG_FORMAT" envDefault:"json"`
	Env     string `env:"APP_ENV" envDefault:"production"`
	Service string `env:"SERVICE_NAME" envDefault:"rulekit"`
}

// Option configures New.
type Option func(*settings)

type settings struct {
	level      slog.Level
	format     Format
	output     io.Writer
	addSource  bool
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat sets the output format. It panics on an unknown format, so a
// misconfigured service fails at startup.
func WithFormat(f Format) Option {
	if err := f.validate(); err != nil {
		panic(err)
	}
	return func(s *settings) { s.format = f }
}

func WithJSONFormatter() Option { return WithFormat(FormatJSON) }

func WithTextFormatter() Option { return WithFormat(FormatText) }

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithSource records the caller's file and line.
func WithSource() Option {
	return func(s *settings) { s.addSource = true }
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors adds attributes taken from the context of each
// record. Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithEnvironment applies per-environment defaults and tags every record with
// the service and environment. "production" and "prod" log JSON at info
// level; anything else logs text at debug level with source locations.
func WithEnvironment(env, service string) Option {
	return func(s *settings) {
		switch strings.ToLower(env) {
		case EnvProduction, "prod":
			env = EnvProduction
			s.level, s.format = slog.LevelInfo, FormatJSON
		default:
			env = EnvDevelopment
			s.level, s.format, s.addSource = slog.LevelDebug, FormatText, true
		}
		if service != "" {
			s.attrs = append(s.attrs, slog.String("service", service))
		}
		s.attrs = append(s.attrs, slog.String("env", env))
	}
}

// ParseLevel parses debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// FromConfig turns a Config into options. The configured level and format
// override the environment defaults.
func FromConfig(cfg Config) ([]Option, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if err := cfg.Format.validate(); err != nil {
		return nil, err
	}
	return []Option{
		WithEnvironment(cfg.Env, cfg.Service),
		WithLevel(level),
		WithFormat(cfg.Format),
	}, nil
}

// New builds a logger. Without options it writes JSON at info level to stdout.
func New(opts ...Option) *slog.Logger {
	s := settings{level: slog.LevelInfo, format: FormatJSON, output: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}

	ho := &slog.HandlerOptions{Level: s.level, AddSource: s.addSource}
	var h slog.Handler
	if s.format == FormatText {
		h = slog.NewTextHandler(s.output, ho)
	} else {
		h = slog.NewJSONHandler(s.output, ho)
	}
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return slog.New(withExtractors(h, s.extractors))
}

// SetAsDefault installs l as the slog default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

func (f Format) validate() error {
	switch f {
	case FormatJSON, FormatText:
		return nil
	}
	return fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText)
}
