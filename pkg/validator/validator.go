package validator

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Validator creates validation sessions. It owns the rule registry, the
// parser cache and the default language. A Validator is safe for concurrent
// use.
type Validator struct {
	registry *Registry
	parser   *Parser
	logger   *slog.Logger
	resolver Resolver

	mu   sync.RWMutex
	lang Language
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry replaces the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithLogger sets the logger used for configuration errors and session summaries.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithLanguage sets the default language of new sessions.
func WithLanguage(lang Language) Option {
	return func(v *Validator) {
		if lang != nil {
			v.lang = lang
		}
	}
}

// WithResolver sets the host resolver used by the activeurl rule.
func WithResolver(r Resolver) Option {
	return func(v *Validator) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithParser shares a parser, and its cache, between validators.
func WithParser(p *Parser) Option {
	return func(v *Validator) {
		if p != nil {
			v.parser = p
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// New returns a Validator with the built-in rules and English messages.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:   discardLogger,
		resolver: defaultResolver,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = NewRegistry()
	}
	if v.parser == nil {
		v.parser = NewParser(0)
	}
	if v.lang == nil {
		v.lang = English()
	}
	return v
}

// Make creates a session for fields checked against rules. Evaluation is
// deferred until the first query.
func (v *Validator) Make(fields map[string]any, rules Rules, opts ...SessionOption) *Session {
	s := &Session{
		v:      v,
		ctx:    context.Background(),
		fields: fields,
		rules:  rules,
		lang:   v.Language(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddRule registers a custom rule under its derived name.
func (v *Validator) AddRule(rule Rule) error {
	return v.registry.Register(rule)
}

// SetDefaultLanguage changes the language of sessions created afterwards.
func (v *Validator) SetDefaultLanguage(lang Language) error {
	if lang == nil {
		return ErrInvalidLanguage
	}
	v.mu.Lock()
	v.lang = lang
	v.mu.Unlock()
	return nil
}

// Language returns the default language.
func (v *Validator) Language() Language {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lang
}

// Registry returns the rule registry.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Parser returns the specification parser.
func (v *Validator) Parser() *Parser {
	return v.parser
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns the process-wide Validator used by the package-level
// functions.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// Make creates a session on the default Validator.
func Make(fields map[string]any, rules Rules, opts ...SessionOption) *Session {
	return Default().Make(fields, rules, opts...)
}

// AddRule registers a rule on the default Validator.
func AddRule(rule Rule) error {
	return Default().AddRule(rule)
}

// SetDefaultLanguage sets the language of the default Validator.
func SetDefaultLanguage(lang Language) error {
	return Default().SetDefaultLanguage(lang)
}
