package validator

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/rulekit/pkg/file"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Rules maps field names to rule specifications such as "string|min:3".
type Rules map[string]string

// SessionOption configures a Session.
type SessionOption func(*Session)

// Strict rejects fields that have no rule specification.
func Strict() SessionOption {
	return func(s *Session) { s.strict = true }
}

// InLanguage renders the session's messages in lang.
func InLanguage(lang Language) SessionOption {
	return func(s *Session) {
		if lang != nil {
			s.lang = lang
		}
	}
}

// WithContext passes ctx to the rules, for uploads and network lookups.
func WithContext(ctx context.Context) SessionOption {
	return func(s *Session) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithFiles makes uploads from src visible to the file rules for fields that
// are absent from the value map.
func WithFiles(src file.Source) SessionOption {
	return func(s *Session) { s.files = src }
}

// Session is one validation of a field map. It is evaluated once, on the
// first query, and the result is kept for the session's lifetime.
type Session struct {
	v      *Validator
	ctx    context.Context
	fields map[string]any
	rules  Rules
	strict bool
	files  file.Source

	langMu sync.RWMutex
	lang   Language

	once     sync.Once
	failures []Failure
	err      error
}

// Passes reports whether every field satisfied its rules. A configuration
// error makes the session fail; Validate reports it.
func (s *Session) Passes() bool {
	s.evaluate()
	return s.err == nil && len(s.failures) == 0
}

// Fails is the negation of Passes.
func (s *Session) Fails() bool {
	return !s.Passes()
}

// Errors returns the message of every failed field. It is empty after a
// configuration error even though Fails reports true; Validate returns that
// error.
func (s *Session) Errors() map[string]string {
	failures := s.Failures()
	m := make(map[string]string, len(failures))
	for _, f := range failures {
		m[f.Field] = f.Message
	}
	return m
}

// Failures returns the failed fields in evaluation order, with messages
// rendered in the current language.
func (s *Session) Failures() ValidationErrors {
	s.evaluate()
	if len(s.failures) == 0 {
		return nil
	}

	lang := s.language()
	out := make(ValidationErrors, len(s.failures))
	for i, f := range s.failures {
		f.Message = lang.Translate(f.Key, f.Replacements())
		out[i] = f
	}
	return out
}

// Validate returns nil when the session passes, a *ConfigError for a broken
// rule configuration, and ValidationErrors otherwise.
func (s *Session) Validate() error {
	s.evaluate()
	if s.err != nil {
		return s.err
	}
	if failures := s.Failures(); len(failures) > 0 {
		return failures
	}
	return nil
}

// Throw returns the first failure as a *ThrowError of the given kind, or nil
// when the session passes. A nil kind selects ErrUnknownField for fields
// rejected in strict mode and ErrValidationFailed for everything else.
// Configuration errors are returned as they are.
func (s *Session) Throw(kind error) error {
	s.evaluate()
	if s.err != nil {
		return s.err
	}
	failures := s.Failures()
	if len(failures) == 0 {
		return nil
	}

	first := failures[0]
	if kind == nil {
		kind = ErrValidationFailed
		if first.Key == KeyUnknownField {
			kind = ErrUnknownField
		}
	}
	return &ThrowError{Kind: kind, Field: first.Field, Message: first.Message}
}

// SetLanguage switches the language used to render messages. It may be
// called before or after evaluation.
func (s *Session) SetLanguage(lang Language) *Session {
	if lang != nil {
		s.langMu.Lock()
		s.lang = lang
		s.langMu.Unlock()
	}
	return s
}

// Language translates key with the session's language.
func (s *Session) Language(key string, replacements map[string]string) string {
	return s.language().Translate(key, replacements)
}

func (s *Session) language() Language {
	s.langMu.RLock()
	defer s.langMu.RUnlock()
	return s.lang
}

func (s *Session) evaluate() {
	s.once.Do(func() {
		s.failures, s.err = s.run(s.ctx)

		log := s.v.logger
		if s.err != nil {
			log.ErrorContext(s.ctx, "invalid rule configuration", logger.Error(s.err))
			return
		}
		log.DebugContext(s.ctx, "validation finished",
			slog.Int("fields", len(s.rules)),
			logger.Failures(len(s.failures)),
		)
	})
}

func (s *Session) run(ctx context.Context) ([]Failure, error) {
	var failures []Failure

	if s.strict {
		for _, field := range slices.Sorted(maps.Keys(s.fields)) {
			if _, ok := s.rules[field]; !ok {
				failures = append(failures, Failure{Field: field, Key: KeyUnknownField})
			}
		}
	}

	for _, field := range slices.Sorted(maps.Keys(s.rules)) {
		f, err := s.check(ctx, field, s.v.parser.Parse(s.rules[field]))
		if err != nil {
			return nil, err
		}
		if f != nil {
			failures = append(failures, *f)
		}
	}
	return failures, nil
}

// check runs the rule chain of one field and returns its first failure.
func (s *Session) check(ctx context.Context, field string, chain []Invocation) (*Failure, error) {
	value, present := s.fields[field]

	for _, inv := range chain {
		if inv.Name == RuleNullable && (!present || isNil(value)) {
			return nil, nil
		}

		rule, err := s.v.registry.Resolve(inv.Name)
		if err != nil {
			return nil, &ConfigError{Field: field, Rule: inv.Name, Err: err}
		}
		if !present && !checksAbsent(rule) {
			continue
		}

		in := Input{
			Field:   field,
			Value:   value,
			Present: present,
			Args:    inv.Args,
			session: s,
			chain:   chain,
		}
		out := rule.Validate(ctx, in)
		if out.err == nil && out.passed && inv.Name == RuleArray && len(inv.Args) > 0 {
			out = s.checkElements(ctx, in, inv.Args[0])
		}

		switch {
		case out.err != nil:
			return nil, &ConfigError{Field: field, Rule: inv.Name, Err: out.err}
		case !out.passed:
			s.v.logger.DebugContext(ctx, "rule failed", logger.Field(field), logger.Rule(inv.Name))
			return failure(field, inv, out), nil
		}
	}
	return nil, nil
}

// checkElements applies the element type of array:<type> to every element.
func (s *Session) checkElements(ctx context.Context, in Input, elemSpec string) Outcome {
	elems := ParseSpec(elemSpec)
	if len(elems) != 1 || !elems[0].TypeRule {
		return Fail(KeyArrayType, elemSpec)
	}
	elem := elems[0]

	rule, err := s.v.registry.Resolve(elem.Name)
	if err != nil {
		return Invalid(err)
	}

	items, _ := collection(in.Value)
	for _, item := range items {
		out := rule.Validate(ctx, Input{
			Field:   in.Field,
			Value:   item,
			Present: true,
			Args:    elem.Args,
			session: s,
			chain:   elems,
		})
		if out.err != nil {
			return out
		}
		if !out.passed {
			return Fail(KeyArrayType, elemSpec)
		}
	}
	return Pass()
}

func failure(field string, inv Invocation, out Outcome) *Failure {
	key := out.key
	if key == "" {
		key = "validation." + inv.Name
	}
	args := out.args
	if len(args) == 0 {
		args = inv.Args
	}
	return &Failure{Field: field, Rule: inv.Name, Key: key, Args: args}
}
