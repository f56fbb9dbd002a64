package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/rulekit/pkg/file"
)

// Rule checks one field value.
type Rule interface {
	Validate(ctx context.Context, in Input) Outcome
}

// RuleFunc adapts a function to the Rule interface. Register it with RegisterAs.
type RuleFunc func(ctx context.Context, in Input) Outcome

func (f RuleFunc) Validate(ctx context.Context, in Input) Outcome {
	return f(ctx, in)
}

// Namer lets a rule choose its registry name. Without it the lower-cased
// type name is used.
type Namer interface {
	Name() string
}

// AbsentChecker marks rules that must run even when the field is missing from
// the input, such as required or the upload rules. All other rules are
// skipped for missing fields.
type AbsentChecker interface {
	ChecksAbsent() bool
}

// Outcome is the result of a single rule. The zero value is a failure with the
// rule's default message key.
type Outcome struct {
	passed bool
	key    string
	args   []string
	err    error
}

// Pass reports success.
func Pass() Outcome {
	return Outcome{passed: true}
}

// Fail reports a validation failure. An empty key selects the rule's default
// key "validation.<rule>". Args become the %{0}..%{n} placeholders; without
// args the invocation arguments are used.
func Fail(key string, args ...string) Outcome {
	return Outcome{key: key, args: args}
}

// Invalid reports a configuration problem. It aborts the whole session.
func Invalid(err error) Outcome {
	if err == nil {
		err = ErrInvalidRule
	}
	return Outcome{err: err}
}

// Invalidf is Invalid with an ErrInvalidArgument message.
func Invalidf(format string, args ...any) Outcome {
	return Outcome{err: fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))}
}

// Check converts a boolean into an Outcome with the default key.
func Check(ok bool) Outcome {
	if ok {
		return Pass()
	}
	return Outcome{}
}

func (o Outcome) Passed() bool  { return o.passed && o.err == nil }
func (o Outcome) Key() string    { return o.key }
func (o Outcome) Args() []string { return o.args }
func (o Outcome) Err() error     { return o.err }

// Input is what a rule sees of the field under validation.
type Input struct {
	Field   string
	Value   any
	Present bool
	Args    []string

	session *Session
	chain   []Invocation
}

// Arg returns the i-th argument or "".
func (in Input) Arg(i int) string {
	if i < 0 || i >= len(in.Args) {
		return ""
	}
	return in.Args[i]
}

// Lookup returns another field of the same input.
func (in Input) Lookup(field string) (any, bool) {
	if in.session == nil {
		return nil, false
	}
	v, ok := in.session.fields[field]
	return v, ok
}

// Has reports whether the field's rule chain contains the named rule.
func (in Input) Has(rule string) bool {
	return slices.ContainsFunc(in.chain, func(inv Invocation) bool { return inv.Name == rule })
}

// Upload returns the file attached to the field: the value itself when it is
// a file.Info, otherwise the session's file source. Lookup errors other than
// "not found" are reported as a failed upload.
func (in Input) Upload(ctx context.Context) (file.Info, bool) {
	switch v := in.Value.(type) {
	case file.Info:
		return v, true
	case *file.Info:
		if v != nil {
			return *v, true
		}
	}
	if in.Present || in.session == nil || in.session.files == nil {
		return file.Info{}, false
	}

	info, err := in.session.files.Lookup(ctx, in.Field)
	switch {
	case errors.Is(err, file.ErrFileNotFound):
		return file.Info{}, false
	case err != nil:
		in.Logger().WarnContext(ctx, "upload lookup failed", slog.String("field", in.Field), slog.Any("error", err))
		return file.Info{Field: in.Field, Err: err}, true
	}
	return info, true
}

// Registry returns the registry the session resolves rules from.
func (in Input) Registry() *Registry {
	if in.session == nil {
		return Default().Registry()
	}
	return in.session.v.registry
}

// Resolver returns the host resolver used by network rules.
func (in Input) Resolver() Resolver {
	if in.session == nil || in.session.v.resolver == nil {
		return defaultResolver
	}
	return in.session.v.resolver
}

// Logger returns the validator logger.
func (in Input) Logger() *slog.Logger {
	if in.session == nil {
		return discardLogger
	}
	return in.session.v.logger
}
