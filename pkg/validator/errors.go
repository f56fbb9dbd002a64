package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrValidationFailed is the default kind returned by Session.Throw.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownField is the default Throw kind for fields rejected in strict mode.
	ErrUnknownField = errors.New("unknown field")

	// Configuration errors. They surface through ConfigError.
	ErrUnknownRule     = errors.New("unknown rule")
	ErrRuleExists      = errors.New("rule already registered")
	ErrInvalidRule     = errors.New("invalid rule")
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidArgument = errors.New("invalid rule argument")
)

// ConfigError reports a mistake in the rule configuration rather than in the
// validated data: an unregistered rule, a malformed argument or a callback
// without type information. It is never recorded as a field failure.
type ConfigError struct {
	Field string
	Rule  string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Field != "" && e.Rule != "":
		return fmt.Sprintf("validator: rule %q on field %q: %v", e.Rule, e.Field, e.Err)
	case e.Rule != "":
		return fmt.Sprintf("validator: rule %q: %v", e.Rule, e.Err)
	default:
		return fmt.Sprintf("validator: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err carries a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ThrowError is the error returned by Session.Throw for the first failed field.
// Its message reads `"<field>" <message>` with the first letter of the
// message lowered, so "Is an unknown field" becomes `"ha" is an unknown field`.
type ThrowError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ThrowError) Error() string {
	return fmt.Sprintf("%q %s", e.Field, lowerFirst(e.Message))
}

func (e *ThrowError) Unwrap() error {
	return e.Kind
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToLower(r))
	b.WriteString(s[size:])
	return b.String()
}
