package signature

import "errors"

var (
	// ErrInvalidPrototype is returned when a prototype string cannot be parsed.
	ErrInvalidPrototype = errors.New("invalid prototype")

	// ErrNotCallable is returned when Describe receives something that is not a function.
	ErrNotCallable = errors.New("value is not callable")

	// ErrNoSignature is returned when a function carries no type information at all:
	// no typed parameter and no typed result.
	ErrNoSignature = errors.New("signature carries no type information")

	// ErrMismatch is wrapped by MismatchError.
	ErrMismatch = errors.New("signature mismatch")
)
