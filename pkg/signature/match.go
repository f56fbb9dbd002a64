package signature

import "fmt"

// MismatchError reports a candidate whose prototype does not satisfy the declared one.
type MismatchError struct {
	Expected Prototype
	Actual   Prototype
	Reason   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q: %s", ErrMismatch, e.Expected.String(), e.Actual.String(), e.Reason)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Match checks the actual prototype against the declared one.
// It returns nil on success and a *MismatchError otherwise.
func Match(declared, actual Prototype) error {
	fail := func(format string, args ...any) error {
		return &MismatchError{Expected: declared, Actual: actual, Reason: fmt.Sprintf(format, args...)}
	}

	for i, param := range actual.Params {
		if i >= len(declared.Params) {
			if !param.Optional {
				return fail("parameter %d is not declared", i+1)
			}
			continue
		}
		if !compatible(declared.Params[i].Type, param.Type) {
			return fail("parameter %d has type %q, want %q", i+1, param.Type.String(), declared.Params[i].Type.String())
		}
	}

	d, a := declared.Return, actual.Return
	if d.Kind == ReturnAny {
		return nil
	}
	if d.Kind != a.Kind {
		return fail("return %q, want %q", a.String(), d.String())
	}
	if d.Kind == ReturnTyped {
		if len(d.Types) != len(a.Types) {
			return fail("returns %d values, want %d", len(a.Types), len(d.Types))
		}
		for i := range d.Types {
			if !d.Types[i].Wildcard() && d.Types[i] != a.Types[i] {
				return fail("return %q, want %q", a.String(), d.String())
			}
		}
	}

	return nil
}

// Matches parses the declared prototype, describes fn and matches the two.
func Matches(declared string, fn any) error {
	d, err := Parse(declared)
	if err != nil {
		return err
	}
	a, err := Describe(fn)
	if err != nil {
		return err
	}
	return Match(d, a)
}

func compatible(declared, actual Token) bool {
	if declared.Wildcard() || actual.Wildcard() {
		return true
	}
	return declared == actual
}
