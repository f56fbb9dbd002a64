package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/rulekit/pkg/signature"
)

// resolveCallable turns a field value into a function value. It accepts
// function values, names registered with Registry.RegisterFunc and method
// references written as []any{receiver, "Method"}.
func resolveCallable(in Input) (any, bool) {
	v := in.Value
	if isNil(v) {
		return nil, false
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return v, true
	}
	if name, ok := v.(string); ok {
		return in.Registry().LookupFunc(name)
	}
	if pair, ok := v.([]any); ok && len(pair) == 2 {
		name, ok := pair[1].(string)
		if !ok || isNil(pair[0]) {
			return nil, false
		}
		m := reflect.ValueOf(pair[0]).MethodByName(name)
		if !m.IsValid() {
			return nil, false
		}
		return m.Interface(), true
	}
	return nil, false
}

func checkCallable(_ context.Context, in Input) Outcome {
	_, ok := resolveCallable(in)
	return Check(ok)
}

// checkFunction accepts function values only, not names.
func checkFunction(_ context.Context, in Input) Outcome {
	v := in.Value
	return Check(!isNil(v) && reflect.TypeOf(v).Kind() == reflect.Func)
}

// checkCallback matches the callable's signature against the prototype in
// the first argument, for example callback:?string?=?int. A missing prototype
// fails the field; a malformed one, or a callable whose signature carries no
// type information, is a configuration error.
func checkCallback(_ context.Context, in Input) Outcome {
	if len(in.Args) == 0 {
		return Outcome{}
	}
	declared, err := signature.Parse(in.Arg(0))
	if err != nil {
		return Invalid(fmt.Errorf("%w: %v", ErrInvalidArgument, err))
	}

	fn, ok := resolveCallable(in)
	if !ok {
		return Outcome{}
	}
	actual, err := signature.Describe(fn)
	if err != nil {
		return Invalid(err)
	}

	if err := signature.Match(declared, actual); err != nil {
		var mismatch *signature.MismatchError
		if errors.As(err, &mismatch) {
			return Fail(KeyCallbackSignature, mismatch.Expected.String(), mismatch.Actual.String())
		}
		return Outcome{}
	}
	return Pass()
}

// checkClass verifies that the value is an instance of a registered type or
// the name it was registered under. The optional second argument restricts
// the value to "object" or "string". Interface types accept any implementer.
func checkClass(_ context.Context, in Input) Outcome {
	if len(in.Args) == 0 || in.Arg(0) == "" {
		return Invalidf("class needs a type name")
	}
	target, ok := in.Registry().LookupType(in.Arg(0))
	if !ok {
		return Invalid(fmt.Errorf("%w: unknown type %q", ErrInvalidArgument, in.Arg(0)))
	}

	mode := in.Arg(1)
	key := "validation.class"
	switch mode {
	case "":
	case "object", "string":
		key += "_" + mode
	default:
		return Invalidf("class mode %q is not object or string", mode)
	}
	fail := Fail(key, in.Arg(0))

	v := in.Value
	if isNil(v) {
		return fail
	}

	if name, ok := v.(string); ok {
		if mode == "object" {
			return fail
		}
		t, ok := in.Registry().LookupType(name)
		if !ok || !assignable(t, target) {
			return fail
		}
		return Pass()
	}

	if mode == "string" || !isInstance(v) {
		return fail
	}
	if !assignable(reflect.TypeOf(v), target) {
		return fail
	}
	return Pass()
}

// isInstance reports whether v is a struct value or a pointer to one.
func isInstance(v any) bool {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func assignable(t, target reflect.Type) bool {
	if target.Kind() == reflect.Interface {
		return t.Implements(target) || reflect.PointerTo(t).Implements(target)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t == target
}
