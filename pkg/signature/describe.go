package signature

import (
	"fmt"
	"reflect"
)

// Describe derives the prototype of a function value.
// Pointers become nullable tokens, empty interfaces become wildcards and a
// variadic tail becomes an optional parameter of its element type.
func Describe(fn any) (Prototype, error) {
	if fn == nil {
		return Prototype{}, ErrNotCallable
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return Prototype{}, fmt.Errorf("%w: %T", ErrNotCallable, fn)
	}
	if v.IsNil() {
		return Prototype{}, fmt.Errorf("%w: nil %T", ErrNotCallable, fn)
	}
	return DescribeType(v.Type())
}

// DescribeType is Describe for a function type.
func DescribeType(t reflect.Type) (Prototype, error) {
	if t == nil || t.Kind() != reflect.Func {
		return Prototype{}, ErrNotCallable
	}

	var (
		proto Prototype
		typed bool
	)

	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		param := Param{}
		if t.IsVariadic() && i == t.NumIn()-1 {
			param.Optional = true
			in = in.Elem()
		}
		param.Type = tokenOf(in)
		if !param.Type.Wildcard() {
			typed = true
		}
		proto.Params = append(proto.Params, param)
	}

	switch {
	case t.NumOut() == 0:
		proto.Return = Return{Kind: ReturnVoid}
		typed = true
	case t.NumOut() == 1 && tokenOf(t.Out(0)).Wildcard():
		proto.Return = Return{Kind: ReturnAny}
	default:
		types := make([]Token, t.NumOut())
		for i := range types {
			types[i] = tokenOf(t.Out(i))
		}
		proto.Return = Return{Kind: ReturnTyped, Types: types}
		typed = true
	}

	if !typed {
		return Prototype{}, fmt.Errorf("%w: %s", ErrNoSignature, t)
	}
	return proto, nil
}

func tokenOf(t reflect.Type) Token {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return Token{}
	}
	if t.Kind() == reflect.Pointer {
		return Token{Name: t.Elem().String(), Nullable: true}
	}
	return Token{Name: t.String()}
}
