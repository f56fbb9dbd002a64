package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// isNil reports whether v is nil or a nil pointer, map, slice, interface,
// function or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// indirect follows pointers down to a non-pointer value.
func indirect(v any) any {
	for v != nil {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return v
		}
		v = rv.Elem().Interface()
	}
	return v
}

func stringValue(v any) (string, bool) {
	switch s := indirect(v).(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	}
	return "", false
}

// scalarString renders strings and numbers as text. Booleans and composite
// values are not scalars here.
func scalarString(v any) (string, bool) {
	v = indirect(v)
	if s, ok := stringValue(v); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return "", false
}

// number returns the value of a Go number or json.Number. Strings are not
// converted; see parseNumber.
func number(v any) (float64, bool) {
	v = indirect(v)
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// parseNumber accepts numbers and numeric strings.
func parseNumber(v any) (float64, bool) {
	if f, ok := number(v); ok {
		return f, true
	}
	s, ok := stringValue(v)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// integerValue accepts integer kinds, integral json.Number values and integer strings.
func integerValue(v any) (int64, bool) {
	v = indirect(v)
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	s, ok := stringValue(v)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return i, err == nil
}

// collection returns the elements of a slice, array or map. Byte slices are
// content, not collections.
func collection(v any) ([]any, bool) {
	v = indirect(v)
	if v == nil {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
		fallthrough
	case reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	case reflect.Map:
		if rv.IsNil() {
			return nil, false
		}
		items := make([]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			items = append(items, iter.Value().Interface())
		}
		return items, true
	}
	return nil, false
}

// isEmpty reports a missing value for the required rule: nil, a blank string
// or an empty collection.
func isEmpty(v any) bool {
	if isNil(v) {
		return true
	}
	v = indirect(v)
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	if b, ok := v.([]byte); ok {
		return len(b) == 0
	}
	if items, ok := collection(v); ok {
		return len(items) == 0
	}
	return false
}

// isBlank is the stricter emptiness used by filled: zero numbers, false and
// "0" count as blank too.
func isBlank(v any) bool {
	if isEmpty(v) {
		return true
	}
	v = indirect(v)
	switch t := v.(type) {
	case bool:
		return !t
	case string:
		return t == "0"
	}
	if f, ok := number(v); ok {
		return f == 0
	}
	return false
}

// sameValue compares two field values. Scalars compare by their text so a
// json.Number equals the matching Go number.
func sameValue(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if reflect.DeepEqual(a, b) {
		return true
	}
	as, aok := scalarString(a)
	bs, bok := scalarString(b)
	if aok && bok {
		_, aNum := number(a)
		_, bNum := number(b)
		if aNum != bNum {
			return false
		}
		return as == bs
	}
	return false
}

// valueKey is a comparable identity for distinct.
func valueKey(v any) any {
	if s, ok := scalarString(v); ok {
		if _, isNum := number(v); isNum {
			return "n:" + s
		}
		return "s:" + s
	}
	if v != nil && reflect.ValueOf(v).Comparable() {
		return v
	}
	return fmt.Sprintf("%T:%#v", v, v)
}
