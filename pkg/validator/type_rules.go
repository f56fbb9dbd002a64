package validator

import (
	"context"
	"strings"
)

func checkString(_ context.Context, in Input) Outcome {
	_, ok := indirect(in.Value).(string)
	return Check(ok)
}

// checkInteger accepts integer kinds, integral json.Number values and
// strings holding an integer.
func checkInteger(_ context.Context, in Input) Outcome {
	_, ok := integerValue(in.Value)
	return Check(ok)
}

// checkFloat accepts any number or numeric string.
func checkFloat(_ context.Context, in Input) Outcome {
	_, ok := parseNumber(in.Value)
	return Check(ok)
}

func checkNumeric(_ context.Context, in Input) Outcome {
	_, ok := parseNumber(in.Value)
	return Check(ok)
}

// checkBoolean accepts bool, the numbers 0 and 1, and the strings "0", "1",
// "true" and "false".
func checkBoolean(_ context.Context, in Input) Outcome {
	v := indirect(in.Value)
	if _, ok := v.(bool); ok {
		return Pass()
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "0", "1", "true", "false":
			return Pass()
		}
		return Outcome{}
	}
	n, ok := number(v)
	return Check(ok && (n == 0 || n == 1))
}

// checkArray accepts non-nil slices, arrays and maps. The element type of
// array:<type> is checked by the session.
func checkArray(_ context.Context, in Input) Outcome {
	_, ok := collection(in.Value)
	return Check(ok)
}
