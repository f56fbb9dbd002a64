package validator

import (
	"context"
	"slices"
)

// checkDistinct fails when a collection holds the same value twice.
func checkDistinct(_ context.Context, in Input) Outcome {
	items, ok := collection(in.Value)
	if !ok {
		return Outcome{}
	}
	seen := make(map[any]struct{}, len(items))
	for _, item := range items {
		k := valueKey(item)
		if _, dup := seen[k]; dup {
			return Outcome{}
		}
		seen[k] = struct{}{}
	}
	return Pass()
}

// checkIn compares the value, rendered as text, with the listed arguments.
func checkIn(_ context.Context, in Input) Outcome {
	s, ok := scalarString(in.Value)
	if !ok {
		if b, isBool := indirect(in.Value).(bool); isBool {
			s, ok = boolString(b), true
		}
	}
	return Check(ok && slices.Contains(in.Args, s))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
