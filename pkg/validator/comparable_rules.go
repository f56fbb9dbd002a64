package validator

import "context"

// checkSame requires the field named by the argument to hold the same value.
func checkSame(_ context.Context, in Input) Outcome {
	if in.Arg(0) == "" {
		return Invalidf("same needs a field name")
	}
	other, ok := in.Lookup(in.Arg(0))
	return Check(ok && sameValue(in.Value, other))
}

// checkDifferent requires the field named by the argument to hold another
// value. A missing other field counts as different.
func checkDifferent(_ context.Context, in Input) Outcome {
	if in.Arg(0) == "" {
		return Invalidf("different needs a field name")
	}
	other, ok := in.Lookup(in.Arg(0))
	return Check(!ok || !sameValue(in.Value, other))
}

// checkConfirmed compares the value with <field>_confirmation, or with the
// field named by the argument.
func checkConfirmed(_ context.Context, in Input) Outcome {
	name := in.Arg(0)
	if name == "" {
		name = in.Field + "_confirmation"
	}
	other, ok := in.Lookup(name)
	return Check(ok && sameValue(in.Value, other))
}
