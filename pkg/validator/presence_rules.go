package validator

import (
	"context"
	"strings"
)

// checkRequired fails for missing, nil, blank or empty values. An upload
// attached to the field satisfies it when the upload succeeded.
func checkRequired(ctx context.Context, in Input) Outcome {
	if info, ok := in.Upload(ctx); ok {
		return Check(info.OK())
	}
	return Check(in.Present && !isEmpty(in.Value))
}

func checkPresent(_ context.Context, in Input) Outcome {
	return Check(in.Present)
}

// checkFilled fails for values a form would treat as blank, including 0,
// false and "0".
func checkFilled(_ context.Context, in Input) Outcome {
	return Check(!isBlank(in.Value))
}

// checkNullable always passes; the session stops the chain for nil values.
func checkNullable(context.Context, Input) Outcome {
	return Pass()
}

var acceptedValues = map[string]bool{
	"yes":  true,
	"on":   true,
	"1":    true,
	"true": true,
}

func checkAccepted(_ context.Context, in Input) Outcome {
	if b, ok := indirect(in.Value).(bool); ok {
		return Check(b)
	}
	s, ok := scalarString(in.Value)
	return Check(ok && acceptedValues[strings.ToLower(strings.TrimSpace(s))])
}
