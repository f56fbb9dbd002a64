package validator

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// checkUUID accepts any RFC 4122 UUID, in the canonical, braced or urn
// form. uuid:<n> also requires version n.
func checkUUID(_ context.Context, in Input) Outcome {
	s, ok := stringValue(in.Value)
	if !ok {
		return Outcome{}
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return Outcome{}
	}
	if in.Arg(0) == "" {
		return Pass()
	}
	version, err := strconv.Atoi(in.Arg(0))
	if err != nil || version < 1 || version > 8 {
		return Invalidf("uuid version %q is not between 1 and 8", in.Arg(0))
	}
	return Check(id.Version() == uuid.Version(version))
}

// checkPhone parses the value as a phone number. phone:<region> sets the
// region for numbers written without a country code, for example phone:DE.
func checkPhone(_ context.Context, in Input) Outcome {
	s, ok := stringValue(in.Value)
	if !ok || strings.TrimSpace(s) == "" {
		return Outcome{}
	}
	num, err := phonenumbers.Parse(s, strings.ToUpper(in.Arg(0)))
	if err != nil {
		return Outcome{}
	}
	return Check(phonenumbers.IsValidNumber(num))
}
