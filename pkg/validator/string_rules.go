package validator

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func checkAlpha(_ context.Context, in Input) Outcome {
	return checkRunes(in, unicode.IsLetter)
}

// checkAlphaDash accepts letters, dashes and underscores.
func checkAlphaDash(_ context.Context, in Input) Outcome {
	return checkRunes(in, func(r rune) bool {
		return unicode.IsLetter(r) || r == '-' || r == '_'
	})
}

func checkAlphaNum(_ context.Context, in Input) Outcome {
	return checkRunes(in, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

func checkNoWhitespace(_ context.Context, in Input) Outcome {
	s, ok := stringValue(in.Value)
	return Check(ok && !strings.ContainsFunc(s, unicode.IsSpace))
}

// checkRunes passes for non-empty strings whose runes all satisfy allowed.
func checkRunes(in Input, allowed func(rune) bool) Outcome {
	s, ok := stringValue(in.Value)
	if !ok || s == "" {
		return Outcome{}
	}
	for _, r := range s {
		if !allowed(r) {
			return Outcome{}
		}
	}
	return Pass()
}

func checkLowercase(_ context.Context, in Input) Outcome {
	s, ok := stringValue(in.Value)
	return Check(ok && cases.Lower(language.Und).String(s) == s)
}

func checkUppercase(_ context.Context, in Input) Outcome {
	s, ok := stringValue(in.Value)
	return Check(ok && cases.Upper(language.Und).String(s) == s)
}

// checkDigits passes for a run of exactly n decimal digits.
func checkDigits(_ context.Context, in Input) Outcome {
	n, err := strconv.Atoi(in.Arg(0))
	if err != nil || n < 0 {
		return Invalidf("digits needs a length, got %q", in.Arg(0))
	}
	s, ok := scalarString(in.Value)
	if !ok || len(s) != n {
		return Outcome{}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Outcome{}
		}
	}
	return Pass()
}
