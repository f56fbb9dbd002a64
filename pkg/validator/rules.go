package validator

import "context"

// Built-in rule names.
const (
	RuleAccepted     = "accepted"
	RuleActiveURL    = "activeurl"
	RuleAfter        = "after"
	RuleAlpha        = "alpha"
	RuleAlphaDash    = "alphadash"
	RuleAlphaNum     = "alphanum"
	RuleArray        = "array"
	RuleBefore       = "before"
	RuleBetween      = "between"
	RuleBoolean      = "boolean"
	RuleCallable     = "callable"
	RuleCallback     = "callback"
	RuleClass        = "class"
	RuleConfirmed    = "confirmed"
	RuleDate         = "date"
	RuleDateFormat   = "dateformat"
	RuleDifferent    = "different"
	RuleDigits       = "digits"
	RuleDimensions   = "dimensions"
	RuleDistinct     = "distinct"
	RuleEmail        = "email"
	RuleFile         = "file"
	RuleFilled       = "filled"
	RuleFloat        = "float"
	RuleFunction     = "function"
	RuleImage        = "image"
	RuleIn           = "in"
	RuleInteger      = "integer"
	RuleIP           = "ip"
	RuleJSON         = "json"
	RuleLowercase    = "lowercase"
	RuleMax          = "max"
	RuleMIMETypes    = "mimetypes"
	RuleMin          = "min"
	RuleNoWhitespace = "nowhitespace"
	RuleNullable     = "nullable"
	RuleNumeric      = "numeric"
	RulePhone        = "phone"
	RulePresent      = "present"
	RuleRegex        = "regex"
	RuleRequired     = "required"
	RuleSame         = "same"
	RuleSize         = "size"
	RuleString       = "string"
	RuleUppercase    = "uppercase"
	RuleURL          = "url"
	RuleUUID         = "uuid"
)

// Message keys that do not follow the "validation.<rule>" pattern.
const (
	KeyUnknownField      = "validation.unknown_field"
	KeyArrayType         = "validation.array_type"
	KeyCallbackSignature = "validation.callback_signature"
)

// builtin is a rule implemented by a plain function.
type builtin struct {
	name   string
	absent bool
	check  func(ctx context.Context, in Input) Outcome
}

func (b builtin) Name() string       { return b.name }
func (b builtin) ChecksAbsent() bool { return b.absent }

func (b builtin) Validate(ctx context.Context, in Input) Outcome {
	return b.check(ctx, in)
}

// builtinRules lists the rules every NewRegistry starts with.
func builtinRules() []builtin {
	return []builtin{
		// presence
		{name: RuleRequired, absent: true, check: checkRequired},
		{name: RulePresent, absent: true, check: checkPresent},
		{name: RuleFilled, check: checkFilled},
		{name: RuleNullable, check: checkNullable},
		{name: RuleAccepted, check: checkAccepted},

		// types
		{name: RuleString, check: checkString},
		{name: RuleInteger, check: checkInteger},
		{name: RuleFloat, check: checkFloat},
		{name: RuleNumeric, check: checkNumeric},
		{name: RuleBoolean, check: checkBoolean},
		{name: RuleArray, check: checkArray},
		{name: RuleCallable, check: checkCallable},
		{name: RuleFunction, check: checkFunction},
		{name: RuleClass, check: checkClass},
		{name: RuleCallback, check: checkCallback},

		// strings
		{name: RuleAlpha, check: checkAlpha},
		{name: RuleAlphaDash, check: checkAlphaDash},
		{name: RuleAlphaNum, check: checkAlphaNum},
		{name: RuleLowercase, check: checkLowercase},
		{name: RuleUppercase, check: checkUppercase},
		{name: RuleNoWhitespace, check: checkNoWhitespace},
		{name: RuleDigits, check: checkDigits},
		{name: RuleRegex, check: checkRegex},

		// sizes
		{name: RuleMin, absent: true, check: checkMin},
		{name: RuleMax, absent: true, check: checkMax},
		{name: RuleSize, absent: true, check: checkSize},
		{name: RuleBetween, absent: true, check: checkBetween},

		// formats
		{name: RuleEmail, check: checkEmail},
		{name: RuleURL, check: checkURL},
		{name: RuleIP, check: checkIP},
		{name: RuleJSON, check: checkJSON},
		{name: RuleActiveURL, check: checkActiveURL},
		{name: RuleUUID, check: checkUUID},
		{name: RulePhone, check: checkPhone},

		// dates
		{name: RuleDate, check: checkDate},
		{name: RuleDateFormat, check: checkDateFormat},
		{name: RuleAfter, check: checkAfter},
		{name: RuleBefore, check: checkBefore},

		// collections and cross-field
		{name: RuleDistinct, check: checkDistinct},
		{name: RuleIn, check: checkIn},
		{name: RuleSame, check: checkSame},
		{name: RuleDifferent, check: checkDifferent},
		{name: RuleConfirmed, check: checkConfirmed},

		// uploads
		{name: RuleFile, absent: true, check: checkFile},
		{name: RuleImage, absent: true, check: checkImage},
		{name: RuleMIMETypes, absent: true, check: checkMIMETypes},
		{name: RuleDimensions, absent: true, check: checkDimensions},
	}
}

func registerBuiltins(r *Registry) {
	for _, b := range builtinRules() {
		r.MustRegisterAs(b.name, b)
	}
}

func checksAbsent(rule Rule) bool {
	c, ok := rule.(AbsentChecker)
	return ok && c.ChecksAbsent()
}
