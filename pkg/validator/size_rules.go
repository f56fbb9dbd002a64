package validator

import (
	"context"
	"math"
	"strconv"
	"unicode/utf8"
)

// Measurement kinds, used as message key suffixes: validation.min_string etc.
const (
	kindNumeric = "numeric"
	kindString  = "string"
	kindArray   = "array"
	kindFile    = "file"
)

// measurement is the size of a value as the min, max, size and between rules
// see it.
type measurement struct {
	size float64
	kind string
}

// measure sizes the value: numbers by value, strings by rune count, arrays
// by length and uploads by kilobytes. A string counts as a number when the
// chain declares integer, float or numeric. skip is true for absent fields
// without an upload.
func measure(ctx context.Context, in Input) (m measurement, skip, ok bool) {
	if info, found := in.Upload(ctx); found {
		if !info.OK() {
			return m, false, false
		}
		return measurement{size: info.Kilobytes(), kind: kindFile}, false, true
	}
	if !in.Present {
		return m, true, false
	}

	v := indirect(in.Value)
	if isNil(v) {
		return m, false, false
	}
	if n, isNum := number(v); isNum {
		return measurement{size: n, kind: kindNumeric}, false, true
	}
	if s, isStr := v.(string); isStr {
		if in.Has(RuleInteger) || in.Has(RuleFloat) || in.Has(RuleNumeric) {
			if n, isNum := parseNumber(s); isNum {
				return measurement{size: n, kind: kindNumeric}, false, true
			}
		}
		return measurement{size: float64(utf8.RuneCountInString(s)), kind: kindString}, false, true
	}
	if b, isBytes := v.([]byte); isBytes {
		return measurement{size: float64(len(b)) / 1024, kind: kindFile}, false, true
	}
	if items, isColl := collection(v); isColl {
		return measurement{size: float64(len(items)), kind: kindArray}, false, true
	}
	return m, false, false
}

func sizeArg(in Input, i int) (float64, bool) {
	f, err := strconv.ParseFloat(in.Arg(i), 64)
	return f, err == nil
}

// compareSize measures the value and applies cmp against the numeric
// arguments. Failures use validation.<rule>_<kind>.
func compareSize(ctx context.Context, in Input, rule string, argc int, cmp func(m measurement, bounds []float64) bool) Outcome {
	if len(in.Args) < argc {
		return Invalidf("%s needs %d arguments", rule, argc)
	}
	bounds := make([]float64, argc)
	for i := range bounds {
		b, ok := sizeArg(in, i)
		if !ok {
			return Invalidf("%s argument %q is not a number", rule, in.Arg(i))
		}
		bounds[i] = b
	}

	m, skip, ok := measure(ctx, in)
	switch {
	case skip:
		return Pass()
	case !ok:
		return Fail("validation." + rule + "_" + kindNumeric)
	case cmp(m, bounds):
		return Pass()
	}
	return Fail("validation." + rule + "_" + m.kind)
}

func checkMin(ctx context.Context, in Input) Outcome {
	return compareSize(ctx, in, RuleMin, 1, func(m measurement, b []float64) bool {
		return m.size >= b[0]
	})
}

func checkMax(ctx context.Context, in Input) Outcome {
	return compareSize(ctx, in, RuleMax, 1, func(m measurement, b []float64) bool {
		return m.size <= b[0]
	})
}

// checkSize compares exactly; uploads compare their size rounded to whole
// kilobytes.
func checkSize(ctx context.Context, in Input) Outcome {
	return compareSize(ctx, in, RuleSize, 1, func(m measurement, b []float64) bool {
		if m.kind == kindFile {
			return math.Round(m.size) == b[0]
		}
		return m.size == b[0]
	})
}

func checkBetween(ctx context.Context, in Input) Outcome {
	return compareSize(ctx, in, RuleBetween, 2, func(m measurement, b []float64) bool {
		return m.size >= b[0] && m.size <= b[1]
	})
}
