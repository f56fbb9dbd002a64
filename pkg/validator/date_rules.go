package validator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order by the date, after and before rules.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseDate reads time.Time values and strings in one of dateLayouts.
func parseDate(v any) (time.Time, bool) {
	switch t := indirect(v).(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

func checkDate(_ context.Context, in Input) Outcome {
	_, ok := parseDate(in.Value)
	return Check(ok)
}

// checkDateFormat parses the value with a PHP-style format such as d.m.Y.
func checkDateFormat(_ context.Context, in Input) Outcome {
	if in.Arg(0) == "" {
		return Invalidf("dateformat needs a format")
	}
	layout, err := phpLayout(in.Arg(0))
	if err != nil {
		return Invalid(err)
	}
	s, ok := stringValue(in.Value)
	if !ok {
		return Outcome{}
	}
	_, err = time.Parse(layout, s)
	return Check(err == nil)
}

func checkAfter(_ context.Context, in Input) Outcome {
	return compareDate(in, func(v, bound time.Time) bool { return v.After(bound) })
}

func checkBefore(_ context.Context, in Input) Outcome {
	return compareDate(in, func(v, bound time.Time) bool { return v.Before(bound) })
}

// compareDate resolves the bound from the argument, either a date or the
// name of another field holding one.
func compareDate(in Input, cmp func(v, bound time.Time) bool) Outcome {
	arg := in.Arg(0)
	bound, ok := parseDate(arg)
	if !ok {
		other, found := in.Lookup(arg)
		if !found {
			return Invalidf("%q is neither a date nor a field", arg)
		}
		if bound, ok = parseDate(other); !ok {
			return Outcome{}
		}
	}

	v, ok := parseDate(in.Value)
	return Check(ok && cmp(v, bound))
}

// phpFormat maps PHP date format characters to Go layout elements.
var phpFormat = map[byte]string{
	'd': "02",
	'j': "2",
	'D': "Mon",
	'l': "Monday",
	'm': "01",
	'n': "1",
	'M': "Jan",
	'F': "January",
	'Y': "2006",
	'y': "06",
	'H': "15",
	'G': "15",
	'h': "03",
	'g': "3",
	'i': "04",
	's': "05",
	'v': "000",
	'u': "000000",
	'A': "PM",
	'a': "pm",
	'e': "MST",
	'T': "MST",
	'O': "-0700",
	'P': "-07:00",
	'c': time.RFC3339,
	'r': time.RFC1123Z,
}

// phpLayout converts a PHP date format into a Go time layout. A backslash
// escapes the next character.
func phpLayout(format string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == '\\' && i+1 < len(format) {
			i++
			b.WriteByte(format[i])
			continue
		}
		if layout, ok := phpFormat[c]; ok {
			b.WriteString(layout)
			continue
		}
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			return "", fmt.Errorf("%w: unsupported date format character %q", ErrInvalidArgument, c)
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}
