package validator

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dmitrymomot/rulekit/pkg/cache"
)

var patterns = cache.NewLRU[string, *regexp.Regexp](512)

// checkRegex matches the value, rendered as text, against a delimited
// pattern such as /^\d+$/i. Supported flags are i, m, s and U; u is accepted
// and ignored.
func checkRegex(_ context.Context, in Input) Outcome {
	re, err := compilePattern(in.Arg(0))
	if err != nil {
		return Invalid(err)
	}
	s, ok := scalarString(in.Value)
	return Check(ok && re.MatchString(s))
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patterns.Get(p); ok {
		return re, nil
	}

	closer, ok := regexDelimiter(p)
	if !ok {
		return nil, fmt.Errorf("%w: pattern %q has no delimiter", ErrInvalidArgument, p)
	}
	body, flags, ok := splitDelimited(p, closer)
	if !ok {
		return nil, fmt.Errorf("%w: pattern %q is not terminated", ErrInvalidArgument, p)
	}

	var prefix []byte
	for i := 0; i < len(flags); i++ {
		switch f := flags[i]; f {
		case 'i', 'm', 's', 'U':
			prefix = append(prefix, f)
		case 'u':
		default:
			return nil, fmt.Errorf("%w: unsupported regex flag %q", ErrInvalidArgument, f)
		}
	}
	if len(prefix) > 0 {
		body = "(?" + string(prefix) + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	patterns.Put(p, re)
	return re, nil
}
