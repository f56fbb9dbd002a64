package validator

import (
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/cache"
)

// Invocation is one rule of a parsed specification.
type Invocation struct {
	Name     string
	Args     []string
	TypeRule bool
}

// Rules for which everything after the first colon is a single argument.
var wholeArgRules = map[string]bool{
	RuleCallback:   true,
	RuleArray:      true,
	RuleDateFormat: true,
	RuleAfter:      true,
	RuleBefore:     true,
}

// Parser compiles rule specifications and memoizes the result per distinct
// specification string. The returned slices are shared and must not be
// modified.
type Parser struct {
	specs *cache.LRU[string, []Invocation]
}

// DefaultParserCapacity bounds the number of memoized specifications.
const DefaultParserCapacity = 4096

// NewParser returns a parser remembering up to capacity specifications.
// A non-positive capacity selects DefaultParserCapacity.
func NewParser(capacity int) *Parser {
	if capacity <= 0 {
		capacity = DefaultParserCapacity
	}
	return &Parser{specs: cache.NewLRU[string, []Invocation](capacity)}
}

// Parse returns the invocations of spec.
func (p *Parser) Parse(spec string) []Invocation {
	if invs, ok := p.specs.Get(spec); ok {
		return invs
	}
	invs := ParseSpec(spec)
	p.specs.Put(spec, invs)
	return invs
}

// ParseSpec turns a pipe-delimited rule specification into invocations.
//
// Tokens are split on unescaped pipes and read as name or name:args. Arguments
// are split on unescaped commas; `\,` and `\|` stand for literal characters.
// A regex argument is taken verbatim, re-joining pipes that belong to the
// pattern. The class rule splits its argument on "=". Unknown rule names are
// kept; they are rejected when the rule is executed.
func ParseSpec(spec string) []Invocation {
	pieces := splitUnescaped(spec, '|')
	invs := make([]Invocation, 0, len(pieces))

	for i := 0; i < len(pieces); i++ {
		name, rest, _ := strings.Cut(pieces[i], ":")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		inv := Invocation{Name: name, TypeRule: IsTypeRule(name)}
		switch {
		case rest == "":
		case name == RuleRegex:
			for !regexClosed(rest) && i+1 < len(pieces) {
				i++
				rest += "|" + pieces[i]
			}
			inv.Args = []string{rest}
		case name == RuleClass:
			inv.Args = strings.SplitN(unescape(rest), "=", 2)
		case wholeArgRules[name]:
			inv.Args = []string{unescape(rest)}
		default:
			for _, arg := range splitUnescaped(rest, ',') {
				inv.Args = append(inv.Args, unescape(arg))
			}
		}
		invs = append(invs, inv)
	}
	return invs
}

// splitUnescaped splits s on sep, ignoring separators preceded by a backslash.
// Escapes are left in place.
func splitUnescaped(s string, sep byte) []string {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && s[i+1] == sep {
				i++
			}
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

var argUnescaper = strings.NewReplacer(`\,`, ",", `\|`, "|")

func unescape(s string) string {
	return argUnescaper.Replace(s)
}

// regexClosed reports whether a delimited pattern such as /a|b/i is complete.
// Patterns without a punctuation delimiter are always complete.
func regexClosed(p string) bool {
	closer, ok := regexDelimiter(p)
	if !ok {
		return true
	}
	_, _, closed := splitDelimited(p, closer)
	return closed
}

// regexDelimiter returns the closing delimiter of a delimited pattern.
func regexDelimiter(p string) (byte, bool) {
	if len(p) == 0 {
		return 0, false
	}
	switch open := p[0]; open {
	case '(':
		return ')', true
	case '{':
		return '}', true
	case '[':
		return ']', true
	case '<':
		return '>', true
	case '\\', ' ':
		return 0, false
	default:
		if isAlnum(open) || open >= 0x80 {
			return 0, false
		}
		return open, true
	}
}

// splitDelimited returns the pattern body and the trailing flags.
func splitDelimited(p string, closer byte) (body, flags string, ok bool) {
	end := strings.LastIndexByte(p, closer)
	if end <= 0 || p[end-1] == '\\' {
		return "", "", false
	}
	flags = p[end+1:]
	for i := 0; i < len(flags); i++ {
		if !isAlnum(flags[i]) {
			return "", "", false
		}
	}
	return p[1:end], flags, true
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
