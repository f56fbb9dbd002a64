package signature

import (
	"fmt"
	"strings"
)

const (
	voidKeyword = "void"
	wildcardAlt = "*"
)

// Token is a single type reference. An empty Name is a wildcard.
type Token struct {
	Name     string
	Nullable bool
}

// Wildcard reports whether the token matches any type.
func (t Token) Wildcard() bool {
	return t.Name == ""
}

func (t Token) String() string {
	if t.Wildcard() {
		return ""
	}
	if t.Nullable {
		return "?" + t.Name
	}
	return t.Name
}

// Param is a positional parameter of a prototype.
type Param struct {
	Type     Token
	Optional bool
}

func (p Param) String() string {
	if p.Optional {
		return p.Type.String() + "?"
	}
	return p.Type.String()
}

// ReturnKind tells how the return side of a prototype is constrained.
type ReturnKind uint8

const (
	// ReturnAny is the wildcard return: anything, including nothing.
	ReturnAny ReturnKind = iota
	// ReturnVoid means no results.
	ReturnVoid
	// ReturnTyped means one or more typed results listed in Return.Types.
	ReturnTyped
)

// Return describes the results of a prototype.
type Return struct {
	Kind  ReturnKind
	Types []Token
}

func (r Return) String() string {
	switch r.Kind {
	case ReturnVoid:
		return voidKeyword
	case ReturnTyped:
		parts := make([]string, len(r.Types))
		for i, t := range r.Types {
			parts[i] = t.String()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// Prototype is the canonical description of a callable's parameters and results.
type Prototype struct {
	Params []Param
	Return Return
}

// String renders the canonical text form. Wildcard parameters render as empty
// tokens, except a lone wildcard parameter which renders as "*" so it stays
// distinguishable from an empty parameter list.
func (p Prototype) String() string {
	var sb strings.Builder
	if len(p.Params) == 1 && p.Params[0].Type.Wildcard() {
		sb.WriteString(wildcardAlt)
		if p.Params[0].Optional {
			sb.WriteByte('?')
		}
	} else {
		for i, param := range p.Params {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(param.String())
		}
	}
	sb.WriteByte('=')
	sb.WriteString(p.Return.String())
	return sb.String()
}

// Required returns the number of non-optional parameters.
func (p Prototype) Required() int {
	n := 0
	for _, param := range p.Params {
		if !param.Optional {
			n++
		}
	}
	return n
}

// Parse reads a prototype in the "params=return" form. A missing "=" leaves
// the return side as a wildcard.
func Parse(s string) (Prototype, error) {
	params, ret, _ := strings.Cut(s, "=")

	var proto Prototype
	if strings.TrimSpace(params) != "" || strings.Contains(params, ",") {
		for _, raw := range splitTopLevel(params) {
			param, err := parseParam(raw)
			if err != nil {
				return Prototype{}, fmt.Errorf("%w: %q: %v", ErrInvalidPrototype, s, err)
			}
			proto.Params = append(proto.Params, param)
		}
	}

	r, err := parseReturn(ret)
	if err != nil {
		return Prototype{}, fmt.Errorf("%w: %q: %v", ErrInvalidPrototype, s, err)
	}
	proto.Return = r

	return proto, nil
}

// MustParse is like Parse but panics on error. Intended for package-level prototypes.
func MustParse(s string) Prototype {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseParam(raw string) (Param, error) {
	raw = strings.TrimSpace(raw)

	var p Param
	if strings.HasSuffix(raw, "?") {
		p.Optional = true
		raw = raw[:len(raw)-1]
	}

	tok, err := parseToken(raw)
	if err != nil {
		return Param{}, err
	}
	if tok.Name == voidKeyword {
		return Param{}, fmt.Errorf("void is not a parameter type")
	}
	p.Type = tok
	return p, nil
}

func parseToken(raw string) (Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == wildcardAlt {
		return Token{}, nil
	}

	var tok Token
	if strings.HasPrefix(raw, "?") {
		tok.Nullable = true
		raw = strings.TrimSpace(raw[1:])
		if raw == "" || raw == wildcardAlt {
			return Token{}, fmt.Errorf("nullable marker without a type")
		}
	}
	if strings.ContainsAny(raw, "?=") {
		return Token{}, fmt.Errorf("unexpected character in type %q", raw)
	}
	tok.Name = raw
	return tok, nil
}

func parseReturn(raw string) (Return, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "", wildcardAlt:
		return Return{Kind: ReturnAny}, nil
	case voidKeyword:
		return Return{Kind: ReturnVoid}, nil
	}

	parts := splitTopLevel(raw)
	types := make([]Token, 0, len(parts))
	for _, part := range parts {
		tok, err := parseToken(part)
		if err != nil {
			return Return{}, err
		}
		if tok.Name == voidKeyword {
			return Return{}, fmt.Errorf("void cannot be combined with other results")
		}
		types = append(types, tok)
	}
	return Return{Kind: ReturnTyped, Types: types}, nil
}

// splitTopLevel splits on commas that are not nested inside (), [] or {}.
// Go type strings such as "func(int, string) error" keep their commas.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
