// Package signature encodes Go function signatures as compact textual
// prototypes and checks a candidate function against a declared prototype.
//
// # Prototype format
//
// A prototype is written as
//
//	params "=" return
//
// where params is a comma separated list of parameter tokens and return is a
// single type, a comma separated list of types (multi-value results), the
// keyword void, or empty.
//
// Each parameter token has the shape [?]type[?]:
//   - a leading ? marks the type as nullable (a pointer in Go terms)
//   - a trailing ? marks the parameter as optional (a variadic tail in Go)
//   - an empty token, or *, is a wildcard that matches any type
//
// Examples:
//
//	"string,int=bool"     func(string, int) bool
//	"?string?=?int"       func(...*string) *int
//	",=void"              func(any, any)
//	"=error"              func() error
//
// # Usage
//
//	declared, err := signature.Parse("?string?=?int")
//	if err != nil {
//	    return err
//	}
//	actual, err := signature.Describe(fn)
//	if err != nil {
//	    return err // fn is not a function or carries no type information
//	}
//	if err := signature.Match(declared, actual); err != nil {
//	    var mismatch *signature.MismatchError
//	    if errors.As(err, &mismatch) {
//	        log.Printf("expected %s, got %s", mismatch.Expected, mismatch.Actual)
//	    }
//	}
//
// # Matching rules
//
// The candidate may declare fewer parameters than the prototype; parameters
// beyond the prototype must be optional. At every shared position the tokens
// must be equal, unless either side is a wildcard. Nullability is part of the
// token, so "?string" and "string" never match each other. Return types are
// compared exactly unless the declared return is a wildcard, and void only
// matches void.
package signature
