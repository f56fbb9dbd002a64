package signature_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/signature"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses nullable optional parameter and nullable return", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse("?string?=?int")
		require.NoError(t, err)
		require.Len(t, p.Params, 1)
		assert.Equal(t, signature.Token{Name: "string", Nullable: true}, p.Params[0].Type)
		assert.True(t, p.Params[0].Optional)
		assert.Equal(t, signature.ReturnTyped, p.Return.Kind)
		assert.Equal(t, []signature.Token{{Name: "int", Nullable: true}}, p.Return.Types)
		assert.Equal(t, 0, p.Required())
	})

	t.Run("empty parameter list and void return", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse("=void")
		require.NoError(t, err)
		assert.Empty(t, p.Params)
		assert.Equal(t, signature.ReturnVoid, p.Return.Kind)
	})

	t.Run("missing equals sign leaves return as wildcard", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse("string,int")
		require.NoError(t, err)
		assert.Len(t, p.Params, 2)
		assert.Equal(t, 2, p.Required())
		assert.Equal(t, signature.ReturnAny, p.Return.Kind)
	})

	t.Run("empty tokens are wildcards", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse(",=?int")
		require.NoError(t, err)
		require.Len(t, p.Params, 2)
		assert.True(t, p.Params[0].Type.Wildcard())
		assert.True(t, p.Params[1].Type.Wildcard())
	})

	t.Run("keeps commas nested in type names", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse("func(int, string) error,map[string]int=error")
		require.NoError(t, err)
		require.Len(t, p.Params, 2)
		assert.Equal(t, "func(int, string) error", p.Params[0].Type.Name)
		assert.Equal(t, "map[string]int", p.Params[1].Type.Name)
	})

	t.Run("multiple results", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse("string=int,error")
		require.NoError(t, err)
		assert.Equal(t, []signature.Token{{Name: "int"}, {Name: "error"}}, p.Return.Types)
	})

	t.Run("rejects malformed prototypes", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"void=int", "string=void,int", "str?ing=int", "??=int"} {
			_, err := signature.Parse(in)
			assert.ErrorIs(t, err, signature.ErrInvalidPrototype, in)
		}
	})
}

func TestPrototypeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"=",
		"=void",
		"=int",
		"*=int",
		"*?=void",
		"string,int=bool",
		"?string?=?int",
		",=void",
		",?string,=",
		"string=int,error",
		"time.Time,?time.Duration?=string",
	} {
		t.Run(strconv.Quote(in), func(t *testing.T) {
			t.Parallel()

			p, err := signature.Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, p.String())

			again, err := signature.Parse(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, again)
		})
	}

	t.Run("wildcard spellings normalize to the empty token", func(t *testing.T) {
		t.Parallel()

		p, err := signature.Parse("*,*=*")
		require.NoError(t, err)
		assert.Equal(t, ",=", p.String())
	})
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   any
		want string
	}{
		{"variadic pointer parameter and pointer result", func(...*string) *int { return nil }, "?string?=?int"},
		{"no parameters and no results", func() {}, "=void"},
		{"plain parameters", func(string, int) bool { return false }, "string,int=bool"},
		{"empty interface parameters are wildcards", func(any, any) *int { return nil }, ",=?int"},
		{"single wildcard parameter", func(any) {}, "*=void"},
		{"any result is a wildcard return", func(string) any { return nil }, "string="},
		{"multiple results", func(string) (int, error) { return 0, nil }, "string=int,error"},
		{"named types", func(time.Time, *time.Duration) string { return "" }, "time.Time,?time.Duration=string"},
		{"function typed parameter", func(func(int, string) error) error { return nil }, "func(int, string) error=error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := signature.Describe(tt.fn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())

			parsed, err := signature.Parse(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, parsed)
		})
	}

	t.Run("rejects values that are not functions", func(t *testing.T) {
		t.Parallel()

		var nilFn func()
		for _, v := range []any{nil, 5, "strlen", nilFn} {
			_, err := signature.Describe(v)
			assert.ErrorIs(t, err, signature.ErrNotCallable)
		}
	})

	t.Run("rejects signatures without type information", func(t *testing.T) {
		t.Parallel()

		_, err := signature.Describe(func() any { return nil })
		assert.ErrorIs(t, err, signature.ErrNoSignature)

		_, err = signature.Describe(func(any, ...any) any { return nil })
		assert.ErrorIs(t, err, signature.ErrNoSignature)
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		fn       any
		ok       bool
	}{
		{"nullable optional string returning nullable int", "?string?=?int", func(...*string) *int { return nil }, true},
		{"void function", "=void", func() {}, true},
		{"wildcard parameters", ",=?int", func(any, any) *int { return nil }, true},
		{"wildcard parameters accept typed candidate", ",=?int", func(string, int) *int { return nil }, true},
		{"typed declaration accepts untyped candidate parameter", "string,int=bool", func(any, int) bool { return false }, true},
		{"fewer parameters than declared", "?string?=int", func() int { return 0 }, true},
		{"extra optional parameter", "string=void", func(string, ...int) {}, true},
		{"wildcard return accepts any result", "string", func(string) (int, error) { return 0, nil }, true},
		{"wildcard return accepts void", "string=", func(string) {}, true},
		{"more required parameters than declared", "?string?=?int", func(*string, int) *int { return nil }, false},
		{"parameter type mismatch", "?string?=?int", func(...*int) *int { return nil }, false},
		{"nullable declared rejects non-nullable candidate", "?string", func(string) {}, false},
		{"non-nullable declared rejects nullable candidate", "string=void", func(*string) {}, false},
		{"void declared rejects undeclared return", "string=void", func(string) any { return nil }, false},
		{"void declared rejects typed return", "=void", func() int { return 0 }, false},
		{"nullable return rejects non-nullable", "string=?int", func(string) int { return 0 }, false},
		{"non-nullable return rejects nullable", "string=int", func(string) *int { return nil }, false},
		{"typed return rejects void", "=int", func() {}, false},
		{"result count mismatch", "=int,error", func() int { return 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := signature.Matches(tt.declared, tt.fn)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, signature.ErrMismatch)

			var mismatch *signature.MismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Contains(t, err.Error(), mismatch.Expected.String())
			assert.Contains(t, err.Error(), mismatch.Actual.String())
		})
	}

	t.Run("derived prototype matches itself", func(t *testing.T) {
		t.Parallel()

		fns := []any{
			func(...*string) *int { return nil },
			func() {},
			func(string, any) (int, error) { return 0, nil },
			func(any) {},
			func(*time.Time, ...int) string { return "" },
		}
		for _, fn := range fns {
			p, err := signature.Describe(fn)
			require.NoError(t, err)
			assert.NoError(t, signature.Match(p, p), p.String())
		}
	})

	t.Run("rejects candidates with more required parameters than declared", func(t *testing.T) {
		t.Parallel()

		declared := signature.MustParse("string,int=void")
		assert.NoError(t, signature.Matches(declared.String(), func(string, int) {}))
		assert.NoError(t, signature.Matches(declared.String(), func(string) {}))
		assert.NoError(t, signature.Matches(declared.String(), func() {}))
		assert.Error(t, signature.Matches(declared.String(), func(string, int, bool) {}))
	})

	t.Run("propagates describe errors", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, signature.Matches("=int", 42), signature.ErrNotCallable)
		assert.ErrorIs(t, signature.Matches("=int", func() any { return nil }), signature.ErrNoSignature)
		assert.ErrorIs(t, signature.Matches("??=int", func() int { return 0 }), signature.ErrInvalidPrototype)
	})
}
