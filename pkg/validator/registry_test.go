package validator_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	pass := validator.RuleFunc(func(context.Context, validator.Input) validator.Outcome {
		return validator.Pass()
	})

	t.Run("holds every built-in rule", func(t *testing.T) {
		t.Parallel()

		r := validator.NewRegistry()
		for _, name := range []string{"accepted", "activeurl", "after", "alpha", "alphadash", "alphanum", "array",
			"before", "between", "boolean", "callable", "callback", "class", "confirmed", "date", "dateformat",
			"different", "digits", "dimensions", "distinct", "email", "file", "filled", "float", "function",
			"image", "in", "integer", "ip", "json", "lowercase", "max", "mimetypes", "min", "nowhitespace",
			"nullable", "numeric", "phone", "present", "regex", "required", "same", "size", "string",
			"uppercase", "url", "uuid"} {
			_, err := r.Resolve(name)
			assert.NoError(t, err, name)
		}
	})

	t.Run("starts empty when asked", func(t *testing.T) {
		t.Parallel()

		r := validator.NewEmptyRegistry()

		assert.Empty(t, r.Names())
		_, err := r.Resolve("string")
		assert.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("resolves names case-insensitively", func(t *testing.T) {
		t.Parallel()

		r := validator.NewEmptyRegistry()
		require.NoError(t, r.RegisterAs("Even", pass))

		_, err := r.Resolve("EVEN")
		assert.NoError(t, err)
		assert.Equal(t, []string{"even"}, r.Names())
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		t.Parallel()

		r := validator.NewEmptyRegistry()

		assert.ErrorIs(t, r.RegisterAs("", pass), validator.ErrInvalidRule)
		assert.ErrorIs(t, r.RegisterAs("a|b", pass), validator.ErrInvalidRule)
		assert.ErrorIs(t, r.RegisterAs("a:b", pass), validator.ErrInvalidRule)
		assert.ErrorIs(t, r.RegisterAs("ok", nil), validator.ErrInvalidRule)
		assert.ErrorIs(t, r.Register(nil), validator.ErrInvalidRule)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		t.Parallel()

		r := validator.NewRegistry()

		assert.ErrorIs(t, r.RegisterAs("string", pass), validator.ErrRuleExists)
		assert.Panics(t, func() { r.MustRegisterAs("string", pass) })
	})

	t.Run("registers types by their element type", func(t *testing.T) {
		t.Parallel()

		r := validator.NewEmptyRegistry()
		require.NoError(t, r.RegisterType(`\App\Point`, reflect.TypeOf(&point{})))

		got, ok := r.LookupType(`App\Point`)
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(point{}), got)

		name, ok := r.TypeName(reflect.TypeOf(&point{}))
		assert.True(t, ok)
		assert.Equal(t, `App\Point`, name)

		assert.ErrorIs(t, r.RegisterType("App\\Point", reflect.TypeOf(point{})), validator.ErrRuleExists)
		assert.ErrorIs(t, r.RegisterType("", reflect.TypeOf(point{})), validator.ErrInvalidRule)
	})

	t.Run("registers functions", func(t *testing.T) {
		t.Parallel()

		r := validator.NewEmptyRegistry()
		require.NoError(t, r.RegisterFunc("double", func(n int) int { return n * 2 }))

		fn, ok := r.LookupFunc("double")
		require.True(t, ok)
		assert.Equal(t, 4, fn.(func(int) int)(2))

		assert.ErrorIs(t, r.RegisterFunc("double", func() {}), validator.ErrRuleExists)
		assert.ErrorIs(t, r.RegisterFunc("five", 5), validator.ErrInvalidRule)
		assert.ErrorIs(t, r.RegisterFunc("nil", (func())(nil)), validator.ErrInvalidRule)
	})

	t.Run("knows the type rules", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"string", "integer", "array", "boolean", "float", "callable", "function", "class"} {
			assert.True(t, validator.IsTypeRule(name), name)
		}
		assert.False(t, validator.IsTypeRule("numeric"))
		assert.False(t, validator.IsTypeRule("bool"))
	})
}
