package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"validation": map[string]any{
				"min_numeric": "Is smaller than %{0}",
				"required":    "Is required",
			},
			"flat.key": "Flat %{name}",
		},
		"de": {
			"validation": map[string]any{
				"required": "Ist erforderlich",
			},
		},
	}}, opts...)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	t.Run("resolves nested keys and substitutes placeholders", func(t *testing.T) {
		assert.Equal(t, "Is smaller than 16", tr.T("en", "validation.min_numeric", map[string]string{"0": "16"}))
	})

	t.Run("resolves keys containing dots literally", func(t *testing.T) {
		assert.Equal(t, "Flat value", tr.T("en", "flat.key", map[string]string{"name": "value"}))
	})

	t.Run("keeps unknown placeholders", func(t *testing.T) {
		assert.Equal(t, "Is smaller than %{0}", tr.T("en", "validation.min_numeric", nil))
	})

	t.Run("uses the requested language", func(t *testing.T) {
		assert.Equal(t, "Ist erforderlich", tr.T("de", "validation.required", nil))
	})

	t.Run("falls back to the default language for unloaded languages", func(t *testing.T) {
		assert.Equal(t, "Is required", tr.T("fr", "validation.required", nil))
	})

	t.Run("falls back to the key when missing", func(t *testing.T) {
		assert.Equal(t, "missing.key", tr.T("en", "missing.key", nil))
		assert.Equal(t, "test", tr.T("de", "test", nil))
	})

	t.Run("returns empty string without key fallback", func(t *testing.T) {
		strict := newTranslator(t, i18n.WithFallbackToKey(false))
		assert.Empty(t, strict.T("en", "missing.key", nil))
	})

	t.Run("does not treat maps as templates", func(t *testing.T) {
		assert.Equal(t, "validation", tr.T("en", "validation", nil))
		assert.False(t, tr.Has("en", "validation"))
		assert.True(t, tr.Has("en", "validation.required"))
	})
}

func TestTranslator_Messages(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	de := tr.Messages("de")

	assert.Equal(t, "de", de.Lang())
	assert.Equal(t, "Ist erforderlich", de.Translate("validation.required", nil))
	assert.Equal(t, []string{"de", "en"}, tr.Languages())
}

func TestTranslator_Merge(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	tr.Merge(map[string]map[string]any{
		"en": {"validation": map[string]any{"required": "Must be given"}},
		"fr": {"validation": map[string]any{"required": "Est requis"}},
	})

	assert.Equal(t, "Must be given", tr.T("en", "validation.required", nil))
	assert.Equal(t, "Is smaller than 1", tr.T("en", "validation.min_numeric", map[string]string{"0": "1"}))
	assert.Equal(t, "Est requis", tr.T("fr", "validation.required", nil))
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil adapter", func(t *testing.T) {
		_, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("rejects empty language codes", func(t *testing.T) {
		_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{"": {}}})
		assert.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"lang/en.yaml":   {Data: []byte("en:\n  validation:\n    required: Is required\n")},
		"lang/de.json":   {Data: []byte(`{"de":{"validation":{"required":"Ist erforderlich"}}}`)},
		"lang/extra.yml": {Data: []byte("en:\n  validation:\n    filled: Is empty\n")},
		"lang/README.md": {Data: []byte("ignored")},
	}

	t.Run("merges every supported file", func(t *testing.T) {
		tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(fsys, "lang"))
		require.NoError(t, err)

		assert.Equal(t, "Is required", tr.T("en", "validation.required", nil))
		assert.Equal(t, "Is empty", tr.T("en", "validation.filled", nil))
		assert.Equal(t, "Ist erforderlich", tr.T("de", "validation.required", nil))
	})

	t.Run("fails on a directory without catalogs", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(fstest.MapFS{"x/readme.txt": {Data: []byte("x")}}, "x").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslationFiles)
	})

	t.Run("reports parse errors", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(fstest.MapFS{"bad.json": {Data: []byte("{")}}, ".").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("honours cancelled contexts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSAdapter(fsys, "lang").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en:\n  hello: Hello %{name}\n"), 0o600))

	t.Run("loads a single file", func(t *testing.T) {
		tr, err := i18n.NewTranslator(context.Background(), i18n.NewFileAdapter(nil, path))
		require.NoError(t, err)
		assert.Equal(t, "Hello Ana", tr.T("en", "hello", map[string]string{"name": "Ana"}))
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(nil, filepath.Join(dir, "en.toml")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrUnsupportedFormat)
	})

	t.Run("reports missing files", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(nil, filepath.Join(dir, "missing.yaml")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("rejects catalogs that are not keyed by language", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("en: just a string\n"), 0o600))
		_, err := i18n.NewFileAdapter(nil, bad).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a 1 b %{2}", i18n.Format("a %{0} b %{2}", map[string]string{"0": "1"}))
	assert.Equal(t, "plain", i18n.Format("plain", map[string]string{"0": "1"}))
}
