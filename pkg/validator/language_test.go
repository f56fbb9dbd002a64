package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func TestBundled(t *testing.T) {
	t.Parallel()

	tr, err := validator.Bundled()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"de", "en"}, tr.Languages())

	for _, rule := range validator.NewRegistry().Names() {
		if rule == validator.RuleMin || rule == validator.RuleMax || rule == validator.RuleSize || rule == validator.RuleBetween {
			rule += "_numeric"
		}
		for _, lang := range tr.Languages() {
			assert.True(t, tr.Has(lang, "validation."+rule), "%s: %s", lang, rule)
		}
	}
}

func TestLanguageFunc(t *testing.T) {
	t.Parallel()

	lang := validator.LanguageFunc(func(key string, r map[string]string) string {
		return key + ":" + r["0"]
	})

	assert.Equal(t, "validation.min:3", lang.Translate("validation.min", map[string]string{"0": "3"}))
	assert.Equal(t, "Ist erforderlich", validator.InLanguageOf("de").Translate("validation.required", nil))
	assert.Equal(t, "Is required", validator.English().Translate("validation.required", nil))
}

func TestLoadTranslations(t *testing.T) {
	t.Parallel()

	tr, err := validator.LoadTranslations(context.Background(), nil, &i18n.MapAdapter{Data: map[string]map[string]any{
		"de": {"validation": map[string]any{"required": "Pflichtfeld"}},
		"fr": {"validation": map[string]any{"required": "Est requis"}},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "en", "fr"}, tr.Languages())
	assert.Equal(t, "Pflichtfeld", tr.T("de", "validation.required", nil))
	assert.Equal(t, "Muss mindestens 3 sein", tr.T("de", "validation.min_numeric", map[string]string{"0": "3"}))
	assert.Equal(t, "Est requis", tr.Messages("fr").Translate("validation.required", nil))

	assert.Equal(t, "Ist erforderlich", validator.InLanguageOf("de").Translate("validation.required", nil))

	_, err = validator.LoadTranslations(context.Background(), i18n.NewFSAdapter(nil, "."))
	assert.ErrorIs(t, err, i18n.ErrNilAdapter)
}
