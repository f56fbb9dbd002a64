package validator

import (
	"context"
	"embed"
	"io/fs"
	"sync"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
)

// Language renders a message key with its replacements.
type Language interface {
	Translate(key string, replacements map[string]string) string
}

// LanguageFunc adapts a function to the Language interface.
type LanguageFunc func(key string, replacements map[string]string) string

func (f LanguageFunc) Translate(key string, replacements map[string]string) string {
	return f(key, replacements)
}

//go:embed lang/*.yaml
var translationFiles embed.FS

// Translations returns the bundled catalogs, one YAML file per language.
func Translations() fs.FS {
	sub, err := fs.Sub(translationFiles, "lang")
	if err != nil {
		panic(err)
	}
	return sub
}

var bundled = sync.OnceValues(func() (*i18n.Translator, error) {
	return i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(Translations(), "."))
})

// Bundled returns a translator over the bundled catalogs.
func Bundled() (*i18n.Translator, error) {
	return bundled()
}

// LoadTranslations returns a new translator over the bundled catalogs with
// the catalogs of extra merged on top, in order. Extra catalogs may add
// languages or override single messages.
func LoadTranslations(ctx context.Context, extra ...i18n.TranslationAdapter) (*i18n.Translator, error) {
	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(Translations(), "."))
	if err != nil {
		return nil, err
	}
	for _, adapter := range extra {
		if adapter == nil {
			continue
		}
		catalog, err := adapter.Load(ctx)
		if err != nil {
			return nil, err
		}
		tr.Merge(catalog)
	}
	return tr, nil
}

// English returns the bundled English messages.
func English() Language {
	return InLanguageOf("en")
}

// InLanguageOf returns the bundled messages of lang, falling back to English
// for languages that are not bundled.
func InLanguageOf(lang string) Language {
	t, err := bundled()
	if err != nil {
		return LanguageFunc(i18n.Format)
	}
	return t.Messages(lang)
}
