package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Translator resolves message keys to localized templates and substitutes placeholders.
type Translator struct {
	mu            sync.RWMutex
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// NewTranslator loads translations through the adapter and applies options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, messages := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguage
		}
		if messages == nil {
			return nil, fmt.Errorf("%w: nil messages for %q", ErrInvalidCatalog, lang)
		}
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.Languages()))
	return t, nil
}

// Merge adds translations on top of the loaded catalog.
func (t *Translator) Merge(translations map[string]map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.translations == nil {
		t.translations = make(map[string]map[string]any)
	}
	for lang, messages := range translations {
		if t.translations[lang] == nil {
			t.translations[lang] = make(map[string]any)
		}
		mergeMaps(t.translations[lang], messages)
	}
}

// Languages returns the loaded language codes, sorted.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.translations))
}

// DefaultLanguage returns the language used when a requested one is not loaded.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Has reports whether key resolves to a string template for lang.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := lookup(t.translations[lang], key).(string)
	return ok
}

// T translates key for lang, substituting %{name} placeholders from params.
// An unloaded language falls back to the default language.
func (t *Translator) T(lang, key string, params map[string]string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages, ok := t.translations[lang]
	if !ok {
		messages = t.translations[t.defaultLang]
	}

	tmpl, ok := lookup(messages, key).(string)
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}

	return Format(tmpl, params)
}

// Messages binds the translator to one language.
func (t *Translator) Messages(lang string) Messages {
	return Messages{t: t, lang: lang}
}

// Messages is a Translator bound to a single language.
type Messages struct {
	t    *Translator
	lang string
}

// Translate renders key in the bound language.
func (m Messages) Translate(key string, params map[string]string) string {
	return m.t.T(m.lang, key, params)
}

// Lang returns the bound language.
func (m Messages) Lang() string {
	return m.lang
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Format replaces %{name} placeholders in tmpl. Unknown placeholders are kept.
func Format(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// lookup walks dot separated keys through nested maps.
func lookup(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	if v, ok := m[key]; ok {
		return v
	}

	var current any = m
	for part := range strings.SplitSeq(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = node[part]; !ok {
			return nil
		}
	}
	return current
}
