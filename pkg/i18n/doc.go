// Package i18n provides the message catalog used to render validation failures.
//
// A Translator holds translations for any number of languages, loaded once
// through a TranslationAdapter. Keys are dot separated and may address nested
// maps, so "validation.min_numeric" resolves to
//
//	en:
//	  validation:
//	    min_numeric: "Is smaller than %{0}"
//
// Placeholders use the `%{name}` form and are replaced from a map of
// parameters. Unknown placeholders are left untouched. When a key is missing
// the translator falls back to the key itself (configurable with
// WithFallbackToKey).
//
// # Adapters
//
// MapAdapter serves an in-memory catalog. FSAdapter reads every file under a
// directory of an fs.FS; use os.DirFS for the local file system or an
// embed.FS for catalogs compiled into the binary. NewFileAdapter loads a
// single file. The parser is picked from the file extension (.yaml, .yml,
// .json) unless one is supplied explicitly.
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(os.DirFS("translations"), "."),
//	    i18n.WithDefaultLanguage("en"),
//	    i18n.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	msg := tr.T("de", "validation.required", map[string]string{"field": "email"})
//
//	// Bind a language to get a value with a Translate(key, params) method.
//	en := tr.Messages("en")
//
// # Language negotiation
//
// Negotiate picks the best supported language for an Accept-Language header
// using golang.org/x/text/language matching, so "de-AT" resolves to "de" when
// only "de" is available. SetLocale and GetLocale carry the chosen language in
// a context.
package i18n
