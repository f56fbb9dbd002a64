// Package validator checks a map of named values against rule strings such
// as "string|alpha|required" and reports the first failed rule of every
// field as a translated message.
//
// # Rule strings
//
// A specification is a pipe-separated list of rules, each written as name or
// name:arguments. Arguments are comma-separated; `\,` and `\|` are literal.
// Some rules read their argument whole: regex:/a|b/i, class:Name=object,
// callback:?string?=?int, array:integer, dateformat:d.m.Y, after:2010-01-01.
// Unknown rule names surface when the rule runs, as a *ConfigError.
//
// # Evaluation
//
// Make creates a Session; the first call to Passes, Fails, Errors, Failures,
// Validate or Throw evaluates it once. For every field with a specification
// the rules run in order and the first failure wins. nullable stops the chain
// for absent or nil values. Rules other than required, present, the upload
// rules and the size rules are skipped for absent fields. In strict mode,
// fields without a specification fail with validation.unknown_field.
//
// Messages are rendered through a Language at query time, so SetLanguage
// applies even after evaluation. The bundled catalogs (English and German)
// live in lang/ and are loaded with package i18n.
//
// # Usage
//
//	v := validator.New(validator.WithLogger(log))
//
//	s := v.Make(fields, validator.Rules{
//		"age":      "integer|min:16|max:40",
//		"password": "string|min:8|confirmed",
//		"avatar":   "nullable|image|max:512",
//	}, validator.WithFiles(file.NewMultipartSource(r.MultipartForm)))
//
//	if err := s.Validate(); err != nil {
//		if validator.IsConfigError(err) {
//			// broken rule setup
//		}
//		for _, f := range validator.ExtractValidationErrors(err) {
//			fmt.Println(f.Field, f.Message)
//		}
//	}
//
// # Custom rules
//
// A Rule implements Validate(ctx, Input) Outcome. Register it with
// Validator.AddRule, which names it after its Name method or its type, or
// with Registry.RegisterAs for RuleFunc values. Types addressed by the class
// rule and named functions for callable and callback are registered with
// Registry.RegisterType and Registry.RegisterFunc.
package validator
