// Package logger provides a context-aware wrapper around Go's slog package
// with functional options, attribute helpers for the validation domain and
// an environment-driven Config.
//
// New builds a JSON or text slog.Handler. Registered ContextExtractor
// callbacks add attributes from the record's context, such as the request id.
//
// # Usage
//
//	opts, err := logger.FromConfig(cfg.Log)
//	if err != nil {
//	    return err
//	}
//	log := logger.New(opts...)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "rule failed",
//	    logger.Field("email"),
//	    logger.Rule("email"),
//	)
//
// # Configuration
//
//   - WithEnvironment sets per-environment defaults.
//   - WithFormat / WithTextFormatter / WithJSONFormatter override the output format.
//   - WithLevel sets a custom slog.Level; ParseLevel reads one from text.
//   - WithAttr attaches static attributes; WithSource records call sites.
//   - WithContextExtractors inject attributes from context.
//
// Error and Errors return an empty attribute for nil errors, so
// log.Info("done", logger.Error(err)) needs no nil check.
package logger
