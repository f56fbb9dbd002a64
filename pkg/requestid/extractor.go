package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// LogExtractor adds the request ID to log records, for use with
// logger.WithContextExtractors.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
