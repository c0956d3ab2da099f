package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
)

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, trace_id and span_id, then stores it in context via
// logger.NewContext. Handlers retrieve it with logger.FromContext(ctx).
//
// Mount it after RequestLogging and Tracing so both IDs are present.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
