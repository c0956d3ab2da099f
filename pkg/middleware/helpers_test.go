package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLogger(w *bytes.Buffer) *slog.Logger {
	return logger.NewWithWriter("test-svc", "info", w)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

// serveWithChi mounts handler on GET pattern behind mw so RouteContext is set.
func serveWithChi(mw func(http.Handler) http.Handler, pattern string, handler http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get(pattern, handler)
	return r
}
