package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"astrotrade/internal/logger"
	"astrotrade/internal/trace"
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

// observeMiddleware traces, logs and counts each request by route template.
func (s *Server) observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		ctx, span := trace.StartSpan(r.Context(), "http "+route)
		defer span.End()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		elapsed := time.Since(start)

		if m := s.svc.Metrics(); m != nil {
			m.ObserveHTTP(route, rec.code, elapsed)
		}
		logger.InfoSkip(ctx, 1, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.code,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// recoveryMiddleware turns a handler panic into a 500.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(r.Context(), "Panic recovered", "panic", rec, "path", r.URL.Path)
				respondJSON(w, http.StatusInternalServerError, map[string]string{
					"error": "internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
