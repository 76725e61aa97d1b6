package api

import (
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/platform/obs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestID copies chi's request id into the context key used by obs.Time.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		if id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
			r = r.WithContext(obs.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs end-to-end request duration and response size, and counts requests
// by route pattern so path parameters do not explode the metric cardinality.
func accessLog(log logger.Logger, metrics *obs.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			metrics.RecordRequest(r.Method, route, sw.status)
			log.Infow("request", map[string]any{
				"req_id": middleware.GetReqID(r.Context()),
				"method": r.Method,
				"path":   r.URL.RequestURI(),
				"status": sw.status,
				"bytes":  sw.bytes,
				"dur_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
