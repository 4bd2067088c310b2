package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"hrms/internal/platform/logging"
	"hrms/internal/platform/metrics"
	"hrms/internal/requestctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger binds a request-scoped entry into the context, then logs and
// measures the finished request.
func Logger(base *logrus.Logger, m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			if meta, ok := requestctx.From(r.Context()); ok && !meta.Started.IsZero() {
				start = meta.Started
			}
			entry := logrus.NewEntry(base).WithField("requestId", GetRequestID(r.Context()))
			r = r.WithContext(logging.WithLogger(r.Context(), entry))

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			elapsed := time.Since(start)
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.Record(route, r.Method, recorder.status, elapsed)

			fields := entry.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"ip":         clientIP(r),
				"status":     recorder.status,
				"durationMs": elapsed.Milliseconds(),
			})
			switch {
			case recorder.status >= 500:
				fields.Error("request failed")
			default:
				fields.Info("request")
			}
		})
	}
}
