package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ResponseWriter wraps http.ResponseWriter to record what the handler wrote,
// so the access log can report status and body size after the fact.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

// NewResponseWriter creates a new ResponseWriter
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

func (w *ResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.size += int64(size)
	return size, err
}

// Status returns the recorded status code, defaulting to 200 when the
// handler never called WriteHeader.
func (w *ResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Size returns the number of response body bytes written.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Logging writes one access log line per request. Prediction requests also
// carry the requested model so slow or failing generations can be traced to
// a model version without digging into handler logs.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseWriter(w)

			reqLogger := logger
			if requestID, ok := r.Context().Value(RequestIDKey).(string); ok {
				reqLogger = reqLogger.With(zap.String("request_id", requestID))
			}
			if model := r.URL.Query().Get("model"); model != "" {
				reqLogger = reqLogger.With(zap.String("model", model))
			}

			reqLogger.Info("Request started",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)

			next.ServeHTTP(rw, r)

			reqLogger.Info("Request completed",
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", rw.Status()),
				zap.Int64("response_bytes", rw.Size()),
			)
		})
	}
}
