package errors

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// ErrorHandler wraps an http.Handler and provides error handling
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := debug.Stack()
					logger.Error("panic recovered",
						zap.Any("error", err),
						zap.ByteString("stacktrace", stack),
						zap.String("request_id", r.Header.Get("X-Request-ID")),
					)

					stanzaErr := NewInternalError(r.Header.Get("X-Request-ID"), nil)
					WriteError(w, stanzaErr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// LogError logs an error with its context
func LogError(logger *zap.Logger, err error, requestID string) {
	if stanzaErr, ok := err.(*StanzaError); ok {
		logger.Error("request error",
			zap.String("error_type", string(stanzaErr.Type)),
			zap.String("message", stanzaErr.Message),
			zap.Int("code", stanzaErr.Code),
			zap.String("request_id", requestID),
			zap.Any("details", stanzaErr.Details),
		)
	} else {
		logger.Error("unexpected error",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
	}
}
