package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/stanzahq/stanza/errors"
)

// timeoutWriter wraps http.ResponseWriter to track if a response has been written
type timeoutWriter struct {
	http.ResponseWriter
	written chan bool
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	n, err := tw.ResponseWriter.Write(b)
	if n > 0 {
		select {
		case tw.written <- true:
		default:
		}
	}
	return n, err
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.ResponseWriter.WriteHeader(code)
	select {
	case tw.written <- true:
	default:
	}
}

func (tw *timeoutWriter) hasWritten() bool {
	select {
	case <-tw.written:
		return true
	default:
		return false
	}
}

// Timeout cancels the request context after the given duration and answers
// 504 when the handler unwound without writing. Handlers behind it must
// honor the context; the timeout response is written only after the handler
// returns, so the two never race on the ResponseWriter.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})

			tw := &timeoutWriter{
				ResponseWriter: w,
				written:        make(chan bool, 1),
			}

			// Process the request in a goroutine
			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			// Wait for either completion or timeout
			select {
			case <-done:
				return
			case <-ctx.Done():
				// Cancellation unwinds the handler through the generation
				// pipeline; wait for it so the timeout response is the
				// only writer
				<-done
				if !tw.hasWritten() {
					requestID, _ := r.Context().Value(RequestIDKey).(string)

					errResp := errors.NewError(
						errors.InternalError,
						"Request timeout",
						http.StatusGatewayTimeout,
						requestID,
						map[string]interface{}{
							"timeout": timeout.String(),
						},
						ctx.Err(),
					)

					errors.WriteError(tw, errResp)
				}
				return
			}
		})
	}
}
