package middleware

// contextKey is a private type for context values set by this package, so
// stanza's keys cannot collide with keys set by other packages sharing the
// same request context.
type contextKey string

// RequestIDKey carries the correlation ID assigned by the RequestID
// middleware. Handlers and the timeout middleware read it back when
// building error responses.
const RequestIDKey contextKey = "request_id"
