package errors

// ErrorResponse is the JSON body written for every failed request. The type
// tells clients which class of failure occurred, the request ID lets them
// quote a specific request when reporting a problem, and details carry
// whatever context the failing component attached (allowed methods, field
// validation messages, timeout bounds).
type ErrorResponse struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"request_id"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
