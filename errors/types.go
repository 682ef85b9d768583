package errors

import (
	"net/http"
)

// NewError creates a new StanzaError with the given parameters.
// It is a general-purpose constructor that allows full control over
// the error's fields. For most cases, you should use one of the
// specialized constructors below.
//
// Example:
//
//	err := NewError(InternalError, "unexpected failure", 500, "req_123", nil, innerErr)
func NewError(errType ErrorType, message string, code int, requestID string, details map[string]interface{}, err error) *StanzaError {
	return &StanzaError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: requestID,
		Details:   details,
		err:       err,
	}
}

// NewValidationError creates a validation error with appropriate defaults.
// Use this for any request validation failures, such as:
//   - Unsupported HTTP methods
//   - Malformed query parameters
//
// Example:
//
//	err := NewValidationError("req_123", "Method not allowed", map[string]interface{}{
//	    "method": "POST",
//	})
func NewValidationError(requestID, message string, validationDetails map[string]interface{}) *StanzaError {
	return &StanzaError{
		Type:      ValidationError,
		Message:   message,
		Code:      http.StatusBadRequest,
		RequestID: requestID,
		Details:   validationDetails,
	}
}

// NewProviderError creates a provider error with appropriate defaults.
// Use this when the text generation service encounters an error, such as:
//   - Provider API errors
//   - Invalid model identifiers
//   - Quota exhaustion
//
// Example:
//
//	err := NewProviderError("req_123", "Generation failed", providerErr)
func NewProviderError(requestID string, message string, err error) *StanzaError {
	return &StanzaError{
		Type:      ProviderError,
		Message:   message,
		Code:      http.StatusBadGateway,
		RequestID: requestID,
		err:       err,
	}
}

// NewConfigError creates a configuration error with appropriate defaults.
// Use this when required configuration is missing or invalid, such as:
//   - Missing API tokens
//   - Malformed configuration files
//
// Example:
//
//	err := NewConfigError("req_123", "API token not configured", nil)
func NewConfigError(requestID, message string, err error) *StanzaError {
	return &StanzaError{
		Type:      ConfigError,
		Message:   message,
		Code:      http.StatusInternalServerError,
		RequestID: requestID,
		err:       err,
	}
}

// NewInternalError creates an internal server error with appropriate defaults.
// Use this for unexpected errors that are not covered by other error types:
//   - Panics
//   - Unexpected system failures
//
// Example:
//
//	err := NewInternalError("req_123", innerErr)
func NewInternalError(requestID string, err error) *StanzaError {
	return &StanzaError{
		Type:      InternalError,
		Message:   "An internal error occurred",
		Code:      http.StatusInternalServerError,
		RequestID: requestID,
		err:       err,
	}
}
