package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestErrorHandler(t *testing.T) {
	logger := zaptest.NewLogger(t)

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := ErrorHandler(logger)(panicking)

	req := httptest.NewRequest(http.MethodGet, "/predict", nil)
	req.Header.Set("X-Request-ID", "req-panic")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("ErrorHandler() status = %v, want %v", rr.Code, http.StatusInternalServerError)
	}

	var decoded ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	if decoded.Type != InternalError {
		t.Errorf("ErrorHandler() type = %v, want %v", decoded.Type, InternalError)
	}
	if decoded.RequestID != "req-panic" {
		t.Errorf("ErrorHandler() request_id = %v, want req-panic", decoded.RequestID)
	}
}

func TestErrorHandler_PassThrough(t *testing.T) {
	logger := zaptest.NewLogger(t)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := ErrorHandler(logger)(ok)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("ErrorHandler() status = %v, want %v", rr.Code, http.StatusOK)
	}
}

func TestLogError(t *testing.T) {
	logger := zaptest.NewLogger(t)

	// Both branches should log without panicking.
	LogError(logger, NewProviderError("req-1", "generation failed", errors.New("upstream")), "req-1")
	LogError(logger, errors.New("plain error"), "req-2")
}
