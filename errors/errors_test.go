package errors

import (
	"errors"
	"testing"
)

func TestStanzaError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StanzaError
		want string
	}{
		{
			name: "basic error without wrapped error",
			err: &StanzaError{
				Type:    ValidationError,
				Message: "invalid input",
			},
			want: "validation_error: invalid input",
		},
		{
			name: "error with wrapped error",
			err: &StanzaError{
				Type:    ProviderError,
				Message: "generation failed",
				err:     errors.New("connection refused"),
			},
			want: "provider_error: generation failed: connection refused",
		},
		{
			name: "internal error",
			err: &StanzaError{
				Type:    InternalError,
				Message: "processing failed",
				err:     errors.New("unexpected state"),
			},
			want: "internal_error: processing failed: unexpected state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("StanzaError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStanzaError_Is(t *testing.T) {
	err1 := &StanzaError{Type: ProviderError, Message: "test1"}
	err2 := &StanzaError{Type: ProviderError, Message: "test2"}
	err3 := &StanzaError{Type: ValidationError, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Expected err1.Is(err2) to be true for same error type")
	}
	if err1.Is(err3) {
		t.Error("Expected err1.Is(err3) to be false for different error types")
	}
	if err1.Is(errors.New("plain error")) {
		t.Error("Expected Is to be false for non-StanzaError")
	}
}

func TestStanzaError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	err := &StanzaError{
		Type:    InternalError,
		Message: "outer",
		err:     inner,
	}

	if err.Unwrap() != inner {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), inner)
	}

	noInner := &StanzaError{Type: InternalError, Message: "no inner"}
	if noInner.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", noInner.Unwrap())
	}
}
