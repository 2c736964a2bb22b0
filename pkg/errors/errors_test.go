package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("store unreachable"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: store unreachable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should find the original error")
	}
}

func TestAppError_StatusCodeDefaults(t *testing.T) {
	err := &AppError{Code: CodeInternal}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want %d", err.StatusCode(), http.StatusInternalServerError)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad json"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("in progress"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("store", nil), CodeUnavailable, http.StatusServiceUnavailable},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"unsupported media", UnsupportedMediaType("json only"), CodeUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"payload too large", PayloadTooLarge(10), CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("Booking")
	if err.Message != "Booking not found" {
		t.Errorf("expected message 'Booking not found', got %s", err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("wrapped app error is found", func(t *testing.T) {
		inner := Validation("bad", map[string]any{"field": "slot_start"})
		got := AsAppError(fmt.Errorf("handler: %w", inner))
		if got != inner {
			t.Errorf("expected the wrapped AppError to be returned")
		}
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		got := AsAppError(fmt.Errorf("load: %w", context.DeadlineExceeded))
		if got.Code != CodeTimeout {
			t.Errorf("expected code %s, got %s", CodeTimeout, got.Code)
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))
		if got.Code != CodeInternal {
			t.Errorf("expected code %s, got %s", CodeInternal, got.Code)
		}
		if !IsAppError(got) {
			t.Errorf("expected IsAppError to be true")
		}
	})
}
