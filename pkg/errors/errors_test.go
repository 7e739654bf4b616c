package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeConflict, "reservation overlaps", http.StatusConflict)

	if err.Code != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code)
	}
	if err.Message != "reservation overlaps" {
		t.Errorf("expected message 'reservation overlaps', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
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
				Message: "reservation not found",
			},
			expected: "NOT_FOUND: reservation not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "lookup failed",
				Err:     errors.New("mongo: no reachable servers"),
			},
			expected: "INTERNAL_ERROR: lookup failed (caused by: mongo: no reachable servers)",
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
	cause := errors.New("connection reset")
	err := Internal("coupon lookup failed", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NotFound("coupon")) {
		t.Errorf("expected AppError to be recognized")
	}
	if !IsAppError(fmt.Errorf("wrapped: %w", InvalidInput("bad date"))) {
		t.Errorf("expected wrapped AppError to be recognized")
	}
	if IsAppError(errors.New("plain")) {
		t.Errorf("did not expect plain error to be recognized")
	}
}
