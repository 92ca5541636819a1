package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestConstructorsSetStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{Validation("email is required", nil), CodeValidation, http.StatusBadRequest},
		{InvalidInput("bad limit"), CodeInvalidInput, http.StatusBadRequest},
		{Conflict("already paid"), CodeConflict, http.StatusConflict},
		{Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{Unauthorized("bad signature"), CodeUnauthorized, http.StatusUnauthorized},
		{Unavailable("mongo"), CodeUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.code {
			t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
		}
		if tc.err.StatusCode() != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.err.Code, tc.status, tc.err.StatusCode())
		}
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("store write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("cause missing from message: %s", err.Error())
	}
}

func TestAsAppErrorPassthrough(t *testing.T) {
	original := NotFound("Booking")
	if got := AsAppError(original); got != original {
		t.Error("AppError should pass through unchanged")
	}
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	got := AsAppError(errors.New("surprise"))
	if got.Code != CodeInternal {
		t.Errorf("expected internal wrapper, got %s", got.Code)
	}
	if got.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", got.StatusCode())
	}
}
