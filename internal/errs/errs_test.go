package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		kind   Kind
		code   string
	}{
		{"validation", NewValidationError(FieldErrors{"email": "bad"}), http.StatusBadRequest, KindValidation, "BAD_REQUEST"},
		{"rejected", NewRejectedError("nope", nil), http.StatusOK, KindRejected, "REJECTED"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, KindNotFound, "NOT_FOUND"},
		{"method", NewMethodNotAllowedError(), http.StatusMethodNotAllowed, KindMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"too many", NewTooManyRequestsError(), http.StatusTooManyRequests, KindTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, KindInternal, "INTERNAL_SERVER_ERROR"},
		{"forbidden", NewForbiddenError("csrf", true), http.StatusForbidden, KindForbidden, "FORBIDDEN"},
		{"unauthorized", NewUnauthorizedError("who", false), http.StatusUnauthorized, KindUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.status {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.status)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
		})
	}
}

func TestCustomCode(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	err := NewBadRequestError("exists", true, &code, nil)
	if err.Code != code {
		t.Errorf("Code = %q, want %q", err.Code, code)
	}
}

func TestBody(t *testing.T) {
	body := Body(NewNotFoundError("Трек не найден", true, nil))

	if body.Success {
		t.Error("Success = true, want false")
	}
	if body.Message != "Трек не найден" || body.Error != "Трек не найден" {
		t.Errorf("Message/Error = %q/%q, want both set", body.Message, body.Error)
	}
	if body.Errors == nil {
		t.Error("Errors = nil, want empty map so it serializes as {}")
	}
}

func TestWithField(t *testing.T) {
	base := NewRejectedError("taken", FieldErrors{"email": "taken"})
	got := base.WithField("username", "taken too")

	if len(got.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(got.Errors))
	}
	if len(base.Errors) != 1 {
		t.Errorf("WithField mutated the receiver: %v", base.Errors)
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewMethodNotAllowedError())

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("errors.As did not find *HTTPError")
	}
	if httpErr.Status != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", httpErr.Status)
	}
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("errors.Is(wrapped, &HTTPError{}) = false, want true")
	}
}
