package errs

import (
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	// KindValidation is a malformed or incomplete payload (400, field map).
	KindValidation Kind = "validation"

	// KindRejected is a well-formed request the domain refused, such as bad
	// credentials or a taken login. Reported with 200 and success=false.
	KindRejected Kind = "rejected"

	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindTooManyRequests  Kind = "too_many_requests"
	KindInternal         Kind = "internal"
)

// FieldErrors maps a request field name to a human-readable message.
//
//	{ "email": "Введите корректный email адрес" }
type FieldErrors map[string]string

// HTTPError is the error type every handler returns for a failed request.
//
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message, sent to the client.
//   - Status: HTTP status code.
//   - Override: the message is safe to show in the UI as is.
//   - Errors: per-field validation messages.
type HTTPError struct {
	Kind     Kind        `json:"-"`
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Status   int         `json:"status"`
	Override bool        `json:"override"`
	Errors   FieldErrors `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any *HTTPError.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Kind:     e.Kind,
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// WithField returns a copy with one more field message attached.
func (e *HTTPError) WithField(field, message string) *HTTPError {
	fields := make(FieldErrors, len(e.Errors)+1)
	for k, v := range e.Errors {
		fields[k] = v
	}
	fields[field] = message

	cp := e.WithMessage(e.Message)
	cp.Errors = fields
	return cp
}

// WithStatus returns a copy reported with a different status code.
func (e *HTTPError) WithStatus(status int) *HTTPError {
	cp := e.WithMessage(e.Message)
	cp.Status = status
	cp.Code = statusCode(status)
	return cp
}

// Response is the JSON body written for a failed request.
//
// Message and Error carry the same text: older endpoints were read through
// `message`, catalog and news endpoints through `error`.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Errors  FieldErrors `json:"errors"`
}

// Body renders e in the response shape clients expect.
// Errors is always an object, never null.
func Body(e *HTTPError) Response {
	fields := e.Errors
	if fields == nil {
		fields = FieldErrors{}
	}
	return Response{
		Success: false,
		Message: e.Message,
		Error:   e.Message,
		Code:    e.Code,
		Errors:  fields,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
