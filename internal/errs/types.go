package errs

import (
	"net/http"
)

// Messages shown to users. The site is Russian-language and clients display
// these strings verbatim.
const (
	MsgValidationFailed = "Ошибка валидации данных"
	MsgMethodNotAllowed = "Метод не разрешен"
	MsgInternal         = "Внутренняя ошибка сервера"
	MsgNotFound         = "Ресурс не найден"
	MsgTooManyRequests  = "Слишком много запросов, попробуйте позже"
	MsgSecurity         = "Ошибка безопасности"
	MsgUnauthorized     = "Требуется авторизация"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Kind:     KindUnauthorized,
		Code:     statusCode(http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Kind:     KindForbidden,
		Code:     statusCode(http.StatusForbidden),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; fields carries
// per-field messages.
func NewBadRequestError(message string, override bool, code *string, fields FieldErrors) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Kind:     KindValidation,
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   fields,
	}
}

// NewValidationError creates a 400 with field messages and the generic
// validation message.
func NewValidationError(fields FieldErrors) *HTTPError {
	return NewBadRequestError(MsgValidationFailed, true, nil, fields)
}

// NewRejectedError reports a domain refusal (wrong password, taken login).
//
// The status is 200: clients of the auth endpoints inspect the success flag
// and treat non-2xx statuses as network failures.
func NewRejectedError(message string, fields FieldErrors) *HTTPError {
	return &HTTPError{
		Kind:     KindRejected,
		Code:     "REJECTED",
		Message:  message,
		Status:   http.StatusOK,
		Override: true,
		Errors:   fields,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Kind:     KindNotFound,
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError() *HTTPError {
	return &HTTPError{
		Kind:     KindMethodNotAllowed,
		Code:     statusCode(http.StatusMethodNotAllowed),
		Message:  MsgMethodNotAllowed,
		Status:   http.StatusMethodNotAllowed,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Kind:     KindTooManyRequests,
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  MsgTooManyRequests,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a 500 with a generic message.
// The underlying cause is logged, never sent.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Kind:     KindInternal,
		Code:     statusCode(http.StatusInternalServerError),
		Message:  MsgInternal,
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError(MsgValidationFailed+": "+err.Error(), false, nil, nil)
}
