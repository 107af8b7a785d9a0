// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/errs"
)

// MsgMalformedRequest is returned when the body cannot be decoded at all.
const MsgMalformedRequest = "Некорректный формат запроса"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,email"`)
// - Implement Validate() error that runs validation.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// Messager lets a payload override the message for a field/tag pair.
// Keys are "<field>.<tag>", e.g. "password.min".
type Messager interface {
	FieldMessages() map[string]string
}

// Summarizer replaces the top-level message of a failed validation.
type Summarizer interface {
	ValidationMessage() string
}

// Normalizer is implemented by payloads that clean up input (trim spaces)
// between binding and validation.
type Normalizer interface {
	Normalize()
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return errs.MsgValidationFailed
}

// usernameRegex: 3-20 latin letters, digits or underscores.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the project's custom tags.
//
// Field names are taken from the `form` tag, then `json`, then `query`, so error maps are
// keyed the way clients send the fields (confirm_password, not ConfirmPassword).
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		})

		instance = v
	})
	return instance
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return Validator().Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates request struct from the incoming request body/params.
// 2) payload.Normalize() runs when implemented.
// 3) payload.Validate() applies validation rules.
// 4) Returns *errs.HTTPError (400) with every field error at once if validation fails.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(MsgMalformedRequest, true, nil, nil)
	}

	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	if fieldErrors := validateStruct(payload); len(fieldErrors) > 0 {
		if sm, ok := payload.(Summarizer); ok {
			return errs.NewBadRequestError(sm.ValidationMessage(), true, nil, fieldErrors)
		}
		return errs.NewValidationError(fieldErrors)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) errs.FieldErrors {
	err := v.Validate()
	if err == nil {
		return nil
	}

	var overrides map[string]string
	if m, ok := v.(Messager); ok {
		overrides = m.FieldMessages()
	}

	return ExtractFieldErrors(err, overrides)
}

// ExtractFieldErrors converts validator or custom errors into a field map.
// Only the first failing rule per field is kept.
func ExtractFieldErrors(err error, overrides map[string]string) errs.FieldErrors {
	fieldErrors := errs.FieldErrors{}

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			if _, seen := fieldErrors[e.Field]; !seen {
				fieldErrors[e.Field] = e.Message
			}
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["_"] = err.Error()
		return fieldErrors
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		if _, seen := fieldErrors[field]; seen {
			continue
		}

		if msg, ok := overrides[field+"."+fe.Tag()]; ok {
			fieldErrors[field] = msg
			continue
		}
		if msg, ok := overrides[field]; ok {
			fieldErrors[field] = msg
			continue
		}

		fieldErrors[field] = defaultMessage(fe)
	}

	return fieldErrors
}

func defaultMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "Поле обязательно для заполнения"

	case "min":
		// min on strings is a rune count, on numbers a value
		if isString {
			return fmt.Sprintf("Минимум %s символов", fe.Param())
		}
		return fmt.Sprintf("Значение должно быть не меньше %s", fe.Param())

	case "max":
		if isString {
			return fmt.Sprintf("Максимум %s символов", fe.Param())
		}
		return fmt.Sprintf("Значение должно быть не больше %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("Допустимые значения: %s", fe.Param())

	case "email":
		return "Введите корректный email"

	case "eqfield":
		return "Значения не совпадают"

	case "username":
		return "Имя пользователя должно содержать 3-20 символов (только буквы, цифры и подчеркивания)"

	case "numeric", "number":
		return "Значение должно быть числом"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
