package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/errs"
)

type signupPayload struct {
	Username        string `form:"username" validate:"required,username"`
	Email           string `form:"email" validate:"required,email,max=100"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

func (p *signupPayload) Validate() error { return Struct(p) }

func (p *signupPayload) FieldMessages() map[string]string {
	return map[string]string{
		"password":         "Пароль должен быть не менее 6 символов",
		"confirm_password": "Пароли не совпадают",
	}
}

type notePayload struct {
	Text string `json:"text" validate:"required,min=3"`
}

func (p *notePayload) Validate() error { return Struct(p) }

func (p *notePayload) Normalize() { p.Text = strings.TrimSpace(p.Text) }

func newFormContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateReportsAllFields(t *testing.T) {
	c := newFormContext("username=ab&email=bad&password=123&confirm_password=123")

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", httpErr.Status)
	}

	want := map[string]string{
		"username": "Имя пользователя должно содержать 3-20 символов (только буквы, цифры и подчеркивания)",
		"email":    "Введите корректный email",
		"password": "Пароль должен быть не менее 6 символов",
	}
	if len(httpErr.Errors) != len(want) {
		t.Fatalf("Errors = %v, want %d entries", httpErr.Errors, len(want))
	}
	for field, msg := range want {
		if httpErr.Errors[field] != msg {
			t.Errorf("Errors[%q] = %q, want %q", field, httpErr.Errors[field], msg)
		}
	}
}

func TestBindAndValidateMismatchedPasswords(t *testing.T) {
	c := newFormContext("username=new_user&email=a@b.ru&password=secret1&confirm_password=secret2")

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *errs.HTTPError", err)
	}
	if got := httpErr.Errors["confirm_password"]; got != "Пароли не совпадают" {
		t.Errorf("confirm_password = %q", got)
	}
}

func TestBindAndValidateValid(t *testing.T) {
	c := newFormContext("username=new_user&email=a@b.ru&password=secret1&confirm_password=secret1")

	if err := BindAndValidate(c, &signupPayload{}); err != nil {
		t.Fatalf("BindAndValidate() = %v, want nil", err)
	}
}

func TestBindAndValidateNormalizes(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"   ab   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	p := &notePayload{}
	err := BindAndValidate(c, p)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want validation error after trimming", err)
	}
	if p.Text != "ab" {
		t.Errorf("Text = %q, want trimmed", p.Text)
	}
	if got := httpErr.Errors["text"]; got != "Минимум 3 символов" {
		t.Errorf("Errors[text] = %q", got)
	}
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := BindAndValidate(c, &notePayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *errs.HTTPError", err)
	}
	if httpErr.Message != MsgMalformedRequest {
		t.Errorf("Message = %q, want %q", httpErr.Message, MsgMalformedRequest)
	}
}

func TestExtractFieldErrorsCustom(t *testing.T) {
	err := CustomValidationErrors{
		{Field: "rating", Message: "first"},
		{Field: "rating", Message: "second"},
	}

	got := ExtractFieldErrors(err, nil)
	if got["rating"] != "first" {
		t.Errorf("rating = %q, want first message kept", got["rating"])
	}
}
