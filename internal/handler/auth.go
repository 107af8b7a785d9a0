package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/middleware"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
	"github.com/deppfellow/kringe-music/internal/validation"
)

const homeRedirect = "/"

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

type loginRequest struct {
	// Email carries either the login or the email address.
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (r *loginRequest) Validate() error { return validation.Struct(r) }

func (r *loginRequest) Normalize() { r.Email = strings.TrimSpace(r.Email) }

func (r *loginRequest) FieldMessages() map[string]string {
	return map[string]string{
		"email":    "Введите email или имя пользователя",
		"password": "Введите пароль",
	}
}

type registerRequest struct {
	Username        string `form:"username" json:"username" validate:"required,username"`
	Email           string `form:"email" json:"email" validate:"required,email,max=100"`
	Password        string `form:"password" json:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" validate:"eqfield=Password"`
}

func (r *registerRequest) Validate() error { return validation.Struct(r) }

func (r *registerRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *registerRequest) FieldMessages() map[string]string {
	return map[string]string{
		"username":         "Имя пользователя должно содержать 3-20 символов (только буквы, цифры и подчеркивания)",
		"email":            "Введите корректный email",
		"email.max":        "Email слишком длинный",
		"password":         "Пароль должен быть не менее 6 символов",
		"confirm_password": "Пароли не совпадают",
	}
}

type authResponse struct {
	Status
	Redirect string `json:"redirect"`
}

func (h *AuthHandler) Login(c echo.Context, req *loginRequest) (*authResponse, error) {
	_, cookie, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	h.setSessionCookie(c, cookie)
	return &authResponse{Status: ok(service.MsgLoginSuccess), Redirect: homeRedirect}, nil
}

func (h *AuthHandler) Register(c echo.Context, req *registerRequest) (*authResponse, error) {
	_, cookie, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	h.setSessionCookie(c, cookie)
	return &authResponse{Status: ok(service.MsgRegisterSuccess), Redirect: homeRedirect}, nil
}

// Logout always succeeds, even without a session.
func (h *AuthHandler) Logout(c echo.Context, _ *noRequest) (*authResponse, error) {
	if cookie, err := c.Cookie(h.server.Config.Auth.CookieName); err == nil {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			middleware.GetLogger(c).Error().Err(err).Msg("failed to revoke session")
		}
	}

	h.clearSessionCookie(c)
	return &authResponse{Status: ok(service.MsgLogout), Redirect: homeRedirect}, nil
}

type sessionResponse struct {
	LoggedIn bool    `json:"logged_in"`
	Login    *string `json:"login"`
	Email    *string `json:"email"`
}

// Session reports who is logged in. LoadSession has already resolved the
// cookie.
func (h *AuthHandler) Session(c echo.Context, _ *noRequest) (*sessionResponse, error) {
	sess := middleware.GetSession(c)
	if sess == nil {
		return &sessionResponse{}, nil
	}
	return &sessionResponse{LoggedIn: true, Login: &sess.Login, Email: &sess.Email}, nil
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string) {
	ttl := h.auth.Sessions().TTL()
	cfg := h.server.Config.Auth

	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	cfg := h.server.Config.Auth

	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
