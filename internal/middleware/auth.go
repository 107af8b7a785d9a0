package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
	"github.com/deppfellow/kringe-music/internal/session"
)

// SessionKey is the Echo context key of the resolved *session.Session.
const SessionKey = "session"

// AuthMiddleware resolves the session cookie on every request.
//
// It never rejects a request: a missing, forged or expired cookie simply
// leaves the request anonymous. Endpoints that need a user check
// GetSession themselves.
type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
}

func NewAuthMiddleware(s *server.Server, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// LoadSession attaches the current session, if any, to the Echo context.
func (am *AuthMiddleware) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(am.server.Config.Auth.CookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		sess, err := am.auth.Current(c.Request().Context(), cookie.Value)
		if err != nil {
			// a broken session store must not take the site down
			am.server.Logger.Error().
				Err(err).
				Str("function", "LoadSession").
				Str("request_id", GetRequestID(c)).
				Msg("could not resolve session")
			return next(c)
		}
		if sess != nil {
			c.Set(SessionKey, sess)
		}

		return next(c)
	}
}

// GetSession returns the session LoadSession found, or nil.
func GetSession(c echo.Context) *session.Session {
	if sess, ok := c.Get(SessionKey).(*session.Session); ok {
		return sess
	}
	return nil
}

// GetLogin returns the logged-in user's login, or "".
func GetLogin(c echo.Context) string {
	if sess := GetSession(c); sess != nil {
		return sess.Login
	}
	return ""
}
