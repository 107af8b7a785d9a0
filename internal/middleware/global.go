package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/kringe-music/internal/errs"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/sqlerr"
)

const (
	// CSRFHeader and CSRFCookie are what front-end scripts read and echo back.
	CSRFHeader = "X-CSRF-Token"
	CSRFCookie = "csrf_token"
	csrfForm   = "csrf_token"
)

// GlobalMiddlewares groups the middleware every request goes through and
// the global error handler.
//
// CORS is not here: the dispatcher answers preflight itself so OPTIONS
// gets the 200 browsers of the old site expect.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// RequestLogger writes one "API" line per request, leveled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error, so take the status from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// CSRF is a double-submit token check for mutating requests. It is a
// pass-through unless auth.csrf_enabled is set.
func (global *GlobalMiddlewares) CSRF() echo.MiddlewareFunc {
	if !global.server.Config.Auth.CSRFEnabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + CSRFHeader + ",form:" + csrfForm,
		CookieName:     CSRFCookie,
		CookiePath:     "/",
		CookieSecure:   global.server.Config.Auth.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
		ErrorHandler: func(err error, c echo.Context) error {
			GetLogger(c).Warn().Err(err).Msg("csrf check failed")
			return errs.NewForbiddenError(errs.MsgSecurity, true)
		},
	})
}

// GlobalErrorHandler turns every error a handler returns into the JSON
// failure body clients read: success=false, message, error, code, errors.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Debug()
	}
	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, errs.Body(httpErr))
}

// toHTTPError classifies err. Store and driver errors go through sqlerr so
// internals never reach the client.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return fromEchoError(echoErr)
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	switch echoErr.Code {
	case http.StatusNotFound:
		return errs.NewNotFoundError(errs.MsgNotFound, false, nil)
	case http.StatusMethodNotAllowed:
		return errs.NewMethodNotAllowedError()
	case http.StatusTooManyRequests:
		return errs.NewTooManyRequestsError()
	case http.StatusForbidden:
		return errs.NewForbiddenError(errs.MsgSecurity, false)
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return errs.NewBadRequestError(errs.MsgValidationFailed, false, nil, nil).WithStatus(echoErr.Code)
	}

	if echoErr.Code >= http.StatusInternalServerError {
		return errs.NewInternalServerError()
	}

	message, ok := echoErr.Message.(string)
	if !ok {
		message = http.StatusText(echoErr.Code)
	}
	return errs.NewBadRequestError(message, false, nil, nil).WithStatus(echoErr.Code)
}

func statusOf(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}
