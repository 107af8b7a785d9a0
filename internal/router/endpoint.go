package router

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/errs"
)

const allowedHeaders = "Content-Type, Authorization, X-Requested-With, X-CSRF-Token"

// Dispatcher turns echo handlers into route handlers that answer CORS
// preflight and enforce the endpoint's methods.
type Dispatcher struct {
	origins []string
}

func NewDispatcher(origins []string) *Dispatcher {
	return &Dispatcher{origins: origins}
}

// Endpoint wraps h. OPTIONS is answered with 200 and the CORS headers;
// any method outside methods is a 405. mw runs only for allowed methods,
// in order, around h.
func (d *Dispatcher) Endpoint(methods []string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	allow := strings.Join(append(slices.Clone(methods), http.MethodOptions), ", ")

	return func(c echo.Context, _ []string) error {
		d.setCORS(c, allow)

		method := c.Request().Method
		if method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		if !slices.Contains(methods, method) {
			c.Response().Header().Set(echo.HeaderAllow, allow)
			return errs.NewMethodNotAllowedError()
		}

		return h(c)
	}
}

// GET, POST and friends are shorthands for Endpoint.
func (d *Dispatcher) GET(h echo.HandlerFunc, mw ...echo.MiddlewareFunc) HandlerFunc {
	return d.Endpoint([]string{http.MethodGet}, h, mw...)
}

func (d *Dispatcher) POST(h echo.HandlerFunc, mw ...echo.MiddlewareFunc) HandlerFunc {
	return d.Endpoint([]string{http.MethodPost}, h, mw...)
}

func (d *Dispatcher) setCORS(c echo.Context, allow string) {
	header := c.Response().Header()
	origin := c.Request().Header.Get(echo.HeaderOrigin)

	switch {
	case slices.Contains(d.origins, "*"):
		header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	case origin != "" && slices.Contains(d.origins, origin):
		header.Set(echo.HeaderAccessControlAllowOrigin, origin)
		header.Set(echo.HeaderAccessControlAllowCredentials, "true")
		header.Add(echo.HeaderVary, echo.HeaderOrigin)
	}

	header.Set(echo.HeaderAccessControlAllowMethods, allow)
	header.Set(echo.HeaderAccessControlAllowHeaders, allowedHeaders)
}
