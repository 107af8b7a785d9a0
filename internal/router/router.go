// Package router initializes the HTTP router (using Echo).
//
// Echo carries the middleware chain, the error handler and the static
// asset folders. Site pages and API endpoints live in one ordered Table
// mounted behind a catch-all route.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/handler"
	"github.com/deppfellow/kringe-music/internal/middleware"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// global middlewares
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Auth.LoadSession,
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CSRF(),
	)

	registerSystemRoutes(router, h, s.Config.Server.StaticDir)

	table := NewTable()
	registerPageRoutes(table, h)
	registerAPIRoutes(table, h.Endpoints(), middlewares, NewDispatcher(s.Config.Server.CORSAllowedOrigins))

	router.Any("/*", table.Dispatch)

	return router
}

func registerPageRoutes(t *Table, h *handler.Handlers) {
	pages := []struct{ path, file string }{
		{"/", "index.html"},
		{"/login", "login.html"},
		{"/playlists", "playlists.html"},
		{"/about", "about.html"},
	}
	for _, p := range pages {
		serve := h.Pages.Serve(p.file)
		t.Register(p.path, func(c echo.Context, _ []string) error {
			return serve(c)
		})
	}
}

func registerAPIRoutes(t *Table, e handler.Endpoints, mw *middleware.Middlewares, d *Dispatcher) {
	authLimit := mw.RateLimit.For("auth", middleware.AuthLimit)
	feedbackLimit := mw.RateLimit.For("feedback", middleware.FeedbackLimit)

	// auth
	t.Register("/api/login", d.POST(e.Login, authLimit))
	t.Register("/api/register", d.POST(e.Register, authLimit))
	t.Register("/api/logout", d.Endpoint([]string{http.MethodGet, http.MethodPost}, e.Logout))
	t.Register("/api/session", d.GET(e.Session))

	// news
	t.Register("/api/news", d.Endpoint([]string{http.MethodGet, http.MethodPost}, e.News))

	// catalog
	t.Register("/api/releases", d.GET(e.Releases))
	t.Register("/api/tracks", d.GET(e.Tracks))
	t.Register("/api/track/{id}", d.GET(e.Track))
	t.Register("/api/artists", d.GET(e.Artists))
	t.Register("/api/artist/{id}", d.GET(e.Artist))
	t.Register("/api/search", d.GET(e.Search))
	t.Register("/api/daily-playlist", d.GET(e.DailyPlaylist))

	t.Register("/api/feedback", d.POST(e.Feedback, feedbackLimit))
}
