package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Endpoints are the typed handlers adapted to echo, ready to be mounted.
type Endpoints struct {
	Login    echo.HandlerFunc
	Register echo.HandlerFunc
	Logout   echo.HandlerFunc
	Session  echo.HandlerFunc

	// News serves GET and POST on the same path.
	News echo.HandlerFunc

	Releases      echo.HandlerFunc
	Tracks        echo.HandlerFunc
	Track         echo.HandlerFunc
	Artists       echo.HandlerFunc
	Artist        echo.HandlerFunc
	Search        echo.HandlerFunc
	DailyPlaylist echo.HandlerFunc

	Feedback echo.HandlerFunc
}

func (h *Handlers) Endpoints() Endpoints {
	auth, catalog := h.Auth, h.Catalog

	listNews := Handle(h.News.Handler, h.News.Get, http.StatusOK, func() *newsQuery { return &newsQuery{} })
	createNews := Handle(h.News.Handler, h.News.Create, http.StatusOK, func() *createNewsRequest { return &createNewsRequest{} })

	return Endpoints{
		Login:    Handle(auth.Handler, auth.Login, http.StatusOK, func() *loginRequest { return &loginRequest{} }),
		Register: Handle(auth.Handler, auth.Register, http.StatusOK, func() *registerRequest { return &registerRequest{} }),
		Logout:   Handle(auth.Handler, auth.Logout, http.StatusOK, newNoRequest),
		Session:  Handle(auth.Handler, auth.Session, http.StatusOK, newNoRequest),

		News: func(c echo.Context) error {
			if c.Request().Method == http.MethodPost {
				return createNews(c)
			}
			return listNews(c)
		},

		Releases:      Handle(catalog.Handler, catalog.Releases, http.StatusOK, newLimitRequest),
		Tracks:        Handle(catalog.Handler, catalog.Tracks, http.StatusOK, func() *tracksRequest { return &tracksRequest{} }),
		Track:         Handle(catalog.Handler, catalog.Track, http.StatusOK, newIDRequest),
		Artists:       Handle(catalog.Handler, catalog.Artists, http.StatusOK, newLimitRequest),
		Artist:        Handle(catalog.Handler, catalog.Artist, http.StatusOK, newIDRequest),
		Search:        Handle(catalog.Handler, catalog.Search, http.StatusOK, func() *searchRequest { return &searchRequest{} }),
		DailyPlaylist: Handle(catalog.Handler, catalog.DailyPlaylist, http.StatusOK, newLimitRequest),

		Feedback: Handle(h.Feedback.Handler, h.Feedback.Submit, http.StatusOK, func() *feedbackRequest { return &feedbackRequest{} }),
	}
}
