package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/lib/utils"
	"github.com/deppfellow/kringe-music/internal/model"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
)

// Query limits: default, then cap.
const (
	defaultReleases = 3
	maxReleases     = 50
	defaultTracks   = 10
	maxTracks       = 100
	defaultArtists  = 10
	maxArtists      = 100
	defaultDaily    = 15
	maxDaily        = 50
)

type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

// limitRequest reads ?limit=. Malformed values fall back to the default
// instead of failing the request.
type limitRequest struct {
	Limit string `query:"limit"`
}

func (r *limitRequest) Validate() error { return nil }

func newLimitRequest() *limitRequest { return &limitRequest{} }

type releasesResponse struct {
	Status
	Releases []model.Release `json:"releases"`
}

func (h *CatalogHandler) Releases(c echo.Context, req *limitRequest) (*releasesResponse, error) {
	releases, err := h.catalog.Releases(c.Request().Context(), utils.ParseLimit(req.Limit, defaultReleases, maxReleases))
	if err != nil {
		return nil, err
	}
	return &releasesResponse{Status: ok(""), Releases: releases}, nil
}

type tracksRequest struct {
	Limit   string `query:"limit"`
	Popular string `query:"popular"`
}

func (r *tracksRequest) Validate() error { return nil }

type tracksResponse struct {
	Status
	Tracks any `json:"tracks"`
}

// Tracks lists tracks by title, or by playlist count with ?popular=true.
func (h *CatalogHandler) Tracks(c echo.Context, req *tracksRequest) (*tracksResponse, error) {
	ctx := c.Request().Context()
	limit := utils.ParseLimit(req.Limit, defaultTracks, maxTracks)

	if req.Popular == "true" {
		tracks, err := h.catalog.PopularTracks(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &tracksResponse{Status: ok(""), Tracks: tracks}, nil
	}

	tracks, err := h.catalog.Tracks(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &tracksResponse{Status: ok(""), Tracks: tracks}, nil
}

// idRequest carries the {id} path segment verbatim; the service decides
// what a non-numeric id means.
type idRequest struct {
	ID string `param:"id"`
}

func (r *idRequest) Validate() error { return nil }

func newIDRequest() *idRequest { return &idRequest{} }

type trackResponse struct {
	Status
	Track *model.Track `json:"track"`
}

func (h *CatalogHandler) Track(c echo.Context, req *idRequest) (*trackResponse, error) {
	track, err := h.catalog.Track(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &trackResponse{Status: ok(""), Track: track}, nil
}

type artistsResponse struct {
	Status
	Artists []model.Artist `json:"artists"`
}

func (h *CatalogHandler) Artists(c echo.Context, req *limitRequest) (*artistsResponse, error) {
	artists, err := h.catalog.Artists(c.Request().Context(), utils.ParseLimit(req.Limit, defaultArtists, maxArtists))
	if err != nil {
		return nil, err
	}
	return &artistsResponse{Status: ok(""), Artists: artists}, nil
}

type artistResponse struct {
	Status
	Artist *model.Artist `json:"artist"`
	Tracks []model.Track `json:"tracks"`
}

func (h *CatalogHandler) Artist(c echo.Context, req *idRequest) (*artistResponse, error) {
	artist, tracks, err := h.catalog.Artist(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &artistResponse{Status: ok(""), Artist: artist, Tracks: tracks}, nil
}

type searchRequest struct {
	Q string `query:"q"`
}

func (r *searchRequest) Validate() error { return nil }

type searchResponse struct {
	Status
	Query   string        `json:"query"`
	Results []model.Track `json:"results"`
}

func (h *CatalogHandler) Search(c echo.Context, req *searchRequest) (*searchResponse, error) {
	results, err := h.catalog.Search(c.Request().Context(), req.Q)
	if err != nil {
		return nil, err
	}
	return &searchResponse{Status: ok(""), Query: req.Q, Results: results}, nil
}

type dailyPlaylistResponse struct {
	Status
	Tracks []model.DailyTrack `json:"tracks"`
	Count  int                `json:"count"`
	Date   string             `json:"date"`
}

func (h *CatalogHandler) DailyPlaylist(c echo.Context, req *limitRequest) (*dailyPlaylistResponse, error) {
	daily, err := h.catalog.DailyPlaylist(c.Request().Context(), utils.ParseLimit(req.Limit, defaultDaily, maxDaily))
	if err != nil {
		return nil, err
	}
	return &dailyPlaylistResponse{
		Status: ok(daily.Message),
		Tracks: daily.Tracks,
		Count:  len(daily.Tracks),
		Date:   daily.Date,
	}, nil
}
