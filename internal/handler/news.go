package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/model"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
	"github.com/deppfellow/kringe-music/internal/validation"
)

type NewsHandler struct {
	Handler
	news *service.NewsService
}

func NewNewsHandler(s *server.Server, news *service.NewsService) *NewsHandler {
	return &NewsHandler{
		Handler: NewHandler(s),
		news:    news,
	}
}

type newsQuery struct {
	ID     string `query:"id"`
	Search string `query:"search"`
	Page   string `query:"page"`
	Limit  string `query:"limit"`
}

func (r *newsQuery) Validate() error { return nil }

type newsResponse struct {
	Status
	Data any `json:"data"`
}

type seedResponse struct {
	Status
	Count int `json:"count"`
}

// Get serves one of four reads, picked by which parameter is present:
// ?id= (counts a view), ?search=, ?init (seeds samples), else a page.
func (h *NewsHandler) Get(c echo.Context, req *newsQuery) (any, error) {
	ctx := c.Request().Context()
	params := c.QueryParams()

	switch {
	case params.Has("id"):
		item, err := h.news.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return &newsResponse{Status: ok(""), Data: item}, nil

	case params.Has("search"):
		items, err := h.news.Search(ctx, req.Search)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []model.News{}
		}
		return &newsResponse{Status: ok(""), Data: items}, nil

	case params.Has("init"):
		n, err := h.news.Seed(ctx)
		if err != nil {
			return nil, err
		}
		return &seedResponse{Status: ok(fmt.Sprintf("Added %d sample news", n)), Count: n}, nil
	}

	page, _ := strconv.Atoi(req.Page)
	limit, _ := strconv.Atoi(req.Limit)

	items, err := h.news.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.News{}
	}
	return &newsResponse{Status: ok(""), Data: items}, nil
}

type createNewsRequest struct {
	Title        string   `json:"title" validate:"required"`
	Content      string   `json:"content" validate:"required"`
	ShortContent string   `json:"short_content"`
	Author       string   `json:"author"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"image_url"`
	Featured     bool     `json:"featured"`
}

func (r *createNewsRequest) Validate() error { return validation.Struct(r) }

func (r *createNewsRequest) ValidationMessage() string {
	return "Title and content are required"
}

type createNewsResponse struct {
	Status
	ID string `json:"id"`
}

func (h *NewsHandler) Create(c echo.Context, req *createNewsRequest) (*createNewsResponse, error) {
	id, err := h.news.Create(c.Request().Context(), service.NewsInput{
		Title:        req.Title,
		Content:      req.Content,
		ShortContent: req.ShortContent,
		Author:       req.Author,
		Category:     req.Category,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
		Featured:     req.Featured,
	})
	if err != nil {
		return nil, err
	}
	return &createNewsResponse{Status: ok(service.MsgNewsCreated), ID: id}, nil
}
