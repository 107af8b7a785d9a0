package handler

import (
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	Pages    *PageHandler
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	News     *NewsHandler
	Feedback *FeedbackHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Pages:    NewPageHandler(s),
		Auth:     NewAuthHandler(s, services.Auth),
		Catalog:  NewCatalogHandler(s, services.Catalog),
		News:     NewNewsHandler(s, services.News),
		Feedback: NewFeedbackHandler(s, services.Feedback),
	}
}
