package repository

import (
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/session"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users    *UserRepository
	Catalog  *CatalogRepository
	Feedback *FeedbackRepository
	News     *NewsRepository
	Sessions session.Store
}

// NewRepositories wires every repository to the stores held by s.
//
// Sessions go to Redis when it was reachable at startup, otherwise to
// process memory.
func NewRepositories(s *server.Server) *Repositories {
	var sessions session.Store
	if s.Redis != nil {
		sessions = session.NewRedisStore(s.Redis, s.Config.Auth.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	return &Repositories{
		Users:    NewUserRepository(s.DB.Pool),
		Catalog:  NewCatalogRepository(s.DB.Pool),
		Feedback: NewFeedbackRepository(s.DB.Pool),
		News:     NewNewsRepository(s.Mongo.DB),
		Sessions: sessions,
	}
}
