package service

import (
	"github.com/deppfellow/kringe-music/internal/lib/job"
	"github.com/deppfellow/kringe-music/internal/repository"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/session"
)

type Services struct {
	Auth     *AuthService
	Catalog  *CatalogService
	Feedback *FeedbackService
	News     *NewsService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	sessions := session.NewManager(repos.Sessions, s.Config.Auth.SecretKey, s.Config.Auth.SessionTTL)

	// a nil *JobService must not become a non-nil interface
	var mailer WelcomeMailer
	if s.Job != nil {
		mailer = s.Job
	}

	return &Services{
		Auth:     NewAuthService(repos.Users, sessions, mailer, s.Logger),
		Catalog:  NewCatalogService(repos.Catalog),
		Feedback: NewFeedbackService(repos.Feedback),
		News:     NewNewsService(repos.News),
		Job:      s.Job,
	}, nil
}
