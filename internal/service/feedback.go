package service

import (
	"context"

	"github.com/deppfellow/kringe-music/internal/lib/utils"
	"github.com/deppfellow/kringe-music/internal/model"
)

const (
	MsgFeedbackThanks = "Спасибо за ваш отзыв! Ваше мнение очень важно для нас."

	maxUserAgentLen = 500
	unknownClient   = "unknown"
)

type FeedbackStore interface {
	Create(ctx context.Context, f *model.Feedback) (int, error)
}

type FeedbackService struct {
	store FeedbackStore
}

func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store}
}

// FeedbackInput is a validated review plus request metadata.
type FeedbackInput struct {
	Email     string
	Rating    int
	Comment   string
	IPAddress string
	UserAgent string
}

// Submit stores the review and returns its id.
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (int, error) {
	return s.store.Create(ctx, &model.Feedback{
		Email:     in.Email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		IPAddress: utils.FirstNonEmpty(in.IPAddress, unknownClient),
		UserAgent: utils.Truncate(utils.FirstNonEmpty(in.UserAgent, unknownClient), maxUserAgentLen),
	})
}
