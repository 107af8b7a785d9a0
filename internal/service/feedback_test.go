package service

import (
	"context"
	"strings"
	"testing"

	"github.com/deppfellow/kringe-music/internal/model"
)

type fakeFeedback struct {
	rows []model.Feedback
}

func (f *fakeFeedback) Create(_ context.Context, fb *model.Feedback) (int, error) {
	f.rows = append(f.rows, *fb)
	return len(f.rows), nil
}

func TestFeedbackSubmit(t *testing.T) {
	store := &fakeFeedback{}
	svc := NewFeedbackService(store)

	id, err := svc.Submit(context.Background(), FeedbackInput{
		Email:     "fan@kringe.music",
		Rating:    5,
		Comment:   "Отличный сервис, слушаю каждый день",
		IPAddress: "10.0.0.1",
		UserAgent: strings.Repeat("a", 600),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if id != 1 || len(store.rows) != 1 {
		t.Fatalf("id = %d, rows = %d", id, len(store.rows))
	}
	if got := len(store.rows[0].UserAgent); got != 500 {
		t.Errorf("user agent length = %d, want 500", got)
	}
}

func TestFeedbackSubmitUnknownClient(t *testing.T) {
	store := &fakeFeedback{}
	if _, err := NewFeedbackService(store).Submit(context.Background(), FeedbackInput{Email: "a@b.ru", Rating: 3, Comment: "0123456789"}); err != nil {
		t.Fatal(err)
	}
	if row := store.rows[0]; row.IPAddress != "unknown" || row.UserAgent != "unknown" {
		t.Errorf("row = %+v, want unknown client metadata", row)
	}
}
