package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/kringe-music/internal/model"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Create stores f and returns the generated id.
func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (email, rating, comment, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		f.Email, f.Rating, f.Comment, f.IPAddress, f.UserAgent,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}
	return id, nil
}
