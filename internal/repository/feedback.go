package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpulse/opensea-api/internal/entity"
)

// FeedbackRepository persists user feedback submissions.
type FeedbackRepository interface {
	Insert(ctx context.Context, feedback *entity.Feedback) error
}

// PGXFeedbackRepository implements FeedbackRepository with pgx.
type PGXFeedbackRepository struct {
	pool pgxPool
}

// NewPGXFeedbackRepository instantiates a feedback repository.
func NewPGXFeedbackRepository(pool *pgxpool.Pool) *PGXFeedbackRepository {
	return &PGXFeedbackRepository{pool: pool}
}

// Insert writes one feedback row.
func (r *PGXFeedbackRepository) Insert(ctx context.Context, feedback *entity.Feedback) error {
	if feedback == nil {
		return fmt.Errorf("feedback payload is nil")
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO user_feedback (rating, comment, service_id, user_id)
        VALUES ($1, $2, $3, $4)
    `, feedback.Rating, feedback.Comment, feedback.ServiceID, feedback.UserID)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}

	return nil
}
