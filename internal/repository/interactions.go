package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpulse/opensea-api/internal/entity"
)

// InteractionsRepository persists the chat audit trail.
type InteractionsRepository interface {
	Insert(ctx context.Context, interaction *entity.Interaction) error
	ListRecent(ctx context.Context, limit int) ([]entity.Interaction, error)
}

// PGXInteractionsRepository implements InteractionsRepository with pgx.
type PGXInteractionsRepository struct {
	pool pgxPool
}

// NewPGXInteractionsRepository instantiates an interactions repository.
func NewPGXInteractionsRepository(pool *pgxpool.Pool) *PGXInteractionsRepository {
	return &PGXInteractionsRepository{pool: pool}
}

// Insert writes one audit row for a chat turn.
func (r *PGXInteractionsRepository) Insert(ctx context.Context, interaction *entity.Interaction) error {
	if interaction == nil {
		return fmt.Errorf("interaction payload is nil")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO user_requests (user_input, response, source, user_id)
        VALUES ($1, $2, $3, $4)
    `, interaction.UserInput, interaction.Response, interaction.Source, interaction.UserID)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	return nil
}

// ListRecent returns the newest audit rows, for the admin dashboard.
func (r *PGXInteractionsRepository) ListRecent(ctx context.Context, limit int) ([]entity.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, user_input, response, source, user_id, created_at
        FROM user_requests
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []entity.Interaction
	for rows.Next() {
		var (
			i      entity.Interaction
			userID sql.NullString
		)
		if err := rows.Scan(&i.ID, &i.UserInput, &i.Response, &i.Source, &userID, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		if userID.Valid {
			parsed, parseErr := uuid.Parse(userID.String)
			if parseErr != nil {
				return nil, fmt.Errorf("parse interaction user_id: %w", parseErr)
			}
			i.UserID = &parsed
		}
		interactions = append(interactions, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return interactions, nil
}
