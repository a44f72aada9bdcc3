package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feedback captures a user rating for the assistant or a specific listing.
type Feedback struct {
	ID        uuid.UUID  `json:"id"`
	Rating    int        `json:"rating"`
	Comment   *string    `json:"comment,omitempty"`
	ServiceID *uuid.UUID `json:"service_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
