package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/repository"
)

// ErrInvalidRating indicates the rating is outside the 1-5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// FeedbackService records user feedback submissions.
type FeedbackService struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService builds a new FeedbackService instance.
func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Submit validates and stores one feedback entry.
func (s *FeedbackService) Submit(ctx context.Context, userID *uuid.UUID, req dto.FeedbackRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return ErrInvalidRating
	}

	feedback := &entity.Feedback{
		Rating: req.Rating,
		UserID: userID,
	}

	if req.Comment != nil {
		if comment := strings.TrimSpace(*req.Comment); comment != "" {
			feedback.Comment = &comment
		}
	}
	if req.ServiceID != nil && strings.TrimSpace(*req.ServiceID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*req.ServiceID))
		if err != nil {
			return errors.New("invalid service_id")
		}
		feedback.ServiceID = &parsed
	}

	return s.repo.Insert(ctx, feedback)
}
