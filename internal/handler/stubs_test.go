package handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/llm"
	"github.com/adpulse/opensea-api/internal/repository"
)

type stubServicesRepo struct {
	search     func(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, error)
	upsert     func(ctx context.Context, service *entity.Service) error
	getByID    func(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	bulkUpsert func(ctx context.Context, records []repository.BulkUpsertServiceInput) (repository.BulkUpsertResult, error)
}

func (s *stubServicesRepo) Search(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, error) {
	if s.search != nil {
		return s.search(ctx, filter)
	}
	return nil, nil
}

func (s *stubServicesRepo) Upsert(ctx context.Context, service *entity.Service) error {
	if s.upsert != nil {
		return s.upsert(ctx, service)
	}
	return nil
}

func (s *stubServicesRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, repository.ErrServiceNotFound
}

func (s *stubServicesRepo) BulkUpsert(ctx context.Context, records []repository.BulkUpsertServiceInput) (repository.BulkUpsertResult, error) {
	if s.bulkUpsert != nil {
		return s.bulkUpsert(ctx, records)
	}
	return repository.BulkUpsertResult{}, nil
}

type stubInteractionsRepo struct {
	mu       sync.Mutex
	inserted []entity.Interaction
}

func (s *stubInteractionsRepo) Insert(ctx context.Context, interaction *entity.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, *interaction)
	return nil
}

func (s *stubInteractionsRepo) ListRecent(ctx context.Context, limit int) ([]entity.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Interaction(nil), s.inserted...), nil
}

type stubResponder struct {
	text string
}

func (s *stubResponder) Respond(ctx context.Context, message string, category entity.Category, history []llm.Turn) (string, bool) {
	if s.text == "" {
		return llm.ApologyMessage, true
	}
	return s.text, false
}

type stubSubscriptionsRepo struct {
	sub *entity.Subscription
}

func (s *stubSubscriptionsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	if s.sub == nil {
		return nil, repository.ErrSubscriptionNotFound
	}
	copied := *s.sub
	return &copied, nil
}

func (s *stubSubscriptionsRepo) Upsert(ctx context.Context, sub *entity.Subscription) error {
	copied := *sub
	s.sub = &copied
	return nil
}

func (s *stubSubscriptionsRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	if s.sub == nil {
		return repository.ErrSubscriptionNotFound
	}
	s.sub.Status = status
	return nil
}

func (s *stubSubscriptionsRepo) IncrementSearchCount(ctx context.Context, userID uuid.UUID) error {
	if s.sub == nil {
		return repository.ErrSubscriptionNotFound
	}
	s.sub.SearchCount++
	return nil
}

func (s *stubSubscriptionsRepo) ResetUsage(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) error {
	if s.sub == nil {
		return repository.ErrSubscriptionNotFound
	}
	s.sub.SearchCount = 0
	s.sub.PeriodStart = periodStart
	s.sub.PeriodEnd = periodEnd
	return nil
}

type stubFeedbackRepo struct {
	insert func(ctx context.Context, feedback *entity.Feedback) error
}

func (s *stubFeedbackRepo) Insert(ctx context.Context, feedback *entity.Feedback) error {
	if s.insert != nil {
		return s.insert(ctx, feedback)
	}
	return nil
}

type stubSessionCreator struct {
	create func(ctx context.Context, payload any, requestID string) (map[string]any, error)
}

func (s *stubSessionCreator) CreateSession(ctx context.Context, payload any, requestID string) (map[string]any, error) {
	if s.create != nil {
		return s.create(ctx, payload, requestID)
	}
	return nil, errors.New("not implemented")
}
