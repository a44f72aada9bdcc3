package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/llm"
	"github.com/adpulse/opensea-api/internal/repository"
)

type stubServicesRepo struct {
	services    []entity.Service
	err         error
	lastFilter  dto.ServiceFilter
	searchCalls int
	upserted    []*entity.Service
	bulkRecords []repository.BulkUpsertServiceInput
	bulkResult  repository.BulkUpsertResult
}

func (s *stubServicesRepo) Search(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, error) {
	s.searchCalls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.services, nil
}

func (s *stubServicesRepo) Upsert(ctx context.Context, service *entity.Service) error {
	if s.err != nil {
		return s.err
	}
	s.upserted = append(s.upserted, service)
	return nil
}

func (s *stubServicesRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.services) == 0 {
		return nil, repository.ErrServiceNotFound
	}
	copied := s.services[0]
	return &copied, nil
}

func (s *stubServicesRepo) BulkUpsert(ctx context.Context, records []repository.BulkUpsertServiceInput) (repository.BulkUpsertResult, error) {
	if s.err != nil {
		return repository.BulkUpsertResult{}, s.err
	}
	s.bulkRecords = records
	return s.bulkResult, nil
}

type stubInteractionsRepo struct {
	mu       sync.Mutex
	err      error
	inserted []entity.Interaction
}

func (s *stubInteractionsRepo) Insert(ctx context.Context, interaction *entity.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, *interaction)
	return nil
}

func (s *stubInteractionsRepo) ListRecent(ctx context.Context, limit int) ([]entity.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Interaction(nil), s.inserted...), nil
}

func (s *stubInteractionsRepo) rows() []entity.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Interaction(nil), s.inserted...)
}

type stubResponder struct {
	text        string
	fallback    bool
	called      bool
	gotMessage  string
	gotCategory entity.Category
	gotHistory  []llm.Turn
}

func (s *stubResponder) Respond(ctx context.Context, message string, category entity.Category, history []llm.Turn) (string, bool) {
	s.called = true
	s.gotMessage = message
	s.gotCategory = category
	s.gotHistory = history
	if s.text == "" {
		return llm.ApologyMessage, true
	}
	return s.text, s.fallback
}

type stubSubscriptionsRepo struct {
	sub        *entity.Subscription
	getErr     error
	execErr    error
	increments int
	statuses   []string
	upserts    []*entity.Subscription
	resets     int
}

func (s *stubSubscriptionsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.sub == nil {
		return nil, repository.ErrSubscriptionNotFound
	}
	copied := *s.sub
	return &copied, nil
}

func (s *stubSubscriptionsRepo) Upsert(ctx context.Context, sub *entity.Subscription) error {
	if s.execErr != nil {
		return s.execErr
	}
	copied := *sub
	s.upserts = append(s.upserts, &copied)
	s.sub = &copied
	return nil
}

func (s *stubSubscriptionsRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	if s.execErr != nil {
		return s.execErr
	}
	if s.sub == nil {
		return repository.ErrSubscriptionNotFound
	}
	s.statuses = append(s.statuses, status)
	s.sub.Status = status
	return nil
}

func (s *stubSubscriptionsRepo) IncrementSearchCount(ctx context.Context, userID uuid.UUID) error {
	if s.execErr != nil {
		return s.execErr
	}
	if s.sub == nil {
		return repository.ErrSubscriptionNotFound
	}
	s.increments++
	s.sub.SearchCount++
	return nil
}

func (s *stubSubscriptionsRepo) ResetUsage(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) error {
	if s.execErr != nil {
		return s.execErr
	}
	if s.sub == nil {
		return repository.ErrSubscriptionNotFound
	}
	s.resets++
	s.sub.SearchCount = 0
	s.sub.PeriodStart = periodStart
	s.sub.PeriodEnd = periodEnd
	return nil
}

type stubFeedbackRepo struct {
	err      error
	inserted []*entity.Feedback
}

func (s *stubFeedbackRepo) Insert(ctx context.Context, feedback *entity.Feedback) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, feedback)
	return nil
}
