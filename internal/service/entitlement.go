package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/repository"
)

// Entitlement is the advisory verdict for a user: whether another search is
// allowed this period and whether contact fields may be shown. It never
// blocks the search client itself; callers consult it before searching and
// record usage afterwards.
type Entitlement struct {
	Plan            string `json:"plan"`
	CanSearch       bool   `json:"can_search"`
	CanViewContacts bool   `json:"can_view_contacts"`
	Remaining       *int   `json:"remaining,omitempty"` // nil means unlimited
}

// EntitlementService derives entitlements from plan configuration joined
// with the usage counter.
type EntitlementService struct {
	subs repository.SubscriptionsRepository
	now  func() time.Time
}

// NewEntitlementService builds the gate on top of the subscriptions store.
func NewEntitlementService(subs repository.SubscriptionsRepository) *EntitlementService {
	return &EntitlementService{subs: subs, now: time.Now}
}

// Check returns the caller's current entitlement. Users without a
// subscription row are set up on the free tier; expired periods are rolled
// over with the counter reset. Non-active subscriptions fall back to free
// limits.
func (s *EntitlementService) Check(ctx context.Context, userID uuid.UUID) (Entitlement, error) {
	sub, err := s.subs.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		sub, err = s.provisionFree(ctx, userID)
	}
	if err != nil {
		return Entitlement{}, fmt.Errorf("load subscription: %w", err)
	}

	now := s.now()
	if sub.Expired(now) {
		start, end := periodFor(sub.Plan, now)
		if err := s.subs.ResetUsage(ctx, userID, start, end); err != nil {
			return Entitlement{}, fmt.Errorf("roll over billing period: %w", err)
		}
		sub.SearchCount = 0
		sub.PeriodStart = start
		sub.PeriodEnd = end
	}

	plan := sub.Plan
	if sub.Status != entity.SubscriptionActive {
		plan = entity.PlanFree
	}

	limits := entity.LimitsForPlan(plan)
	ent := Entitlement{
		Plan:            plan,
		CanViewContacts: limits.ContactAccess,
	}
	if limits.SearchLimit == nil {
		ent.CanSearch = true
		return ent, nil
	}

	remaining := *limits.SearchLimit - sub.SearchCount
	if remaining < 0 {
		remaining = 0
	}
	ent.Remaining = &remaining
	ent.CanSearch = remaining > 0
	return ent, nil
}

// RecordSearch bumps the usage counter after a successful search.
func (s *EntitlementService) RecordSearch(ctx context.Context, userID uuid.UUID) error {
	return s.subs.IncrementSearchCount(ctx, userID)
}

// Cancel moves an active subscription to the terminal canceled state.
func (s *EntitlementService) Cancel(ctx context.Context, userID uuid.UUID) error {
	sub, err := s.subs.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if sub.Status == entity.SubscriptionCanceled {
		return nil
	}
	return s.subs.UpdateStatus(ctx, userID, entity.SubscriptionCanceled)
}

// Current returns the raw subscription row, provisioning a free one when
// missing.
func (s *EntitlementService) Current(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.subs.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return s.provisionFree(ctx, userID)
	}
	return sub, err
}

func (s *EntitlementService) provisionFree(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	start, end := periodFor(entity.PlanFree, s.now())
	sub := &entity.Subscription{
		UserID:      userID,
		Plan:        entity.PlanFree,
		Status:      entity.SubscriptionActive,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	if err := s.subs.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// periodFor computes the billing window: daily for the free tier, monthly
// for paid plans.
func periodFor(plan string, now time.Time) (time.Time, time.Time) {
	if plan == entity.PlanFree {
		start := now.Truncate(24 * time.Hour)
		return start, start.Add(24 * time.Hour)
	}
	return now, now.AddDate(0, 1, 0)
}
