package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/repository"
)

// Webhook event types sent by the card processor.
const (
	EventSubscriptionActivated = "subscription.activated"
	EventInvoicePaid           = "invoice.paid"
	EventPaymentFailed         = "invoice.payment_failed"
	EventSubscriptionUnpaid    = "subscription.unpaid"
	EventSubscriptionCanceled  = "subscription.canceled"
)

// ErrUnknownEvent indicates an event type the handler does not process.
var ErrUnknownEvent = errors.New("unknown webhook event type")

// planRefMapping maps provider-side price references to internal plans.
var planRefMapping = map[string]string{
	"price_standard_monthly": entity.PlanStandard,
	"price_standard_yearly":  entity.PlanStandard,
	"price_pro_monthly":      entity.PlanPro,
	"price_pro_yearly":       entity.PlanPro,
}

// BillingService applies card-processor webhook events to subscription
// state. This is the only writer of paid-plan transitions; the entitlement
// gate only reads the result.
type BillingService struct {
	subs repository.SubscriptionsRepository
	now  func() time.Time
}

// NewBillingService builds the webhook processor.
func NewBillingService(subs repository.SubscriptionsRepository) *BillingService {
	return &BillingService{subs: subs, now: time.Now}
}

// PlanForRef resolves a provider plan reference to an internal plan
// identifier. Unknown references map to the free tier.
func PlanForRef(ref string) string {
	if plan, ok := planRefMapping[strings.ToLower(strings.TrimSpace(ref))]; ok {
		return plan
	}
	return entity.PlanFree
}

// Process applies one webhook event. Activation and renewal reset the usage
// counter and open a fresh billing period; failures and cancellations only
// flip the status.
func (s *BillingService) Process(ctx context.Context, event dto.BillingWebhookEvent) error {
	userID, err := uuid.Parse(strings.TrimSpace(event.UserID))
	if err != nil {
		return fmt.Errorf("invalid user_id: %w", err)
	}

	switch event.Type {
	case EventSubscriptionActivated, EventInvoicePaid:
		plan := PlanForRef(event.PlanRef)
		start, end := s.period(event)
		return s.subs.Upsert(ctx, &entity.Subscription{
			UserID:      userID,
			Plan:        plan,
			Status:      entity.SubscriptionActive,
			SearchCount: 0,
			PeriodStart: start,
			PeriodEnd:   end,
		})
	case EventPaymentFailed:
		return s.subs.UpdateStatus(ctx, userID, entity.SubscriptionPastDue)
	case EventSubscriptionUnpaid:
		return s.subs.UpdateStatus(ctx, userID, entity.SubscriptionUnpaid)
	case EventSubscriptionCanceled:
		return s.subs.UpdateStatus(ctx, userID, entity.SubscriptionCanceled)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event.Type)
	}
}

func (s *BillingService) period(event dto.BillingWebhookEvent) (time.Time, time.Time) {
	now := s.now()
	start := now
	end := now.AddDate(0, 1, 0)
	if event.PeriodStart != nil {
		start = *event.PeriodStart
	}
	if event.PeriodEnd != nil {
		end = *event.PeriodEnd
	}
	return start, end
}
