package entity

import (
	"time"

	"github.com/google/uuid"
)

// Plan identifiers. The webhook handler maps provider price references to
// one of these.
const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPro      = "pro"
)

// Subscription statuses. active may move to canceled (terminal) or to
// past_due/unpaid when a recurring charge fails; no other transitions are
// modeled.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
	SubscriptionUnpaid   = "unpaid"
)

// PlanLimits describes what a plan permits. A nil SearchLimit means
// unlimited searches.
type PlanLimits struct {
	SearchLimit   *int
	ContactAccess bool
}

// LimitsForPlan returns the entitlement configuration for a plan
// identifier. Unknown plans fall back to the free tier.
func LimitsForPlan(plan string) PlanLimits {
	switch plan {
	case PlanStandard:
		limit := 50
		return PlanLimits{SearchLimit: &limit, ContactAccess: true}
	case PlanPro:
		return PlanLimits{SearchLimit: nil, ContactAccess: true}
	default:
		limit := 1
		return PlanLimits{SearchLimit: &limit, ContactAccess: false}
	}
}

// Subscription is the billing state for a user. Mutated by the billing
// webhook and by explicit cancellation; read by the entitlement gate.
type Subscription struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Plan        string    `json:"plan"`
	Status      string    `json:"status"`
	SearchCount int       `json:"search_count"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Expired reports whether the current billing period has ended.
func (s *Subscription) Expired(now time.Time) bool {
	return !s.PeriodEnd.IsZero() && now.After(s.PeriodEnd)
}
