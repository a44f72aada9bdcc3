package dto

import "time"

// SubscriptionResponse reports the caller's plan, usage and period window.
type SubscriptionResponse struct {
	Plan          string     `json:"plan"`
	Status        string     `json:"status"`
	SearchCount   int        `json:"search_count"`
	SearchLimit   *int       `json:"search_limit"`
	ContactAccess bool       `json:"contact_access"`
	PeriodStart   *time.Time `json:"period_start,omitempty"`
	PeriodEnd     *time.Time `json:"period_end,omitempty"`
}

// BillingWebhookEvent is the card-processor callback payload. PlanRef is
// the provider-side price/tier reference which gets mapped to an internal
// plan identifier.
type BillingWebhookEvent struct {
	Type        string     `json:"type"`
	UserID      string     `json:"user_id"`
	PlanRef     string     `json:"plan_ref,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
}

// CheckoutRequest asks the payments worker to open a payment session.
type CheckoutRequest struct {
	Kind      string  `json:"kind"` // "booking" or "subscription"
	ServiceID *string `json:"service_id,omitempty"`
	PlanRef   *string `json:"plan_ref,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}
