package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/service"
)

// webhookSecretHeader carries the shared secret agreed with the card
// processor.
const webhookSecretHeader = "X-Webhook-Secret"

// BillingWebhookHandler receives card-processor callbacks.
type BillingWebhookHandler struct {
	billing *service.BillingService
	secret  string
}

// NewBillingWebhookHandler constructs a BillingWebhookHandler.
func NewBillingWebhookHandler(billing *service.BillingService, secret string) *BillingWebhookHandler {
	return &BillingWebhookHandler{billing: billing, secret: secret}
}

// Handle processes POST /webhooks/billing requests. Unknown event types are
// acknowledged so the processor does not retry them forever.
func (h *BillingWebhookHandler) Handle(c echo.Context) error {
	if h.secret != "" {
		provided := c.Request().Header.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			return Error(c, http.StatusUnauthorized, "invalid webhook secret")
		}
	}

	var event dto.BillingWebhookEvent
	if err := c.Bind(&event); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if event.Type == "" || event.UserID == "" {
		return Error(c, http.StatusBadRequest, "type and user_id are required")
	}

	if err := h.billing.Process(c.Request().Context(), event); err != nil {
		if errors.Is(err, service.ErrUnknownEvent) {
			return Success(c, http.StatusOK, "event ignored", nil)
		}
		return Error(c, http.StatusInternalServerError, "failed to process event")
	}

	return Success(c, http.StatusOK, "event processed", nil)
}
