package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/service"
)

func postWebhook(e *echo.Echo, event dto.BillingWebhookEvent, secret string) (*httptest.ResponseRecorder, echo.Context) {
	body, _ := json.Marshal(event)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/billing", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestBillingWebhookHandler_Handle(t *testing.T) {
	e := echo.New()

	t.Run("rejects wrong secret", func(t *testing.T) {
		subs := &stubSubscriptionsRepo{}
		handler := NewBillingWebhookHandler(service.NewBillingService(subs), "expected-secret")

		rec, c := postWebhook(e, dto.BillingWebhookEvent{
			Type: service.EventInvoicePaid, UserID: uuid.New().String(),
		}, "wrong-secret")
		_ = handler.Handle(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewBillingWebhookHandler(service.NewBillingService(&stubSubscriptionsRepo{}), "")

		rec, c := postWebhook(e, dto.BillingWebhookEvent{}, "")
		_ = handler.Handle(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("activation upgrades the subscription", func(t *testing.T) {
		userID := uuid.New()
		subs := &stubSubscriptionsRepo{}
		handler := NewBillingWebhookHandler(service.NewBillingService(subs), "expected-secret")

		rec, c := postWebhook(e, dto.BillingWebhookEvent{
			Type:    service.EventSubscriptionActivated,
			UserID:  userID.String(),
			PlanRef: "price_pro_monthly",
		}, "expected-secret")
		_ = handler.Handle(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if subs.sub == nil || subs.sub.Plan != entity.PlanPro || subs.sub.Status != entity.SubscriptionActive {
			t.Fatalf("unexpected subscription state: %+v", subs.sub)
		}
	})

	t.Run("unknown events are acknowledged", func(t *testing.T) {
		handler := NewBillingWebhookHandler(service.NewBillingService(&stubSubscriptionsRepo{}), "")

		rec, c := postWebhook(e, dto.BillingWebhookEvent{
			Type: "customer.updated", UserID: uuid.New().String(),
		}, "")
		_ = handler.Handle(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for unknown event, got %d", rec.Code)
		}
	})
}
