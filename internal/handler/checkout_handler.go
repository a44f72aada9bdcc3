package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/middleware"
	"github.com/adpulse/opensea-api/internal/payments"
)

// CheckoutHandler opens hosted payment sessions through the payments worker.
type CheckoutHandler struct {
	sessions payments.SessionCreator
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(sessions payments.SessionCreator) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

// Create handles POST /checkout requests. The response data carries the
// hosted payment page URL returned by the worker.
func (h *CheckoutHandler) Create(c echo.Context) error {
	userID := currentUserID(c)
	if userID == nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Kind = strings.TrimSpace(strings.ToLower(req.Kind))
	switch req.Kind {
	case "booking":
		if req.ServiceID == nil || strings.TrimSpace(*req.ServiceID) == "" {
			return Error(c, http.StatusBadRequest, "service_id is required for bookings")
		}
	case "subscription":
		if req.PlanRef == nil || strings.TrimSpace(*req.PlanRef) == "" {
			return Error(c, http.StatusBadRequest, "plan_ref is required for subscriptions")
		}
	default:
		return Error(c, http.StatusBadRequest, "kind must be booking or subscription")
	}

	payload := map[string]any{
		"kind":    req.Kind,
		"user_id": userID.String(),
	}
	if req.ServiceID != nil {
		payload["service_id"] = *req.ServiceID
	}
	if req.PlanRef != nil {
		payload["plan_ref"] = *req.PlanRef
	}
	if req.Amount > 0 {
		payload["amount"] = req.Amount
	}
	if req.Currency != "" {
		payload["currency"] = req.Currency
	}

	requestID, _ := c.Get(middleware.ContextKeyRequestID).(string)
	session, err := h.sessions.CreateSession(c.Request().Context(), payload, requestID)
	if err != nil {
		return Error(c, http.StatusBadGateway, "failed to create payment session")
	}

	return Success(c, http.StatusCreated, "payment session created", session)
}
