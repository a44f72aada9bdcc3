package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/repository"
	"github.com/adpulse/opensea-api/internal/service"
)

// SubscriptionHandler exposes the caller's subscription endpoints.
type SubscriptionHandler struct {
	entitlements *service.EntitlementService
}

// NewSubscriptionHandler constructs a SubscriptionHandler.
func NewSubscriptionHandler(entitlements *service.EntitlementService) *SubscriptionHandler {
	return &SubscriptionHandler{entitlements: entitlements}
}

// Current handles GET /me/subscription requests.
func (h *SubscriptionHandler) Current(c echo.Context) error {
	userID := currentUserID(c)
	if userID == nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	sub, err := h.entitlements.Current(c.Request().Context(), *userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load subscription")
	}

	limits := entity.LimitsForPlan(sub.Plan)
	resp := dto.SubscriptionResponse{
		Plan:          sub.Plan,
		Status:        sub.Status,
		SearchCount:   sub.SearchCount,
		SearchLimit:   limits.SearchLimit,
		ContactAccess: limits.ContactAccess,
	}
	if !sub.PeriodStart.IsZero() {
		resp.PeriodStart = &sub.PeriodStart
	}
	if !sub.PeriodEnd.IsZero() {
		resp.PeriodEnd = &sub.PeriodEnd
	}

	return Success(c, http.StatusOK, "subscription retrieved", resp)
}

// Cancel handles POST /me/subscription/cancel requests. Cancelling an
// already-canceled subscription succeeds without changes.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	userID := currentUserID(c)
	if userID == nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	if err := h.entitlements.Cancel(c.Request().Context(), *userID); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return Error(c, http.StatusNotFound, "no subscription to cancel")
		}
		return Error(c, http.StatusInternalServerError, "failed to cancel subscription")
	}

	return Success(c, http.StatusOK, "subscription canceled", nil)
}
