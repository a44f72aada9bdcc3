package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/service"
)

// FeedbackHandler exposes the feedback submission endpoint.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit handles POST /feedback requests.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req dto.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.feedback.Submit(c.Request().Context(), currentUserID(c), req); err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			return Error(c, http.StatusBadRequest, "rating must be between 1 and 5")
		}
		return Error(c, http.StatusBadRequest, err.Error())
	}

	return Success(c, http.StatusCreated, "feedback recorded", nil)
}
