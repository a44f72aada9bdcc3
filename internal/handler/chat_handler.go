package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/service"
)

// ChatHandler exposes the assistant endpoint.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Handle processes POST /chat requests. The endpoint serves both guests and
// signed-in users; the response always carries a session id so clients can
// thread follow-up turns.
func (h *ChatHandler) Handle(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if strings.TrimSpace(req.Message) == "" {
		return Error(c, http.StatusBadRequest, "message is required")
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result := h.chat.Handle(c.Request().Context(), currentUserID(c), req)

	resp := dto.ChatResponse{
		SessionID: sessionID,
		Source:    result.Source,
		Message:   result.Message,
		Services:  result.Services,
	}
	if result.Category != "" {
		resp.Context = map[string]any{"category": string(result.Category)}
	}

	return Success(c, http.StatusOK, "chat turn processed", resp)
}
