package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/middleware"
)

// currentUserID extracts the authenticated user id from the request context.
// Returns nil for anonymous requests or malformed subjects.
func currentUserID(c echo.Context) *uuid.UUID {
	value, ok := c.Get(middleware.ContextKeyUserID).(string)
	if !ok || value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
