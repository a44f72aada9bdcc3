package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/service"
)

func newChatHandler(services *stubServicesRepo, responder *stubResponder) (*ChatHandler, *service.ChatService) {
	chat := service.NewChatService(services, &stubInteractionsRepo{}, responder, nil, 5)
	return NewChatHandler(chat), chat
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestChatHandler_Handle(t *testing.T) {
	e := echo.New()

	t.Run("invalid payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler, _ := newChatHandler(&stubServicesRepo{}, &stubResponder{text: "hi"})
		_ = handler.Handle(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing message", func(t *testing.T) {
		body, _ := json.Marshal(dto.ChatRequest{Message: "   "})
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler, _ := newChatHandler(&stubServicesRepo{}, &stubResponder{text: "hi"})
		_ = handler.Handle(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("structured hit generates session id", func(t *testing.T) {
		phone := "+971501234567"
		services := &stubServicesRepo{
			search: func(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, error) {
				return []entity.Service{{Name: "Elite PT", Category: entity.CategoryPersonalTrainers, Phone: &phone}}, nil
			},
		}

		body, _ := json.Marshal(dto.ChatRequest{Message: "looking for a personal trainer"})
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler, chat := newChatHandler(services, &stubResponder{text: "hi"})
		_ = handler.Handle(c)
		chat.WaitAudits()

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		resp := decodeEnvelope(t, rec)
		data, _ := json.Marshal(resp.Data)
		var chatResp dto.ChatResponse
		if err := json.Unmarshal(data, &chatResp); err != nil {
			t.Fatalf("decode chat response: %v", err)
		}
		if chatResp.SessionID == "" {
			t.Fatalf("expected generated session id")
		}
		if chatResp.Source != entity.SourceSupabase {
			t.Fatalf("expected supabase source, got %s", chatResp.Source)
		}
		if len(chatResp.Services) != 1 {
			t.Fatalf("expected one listing, got %d", len(chatResp.Services))
		}
	})

	t.Run("session id is preserved", func(t *testing.T) {
		body, _ := json.Marshal(dto.ChatRequest{Message: "hello", SessionID: "session-42"})
		req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler, chat := newChatHandler(&stubServicesRepo{}, &stubResponder{text: "hello back"})
		_ = handler.Handle(c)
		chat.WaitAudits()

		resp := decodeEnvelope(t, rec)
		data, _ := json.Marshal(resp.Data)
		var chatResp dto.ChatResponse
		_ = json.Unmarshal(data, &chatResp)
		if chatResp.SessionID != "session-42" {
			t.Fatalf("expected session id preserved, got %q", chatResp.SessionID)
		}
		if chatResp.Source != entity.SourceGPT {
			t.Fatalf("expected gpt source, got %s", chatResp.Source)
		}
	})
}
