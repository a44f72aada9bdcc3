package dto

import "github.com/adpulse/opensea-api/internal/entity"

// ChatTurn is one prior exchange forwarded by the client. The server keeps
// no conversation memory of its own.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound payload for the assistant endpoint.
type ChatRequest struct {
	Message     string     `json:"message"`
	SessionID   string     `json:"session_id,omitempty"`
	ChatHistory []ChatTurn `json:"chat_history,omitempty"`
	GPTMode     string     `json:"gpt_mode,omitempty"`
}

// ChatResponse reports the routed answer and, for structured hits, the
// matching listings.
type ChatResponse struct {
	SessionID string           `json:"session_id"`
	Source    string           `json:"source"`
	Message   string           `json:"message"`
	Services  []entity.Service `json:"services,omitempty"`
	Context   map[string]any   `json:"context,omitempty"`
}
