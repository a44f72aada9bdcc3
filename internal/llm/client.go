package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adpulse/opensea-api/internal/entity"
)

// Turn is one prior exchange forwarded by the caller.
type Turn struct {
	Role    string
	Content string
}

// Responder produces a free-text answer for a chat turn. The returned text
// is always non-empty; implementations substitute ApologyMessage on failure
// and report fallback=true in that case.
type Responder interface {
	Respond(ctx context.Context, message string, category entity.Category, history []Turn) (text string, fallback bool)
}

// ApologyMessage is returned verbatim when the model call errors or comes
// back empty. Arabic first, matching the deployed locale.
const ApologyMessage = "عذراً، لم أتمكن من معالجة طلبك الآن. الرجاء المحاولة مرة أخرى لاحقاً. Sorry, I couldn't process your request right now, please try again later."

const systemPrompt = "أنت مساعد منصة أبوظبي أوبن سي، سوق يربط العملاء بمزودي الخدمات المحليين في أبوظبي. " +
	"You are the Abu Dhabi OpenSea assistant, a marketplace connecting customers with local service providers in Abu Dhabi. " +
	"Answer in the language of the user's message, preferring Arabic when the message is in Arabic. " +
	"Be concise, friendly and practical."

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a completion client for the configured endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Respond submits a single completion request. When a category was detected
// but structured search found nothing, the system prompt additionally asks
// for general guidance about that category in Abu Dhabi. There is no
// server-side memory: only the turns the caller passes are included.
func (c *Client) Respond(ctx context.Context, message string, category entity.Category, history []Turn) (string, bool) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: buildSystemPrompt(category),
	})

	for _, turn := range history {
		role := strings.ToLower(strings.TrimSpace(turn.Role))
		if role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			continue
		}
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return ApologyMessage, true
	}
	if len(resp.Choices) == 0 {
		return ApologyMessage, true
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return ApologyMessage, true
	}

	return content, false
}

func buildSystemPrompt(category entity.Category) string {
	if category == "" || category == entity.CategoryNone {
		return systemPrompt
	}
	return systemPrompt + fmt.Sprintf(
		" The user asked about the %s category but no matching listings were found; give general informational guidance about %s services in Abu Dhabi.",
		category, strings.ReplaceAll(string(category), "_", " "),
	)
}
