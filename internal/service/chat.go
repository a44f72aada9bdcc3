package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adpulse/opensea-api/internal/dto"
	"github.com/adpulse/opensea-api/internal/entity"
	"github.com/adpulse/opensea-api/internal/llm"
	"github.com/adpulse/opensea-api/internal/repository"
)

const auditTimeout = 5 * time.Second

// ChatResult is the routed outcome of one chat turn.
type ChatResult struct {
	Source   string
	Message  string
	Services []entity.Service
	Category entity.Category
}

// ChatService is the canonical message router. Per turn it detects a
// category, queries the catalogue, and either answers from structured
// records or falls through to the model, then audits the interaction.
type ChatService struct {
	services     repository.ServicesRepository
	interactions repository.InteractionsRepository
	responder    llm.Responder
	entitlements *EntitlementService
	pageSize     int

	audits sync.WaitGroup
}

// NewChatService wires the router. pageSize caps structured results per turn.
func NewChatService(
	services repository.ServicesRepository,
	interactions repository.InteractionsRepository,
	responder llm.Responder,
	entitlements *EntitlementService,
	pageSize int,
) *ChatService {
	if pageSize <= 0 {
		pageSize = 5
	}
	if pageSize > 10 {
		pageSize = 10
	}
	return &ChatService{
		services:     services,
		interactions: interactions,
		responder:    responder,
		entitlements: entitlements,
		pageSize:     pageSize,
	}
}

// Handle routes one chat turn: detect → search → (hit? structured : model)
// → audit → return. Every failure path still resolves to a valid response;
// the method never returns an error to the caller.
func (s *ChatService) Handle(ctx context.Context, userID *uuid.UUID, req dto.ChatRequest) ChatResult {
	message := strings.TrimSpace(req.Message)
	category := DetectCategory(message)

	result := ChatResult{Category: category}

	searchAllowed := !strings.EqualFold(req.GPTMode, "gpt")
	contactsAllowed := false
	if userID != nil && s.entitlements != nil {
		ent, err := s.entitlements.Check(ctx, *userID)
		if err != nil {
			log.Printf("entitlement check failed: user_id=%s err=%v", userID, err)
		} else {
			contactsAllowed = ent.CanViewContacts
			if !ent.CanSearch {
				searchAllowed = false
			}
		}
	}

	if searchAllowed {
		services, searched := s.search(ctx, category, message)
		if searched && userID != nil && s.entitlements != nil {
			if err := s.entitlements.RecordSearch(ctx, *userID); err != nil {
				log.Printf("record search failed: user_id=%s err=%v", userID, err)
			}
		}
		if len(services) > 0 {
			if !contactsAllowed {
				for i := range services {
					services[i].StripContacts()
				}
			}
			result.Source = entity.SourceSupabase
			result.Services = services
			result.Message = structuredMessage(category, len(services))
			s.audit(userID, message, result.Message, result.Source)
			return result
		}
	}

	text, fallback := s.responder.Respond(ctx, message, category, toTurns(req.ChatHistory))
	result.Message = text
	result.Source = entity.SourceGPT
	if fallback {
		result.Source = entity.SourceFallback
	}
	s.audit(userID, message, result.Message, result.Source)
	return result
}

// search queries the catalogue, degrading any datastore error to an empty
// result set so the turn falls through to the model. The second return
// reports whether the query actually succeeded, so only real searches count
// against the usage quota.
func (s *ChatService) search(ctx context.Context, category entity.Category, message string) ([]entity.Service, bool) {
	filter := dto.ServiceFilter{Limit: s.pageSize}
	if category != entity.CategoryNone {
		filter.Category = category
	} else {
		filter.Q = message
	}

	services, err := s.services.Search(ctx, filter)
	if err != nil {
		log.Printf("structured search failed, falling back to model: err=%v", err)
		return nil, false
	}
	return services, true
}

// audit dispatches the fire-and-forget interaction write. Failures are
// logged and discarded; the user-visible response is never affected.
func (s *ChatService) audit(userID *uuid.UUID, input, response, source string) {
	s.audits.Add(1)
	go func() {
		defer s.audits.Done()

		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		err := s.interactions.Insert(ctx, &entity.Interaction{
			UserInput: input,
			Response:  response,
			Source:    source,
			UserID:    userID,
		})
		if err != nil {
			log.Printf("audit insert failed: source=%s err=%v", source, err)
		}
	}()
}

// WaitAudits blocks until pending audit writes finish. Used during shutdown
// and in tests.
func (s *ChatService) WaitAudits() {
	s.audits.Wait()
}

func structuredMessage(category entity.Category, count int) string {
	label := "خدمات"
	if category != entity.CategoryNone {
		label = strings.ReplaceAll(string(category), "_", " ")
	}
	return fmt.Sprintf("وجدنا %d من النتائج المطابقة لطلبك. Here are %d matching %s listings in Abu Dhabi.", count, count, label)
}

func toTurns(history []dto.ChatTurn) []llm.Turn {
	if len(history) == 0 {
		return nil
	}
	turns := make([]llm.Turn, 0, len(history))
	for _, h := range history {
		turns = append(turns, llm.Turn{Role: h.Role, Content: h.Content})
	}
	return turns
}
