package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/dto"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/intent"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
)

// ChatService answers questions against the transaction store
type ChatService struct {
	router     *intent.Router
	repository repository.TransactionRepository
	log        *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(repo repository.TransactionRepository, log *zap.Logger) *ChatService {
	return &ChatService{
		router:     intent.NewRouter(repo, log),
		repository: repo,
		log:        log,
	}
}

// Ask classifies the message and answers it. Parameter errors come back as
// *intent.ParamError so callers can tell them apart from store failures.
func (s *ChatService) Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	start := time.Now()

	resp, err := s.router.Respond(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	format := dto.FormatText
	if resp.HTML {
		format = dto.FormatHTML
	}

	s.log.Info("Question answered",
		zap.String("intent", string(resp.Intent)),
		zap.String("format", format),
		zap.Duration("duration", time.Since(start)))

	return &dto.ChatResponse{
		Intent:   string(resp.Intent),
		Response: resp.Text,
		Format:   format,
	}, nil
}

// Intents lists the routing rules in priority order, starting at 1
func (s *ChatService) Intents() *dto.IntentsResponse {
	rules := s.router.Rules()

	response := &dto.IntentsResponse{
		Intents: make([]dto.IntentInfo, 0, len(rules)),
	}
	for i, rule := range rules {
		response.Intents = append(response.Intents, dto.IntentInfo{
			Order:    i + 1,
			Intent:   string(rule.Intent),
			Triggers: rule.Triggers,
		})
	}
	return response
}

// Ping checks the store connection
func (s *ChatService) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}
