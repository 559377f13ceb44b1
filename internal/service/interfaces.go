package service

import (
	"context"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/dto"
)

// ChatServicer defines the interface for chat service operations
type ChatServicer interface {
	Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Intents() *dto.IntentsResponse
	Ping(ctx context.Context) error
}
