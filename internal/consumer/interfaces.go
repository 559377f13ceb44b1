package consumer

import (
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into transactions
type MessageParser interface {
	Parse(body []byte) (*domain.Transaction, error)
}
