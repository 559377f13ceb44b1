package consumer

import (
	"context"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// Envelope wraps a transaction with acknowledgment callbacks
type Envelope struct {
	Transaction *domain.Transaction
	ack         func(context.Context) error
	nack        func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(txn *domain.Transaction, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Transaction: txn,
		ack:         ack,
		nack:        nack,
	}
}

// Ack acknowledges successful processing
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack negatively acknowledges processing
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}
