package consumer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter handles batching and writing transactions to the repository
type BatchWriter struct {
	repository repository.TransactionWriter
	config     BatchWriterConfig
	log        *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(repo repository.TransactionWriter, config BatchWriterConfig, log *zap.Logger) *BatchWriter {
	return &BatchWriter{
		repository: repo,
		config:     config,
		log:        log,
	}
}

// Start begins processing envelopes, batching, and writing to the repository
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*Envelope, 0, w.config.MaxBatchSize)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			if len(batch) > 0 {
				w.log.Info("Flushing final batch", zap.Int("envelope_count", len(batch)))
				w.processBatch(context.WithoutCancel(ctx), batch)
			}
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed")
				if len(batch) > 0 {
					w.log.Info("Flushing final batch", zap.Int("envelope_count", len(batch)))
					w.processBatch(ctx, batch)
				}
				return
			}

			batch = append(batch, envelope)

			if len(batch) >= w.config.MaxBatchSize {
				w.log.Info("Batch size threshold reached", zap.Int("batch_size", len(batch)))
				w.processBatch(ctx, batch)
				batch = make([]*Envelope, 0, w.config.MaxBatchSize)
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.log.Info("Batch timeout reached", zap.Int("envelope_count", len(batch)))
				w.processBatch(ctx, batch)
				batch = make([]*Envelope, 0, w.config.MaxBatchSize)
			}
		}
	}
}

// processBatch writes the batch, then acks every envelope on success or
// nacks every envelope on failure
func (w *BatchWriter) processBatch(ctx context.Context, envelopes []*Envelope) {
	if len(envelopes) == 0 {
		return
	}

	transactions := uniqueByOrderID(envelopes)

	insertedCount, err := w.repository.InsertBatch(ctx, transactions)

	if err != nil {
		w.log.Error("Failed to insert batch",
			zap.Error(err),
			zap.Int("transaction_count", len(transactions)))
		w.nackAll(ctx, envelopes)
		return
	}

	if insertedCount != len(transactions) {
		w.log.Warn("Partial insert success",
			zap.Int("inserted", insertedCount),
			zap.Int("expected", len(transactions)))
		w.nackAll(ctx, envelopes)
		return
	}

	w.log.Info("Successfully inserted transactions",
		zap.Int("count", insertedCount))
	w.ackAll(ctx, envelopes)
}

// uniqueByOrderID keeps the last transaction seen for each order, in first
// seen order. A redelivered message must not count twice.
func uniqueByOrderID(envelopes []*Envelope) []*domain.Transaction {
	index := make(map[int64]int, len(envelopes))
	transactions := make([]*domain.Transaction, 0, len(envelopes))

	for _, env := range envelopes {
		if i, ok := index[env.Transaction.OrderID]; ok {
			transactions[i] = env.Transaction
			continue
		}
		index[env.Transaction.OrderID] = len(transactions)
		transactions = append(transactions, env.Transaction)
	}
	return transactions
}

// ackAll acknowledges all envelopes (deletes from SQS)
func (w *BatchWriter) ackAll(ctx context.Context, envelopes []*Envelope) {
	if err := w.AckBatch(ctx, envelopes); err != nil {
		w.log.Error("Failed to ack batch", zap.Error(err))
	}
}

// nackAll negatively acknowledges all envelopes (makes them visible in SQS again)
func (w *BatchWriter) nackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Nack(ctx); err != nil {
			w.log.Error("Failed to nack envelope", zap.Error(err))
		}
	}
}

// AckBatch acknowledges every envelope and reports the last failure
func (w *BatchWriter) AckBatch(ctx context.Context, envelopes []*Envelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	var lastErr error
	for _, env := range envelopes {
		if err := env.Ack(ctx); err != nil {
			w.log.Error("Failed to ack envelope", zap.Error(err))
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("some acknowledgments failed: %w", lastErr)
	}

	return nil
}
