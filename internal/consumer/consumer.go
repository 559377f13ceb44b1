package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/queue"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
)

// Consumer feeds transactions from the ingestion queue into the store through
// a receive, parse and batch-write pipeline
type Consumer struct {
	receiver    *Receiver
	parser      *ParserStage
	batchWriter *BatchWriter
	bufferSize  int
}

// NewConsumer creates a new consumer with a pipeline architecture
func NewConsumer(cfg *config.Config, queueConsumer queue.QueueConsumer, repo repository.TransactionWriter, log *zap.Logger) *Consumer {
	receiverConfig := ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		BufferSize:      100,
		ErrorBackoff:    time.Second,
	}

	receiver := NewReceiver(queueConsumer, receiverConfig, log)

	parser := NewParserStage(queueConsumer, NewJSONTransactionParser(), log)

	batchWriter := NewBatchWriter(repo, BatchWriterConfig{
		MaxBatchSize: cfg.Consumer.BatchSizeMax,
		FlushTimeout: time.Duration(cfg.Consumer.BatchTimeoutSec) * time.Second,
	}, log)

	return &Consumer{
		receiver:    receiver,
		parser:      parser,
		batchWriter: batchWriter,
		bufferSize:  receiverConfig.BufferSize,
	}
}

// Start runs the pipeline until ctx is cancelled and every stage has drained
func (c *Consumer) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, c.bufferSize)
	envelopeChan := make(chan *Envelope, c.bufferSize)

	var wg sync.WaitGroup

	wg.Add(3)

	// Stage 1: Receive messages from SQS
	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, messageChan)
	}()

	// Stage 2: Parse messages into envelopes
	go func() {
		defer wg.Done()
		c.parser.Start(ctx, messageChan, envelopeChan)
	}()

	// Stage 3: Batch and write to the store
	go func() {
		defer wg.Done()
		c.batchWriter.Start(ctx, envelopeChan)
	}()

	wg.Wait()
	return nil
}
