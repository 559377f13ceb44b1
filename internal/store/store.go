package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository/clickhouse"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository/memory"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository/mongodb"
)

// Open connects to the store selected by SERVICE_STORE. The caller owns the
// returned repository and must Close it on shutdown.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.TransactionRepository, error) {
	switch cfg.Service.Store {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, &cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		return mongodb.NewRepository(client, log), nil

	case config.StoreClickHouse:
		client, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			return nil, err
		}
		return clickhouse.NewRepository(client, log), nil

	case config.StoreMemory:
		var seed []domain.Transaction
		if cfg.Memory.DataFile != "" {
			transactions, err := memory.LoadFile(cfg.Memory.DataFile)
			if err != nil {
				return nil, err
			}
			seed = transactions
		}
		log.Info("Using in-memory store",
			zap.String("data_file", cfg.Memory.DataFile),
			zap.Int("transactions", len(seed)))
		return memory.NewRepository(log, seed...), nil

	default:
		return nil, fmt.Errorf("unsupported store: %q", cfg.Service.Store)
	}
}
