package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Chat answers render whole result sets, so a runaway query is cut off by
// row count as well as by time.
const maxResultRows = 100000

// Client owns the ClickHouse connection and the name of the transactions table
type Client struct {
	connection driver.Conn
	table      string
	log        *zap.Logger
}

// NewClient opens and pings a connection to the configured server
func NewClient(ctx context.Context, cfg *config.ClickHouse, log *zap.Logger) (*Client, error) {
	log.Info("Connecting to ClickHouse",
		zap.String("host", cfg.Host),
		zap.String("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("table", cfg.Table),
		zap.Int("queryTimeoutSec", cfg.QueryTimeoutSec),
		zap.Bool("useTLS", cfg.UseTLS))

	connection, err := clickhouse.Open(clientOptions(cfg))
	if err != nil {
		log.Error("Failed to connect to ClickHouse", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := connection.Ping(ctx); err != nil {
		log.Error("Failed to ping ClickHouse", zap.Error(err))
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	log.Info("ClickHouse connection established successfully")

	return &Client{connection: connection, table: cfg.Table, log: log}, nil
}

func clientOptions(cfg *config.ClickHouse) *clickhouse.Options {
	opts := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time":   cfg.QueryTimeoutSec,
			"max_result_rows":      maxResultRows,
			"result_overflow_mode": "throw",
		},
		DialTimeout:      time.Duration(cfg.DialTimeoutSec) * time.Second,
		MaxOpenConns:     cfg.MaxOpenConns,
		MaxIdleConns:     cfg.MaxIdleConns,
		ConnMaxLifetime:  time.Duration(cfg.ConnMaxLifetime) * time.Second,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}

	if cfg.UseTLS {
		opts.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.Compress {
		opts.Compression = &clickhouse.Compression{Method: clickhouse.CompressionLZ4}
	}

	return opts
}

func (c *Client) Conn() driver.Conn {
	return c.connection
}

// Table returns the transactions table name
func (c *Client) Table() string {
	return c.table
}

func (c *Client) Close() error {
	c.log.Info("Closing ClickHouse connection")
	if err := c.connection.Close(); err != nil {
		c.log.Error("Error closing ClickHouse connection", zap.Error(err))
		return err
	}
	return nil
}
