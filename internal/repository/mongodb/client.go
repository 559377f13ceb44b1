package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
)

// Client wraps the MongoDB connection
type Client struct {
	client  *mongo.Client
	config  *config.Mongo
	timeout time.Duration
	log     *zap.Logger
}

// NewClient connects to MongoDB and verifies the connection
func NewClient(ctx context.Context, config *config.Mongo, log *zap.Logger) (*Client, error) {
	timeout := time.Duration(config.TimeoutSec) * time.Second

	log.Info("Connecting to MongoDB",
		zap.String("database", config.Database),
		zap.String("collection", config.Collection))

	opts := options.Client().
		ApplyURI(config.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetAppName("transaction-chatbot")

	connection, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error("Failed to connect to MongoDB", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := connection.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Error("Failed to ping MongoDB", zap.Error(err))
		_ = connection.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("MongoDB connection established successfully")

	return &Client{client: connection, config: config, timeout: timeout, log: log}, nil
}

// Collection returns the configured transactions collection
func (c *Client) Collection() *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(c.config.Collection)
}

// Ping checks the primary is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB
func (c *Client) Close() error {
	c.log.Info("Closing MongoDB connection")

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Disconnect(ctx); err != nil {
		c.log.Error("Error closing MongoDB connection", zap.Error(err))
		return err
	}
	c.log.Info("MongoDB connection closed successfully")
	return nil
}
