package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	envConfig "github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
)

// Client reads transaction messages from the ingestion queue
type Client struct {
	client *sqs.Client
	config envConfig.SQS
	log    *zap.Logger
}

// NewClient creates a new SQS client. A configured endpoint switches to
// static dummy credentials for a local ElasticMQ.
func NewClient(ctx context.Context, sqsConfig envConfig.SQS, log *zap.Logger) (*Client, error) {
	if sqsConfig.QueueURL == "" {
		return nil, fmt.Errorf("SQS_QUEUE_URL is required")
	}

	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(sqsConfig.Region),
	}

	var clientOpts []func(*sqs.Options)

	if sqsConfig.Endpoint != "" {
		log.Info("Configuring SQS for local development",
			zap.String("endpoint", sqsConfig.Endpoint))
		configOpts = append(configOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(sqsConfig.Endpoint)
		})
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("SQS client created",
		zap.String("region", sqsConfig.Region),
		zap.String("queue_url", sqsConfig.QueueURL))

	return &Client{
		client: sqs.NewFromConfig(cfg, clientOpts...),
		config: sqsConfig,
		log:    log,
	}, nil
}

// ReceiveMessages receives messages from SQS
func (c *Client) ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	return c.client.ReceiveMessage(ctx, input)
}

// DeleteMessage deletes a message from SQS
func (c *Client) DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	return c.client.DeleteMessage(ctx, input)
}

// ChangeMessageVisibility changes how long a received message stays hidden
func (c *Client) ChangeMessageVisibility(ctx context.Context, input *sqs.ChangeMessageVisibilityInput) (*sqs.ChangeMessageVisibilityOutput, error) {
	return c.client.ChangeMessageVisibility(ctx, input)
}

// QueueURL returns the configured queue URL
func (c *Client) QueueURL() string {
	return c.config.QueueURL
}
