package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Supported transaction stores
const (
	StoreMongo      = "mongo"
	StoreClickHouse = "clickhouse"
	StoreMemory     = "memory"
)

type Config struct {
	Service    Service
	Mongo      Mongo
	ClickHouse ClickHouse
	Memory     Memory
	SQS        SQS
	Consumer   Consumer
}

type Service struct {
	Environment string `envconfig:"ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"API_PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"localhost:8080"`
	Store       string `envconfig:"STORE" default:"mongo"`
}

type Mongo struct {
	URI        string `envconfig:"URI"`
	Database   string `envconfig:"DATABASE" default:"dataset"`
	Collection string `envconfig:"COLLECTION" default:"customer"`
	TimeoutSec int    `envconfig:"TIMEOUT_SEC" default:"10"`
}

type ClickHouse struct {
	Host            string `envconfig:"HOST"`
	Port            string `envconfig:"PORT" default:"9000"`
	Database        string `envconfig:"DB" default:"default"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	Table           string `envconfig:"TABLE" default:"transactions"`
	UseTLS          bool   `envconfig:"USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
	QueryTimeoutSec int    `envconfig:"QUERY_TIMEOUT_SEC" default:"15"`
	DialTimeoutSec  int    `envconfig:"DIAL_TIMEOUT_SEC" default:"5"`
	Compress        bool   `envconfig:"COMPRESS" default:"true"`
}

type Memory struct {
	DataFile string `envconfig:"DATA_FILE"`
}

type SQS struct {
	Endpoint string `envconfig:"ENDPOINT"`
	QueueURL string `envconfig:"QUEUE_URL"`
	Region   string `envconfig:"REGION" default:"eu-central-1"`
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"BATCH_SIZE_MAX" default:"500"`
	BatchTimeoutSec int    `envconfig:"BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the selected store has the settings it needs to connect
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Service.Environment) == "" {
		return fmt.Errorf("SERVICE_ENVIRONMENT is required")
	}

	switch c.Service.Store {
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when SERVICE_STORE=%s", StoreMongo)
		}
	case StoreClickHouse:
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("CLICKHOUSE_HOST is required when SERVICE_STORE=%s", StoreClickHouse)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported SERVICE_STORE value: %q (supported: %s, %s, %s)",
			c.Service.Store, StoreMongo, StoreClickHouse, StoreMemory)
	}

	return nil
}

// ValidateConsumer checks the settings only the ingestion worker needs
func (c *Config) ValidateConsumer() error {
	if c.SQS.QueueURL == "" {
		return fmt.Errorf("SQS_QUEUE_URL is required for the consumer")
	}
	if c.Consumer.BatchSizeMax <= 0 {
		return fmt.Errorf("CONSUMER_BATCH_SIZE_MAX must be positive, got %d", c.Consumer.BatchSizeMax)
	}
	if c.Consumer.BatchTimeoutSec <= 0 {
		return fmt.Errorf("CONSUMER_BATCH_TIMEOUT_SEC must be positive, got %d", c.Consumer.BatchTimeoutSec)
	}
	return nil
}
