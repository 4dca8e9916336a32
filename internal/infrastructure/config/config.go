package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Pricing PricingConfig
	Push    PushConfig
	Workers WorkersConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type KafkaConfig struct {
	Enabled       bool     `env:"KAFKA_ENABLED,        default=false"`
	Brokers       []string `env:"KAFKA_BROKERS,        default=localhost:9092"`
	OrdersTopic   string   `env:"KAFKA_ORDERS_TOPIC,   default=marketplace.orders"`
	PaymentsTopic string   `env:"KAFKA_PAYMENTS_TOPIC, default=marketplace.payments"`
	ConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP, default=marketplace-api"`
}

// PricingConfig holds the cart pricing knobs applied on every recalculation.
type PricingConfig struct {
	TaxRate      float64 `env:"TAX_RATE,      default=0.08"`
	FlatShipping float64 `env:"FLAT_SHIPPING, default=4.99"`
}

type PushConfig struct {
	URL    string `env:"PUSH_GATEWAY_URL, default=http://localhost:9099/send"`
	APIKey string `env:"PUSH_API_KEY"`
}

type WorkersConfig struct {
	Notifications int `env:"NOTIFICATION_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
