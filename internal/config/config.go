// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Mail       MailConfig
	Similarity SimilarityConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	// Path to the SQLite file. Empty selects the in-memory repositories
	// (local development without any infrastructure).
	Path string
}

type RedisConfig struct {
	// Addr of the Redis instance. Empty disables the showcase cache.
	Addr string
	TTL  time.Duration
}

type KafkaConfig struct {
	// Brokers is a comma-separated list. Empty disables the broker
	// subscriber.
	Brokers    string
	OrderTopic string
}

type MailConfig struct {
	// BaseURL of the transactional mail provider. Empty selects the
	// log-only sender.
	BaseURL string
	APIKey  string
}

type SimilarityConfig struct {
	// BaseURL of the recommendation model service. Empty disables the
	// recommendation endpoints and the training feed.
	BaseURL string
}

type TracingConfig struct {
	Enabled bool
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", ""),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
			TTL:  getEnvDuration("REDIS_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    getEnv("KAFKA_BROKERS", ""),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "storefront.orders"),
		},
		Mail: MailConfig{
			BaseURL: getEnv("MAIL_PROVIDER_URL", ""),
			APIKey:  getEnv("MAIL_PROVIDER_API_KEY", ""),
		},
		Similarity: SimilarityConfig{
			BaseURL: getEnv("SIMILARITY_SERVICE_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled: getEnvBool("TRACING_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
