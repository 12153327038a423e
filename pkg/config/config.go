// Package config loads process configuration from the environment, with
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

// Config is the process configuration.
type Config struct {
	HTTPAddr        string `validate:"required"`
	TLSCertFile     string `validate:"required_with=TLSKeyFile"`
	TLSKeyFile      string `validate:"required_with=TLSCertFile"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	CollationLocale string `validate:"required,bcp47_language_tag"`
	Storage         Storage
	Otel            Otel
}

// Storage selects and configures the persistence backend.
type Storage struct {
	Backend     string `validate:"oneof=file memory redis postgres dynamodb"`
	Key         string `validate:"required"`
	Dir         string `validate:"required_if=Backend file"`
	RedisAddr   string `validate:"required_if=Backend redis"`
	RedisPrefix string
	DatabaseURL string `validate:"required_if=Backend postgres"`
	DynamoTable string `validate:"required_if=Backend dynamodb"`
	AWSRegion   string
}

// Otel configures trace export.
type Otel struct {
	Host        string
	Probability float64 `validate:"gte=0,lte=1"`
}

// Load reads the given .env files (".env" when none are named), then the
// environment, and validates the result. Missing .env files are ignored.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	probability, err := strconv.ParseFloat(getEnv("OTEL_PROBABILITY", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("OTEL_PROBABILITY: %w", err)
	}

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		TLSCertFile:     os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:      os.Getenv("TLS_KEY_FILE"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CollationLocale: getEnv("COLLATION_LOCALE", "und"),
		Storage: Storage{
			Backend:     getEnv("STORAGE_BACKEND", BackendFile),
			Key:         getEnv("STORAGE_KEY", "orders"),
			Dir:         getEnv("STORAGE_DIR", "data"),
			RedisAddr:   os.Getenv("REDIS_ADDR"),
			RedisPrefix: getEnv("REDIS_PREFIX", "bookorders:"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			DynamoTable: os.Getenv("DYNAMODB_TABLE"),
			AWSRegion:   os.Getenv("AWS_REGION"),
		},
		Otel: Otel{
			Host:        os.Getenv("OTEL_HOST"),
			Probability: probability,
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
