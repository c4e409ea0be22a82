package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	LogLevel string

	JWTSecret     string
	JWTExpiration time.Duration

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	UsersTable         string
	TransactionsTable  string
	// DynamoEndpoint overrides the default endpoint, used for DynamoDB Local.
	DynamoEndpoint string
}

func New() *Config {
	return &Config{
		Port:               getEnvOr("PORT", "3000"),
		LogLevel:           os.Getenv("LOGLEVEL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiration:      getJWTExpiration(os.Getenv("JWT_EXPIRATION")),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		UsersTable:         os.Getenv("DYNAMODB_USERS_TABLE"),
		TransactionsTable:  os.Getenv("DYNAMODB_TRANSACTIONS_TABLE"),
		DynamoEndpoint:     os.Getenv("DYNAMODB_ENDPOINT"),
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getJWTExpiration parses the token lifetime in seconds, defaulting to one hour.
func getJWTExpiration(raw string) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}
