package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DBPath                string
	DBDriver              string
	DBBusyTimeout         time.Duration
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	CacheTTL              time.Duration
	GRPCPort              int
	GRPCReflectionEnabled bool
	HTTPPort              int
	CORSAllowedOrigins    string

	// AllowEditsAfterCompletion lets completed surveys take new responses.
	// Results are not recalculated until the survey is completed again.
	AllowEditsAfterCompletion bool
	ContributionThreshold     decimal.Decimal
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	portStr := getEnv("GRPC_PORT", "50051")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 50051
	}

	httpPort, err := strconv.Atoi(getEnv("HTTP_PORT", "8080"))
	if err != nil {
		httpPort = 8080
	}

	reflectionStr := getEnv("GRPC_REFLECTION_ENABLED", "false")
	reflection, err := strconv.ParseBool(reflectionStr)
	if err != nil {
		reflection = false
	}

	allowEdits, err := strconv.ParseBool(getEnv("ALLOW_EDITS_AFTER_COMPLETION", "false"))
	if err != nil {
		allowEdits = false
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		redisDB = 0
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
	}

	busyTimeout, err := time.ParseDuration(getEnv("DB_BUSY_TIMEOUT", "5s"))
	if err != nil || busyTimeout < 0 {
		busyTimeout = 5 * time.Second
	}

	threshold, err := decimal.NewFromString(getEnv("CONTRIBUTION_THRESHOLD", "5"))
	if err != nil || threshold.IsNegative() {
		threshold = decimal.NewFromInt(5)
	}

	return &Config{
		AppEnv:                    getEnv("APP_ENV", "development"),
		DBPath:                    getEnv("DB_PATH", "./data/database.db"),
		RedisAddr:                 os.Getenv("REDIS_ADDR"),
		RedisPassword:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   redisDB,
		DBDriver:                  getEnv("DB_DRIVER", "sqlite3"),
		DBBusyTimeout:             busyTimeout,
		CacheTTL:                  ttl,
		GRPCPort:                  port,
		GRPCReflectionEnabled:     reflection,
		HTTPPort:                  httpPort,
		CORSAllowedOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "*"),
		AllowEditsAfterCompletion: allowEdits,
		ContributionThreshold:     threshold,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
