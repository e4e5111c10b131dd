package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Logging configuration
	Log LogConfig

	// GitHub configuration
	GitHub GitHubConfig

	// HuggingFace inference configuration
	HuggingFace HuggingFaceConfig

	// Queue configuration
	Queue QueueConfig

	// Job status store configuration
	Store StoreConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// GitHubConfig holds GitHub API and webhook configuration
type GitHubConfig struct {
	WebhookSecret string // Shared secret for webhook signature validation
	Token         string // Personal access token or app token
}

// HuggingFaceConfig holds inference API configuration
type HuggingFaceConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// InsecureSkipTLSVerify disables certificate verification on the
	// inference client only. Development use behind SSL-inspecting
	// proxies; never enable in production.
	InsecureSkipTLSVerify bool
}

// QueueConfig holds Redis queue and retry configuration
type QueueConfig struct {
	RedisURL    string
	Concurrency int
	MaxRetry    int
	RetryDelay  time.Duration
	TaskTimeout time.Duration
}

// StoreConfig holds the job status store configuration
type StoreConfig struct {
	DSN string
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	// Try to load .env file (ignore errors - it's optional)
	_ = godotenv.Load(".env")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		GitHub: GitHubConfig{
			WebhookSecret: getEnv("GITHUB_WEBHOOK_SECRET", ""),
			Token:         getEnv("GITHUB_TOKEN", ""),
		},
		HuggingFace: HuggingFaceConfig{
			APIKey:                getEnv("HF_API_KEY", ""),
			BaseURL:               getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),
			Timeout:               getEnvAsDuration("HF_TIMEOUT", 30*time.Second),
			InsecureSkipTLSVerify: getEnvAsBool("HF_INSECURE_SKIP_TLS_VERIFY", false),
		},
		Queue: QueueConfig{
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),
			MaxRetry:    getEnvAsInt("JOB_MAX_RETRY", 3),
			RetryDelay:  getEnvAsDuration("JOB_RETRY_DELAY", 60*time.Second),
			TaskTimeout: getEnvAsDuration("JOB_TIMEOUT", 2*time.Minute),
		},
		Store: StoreConfig{
			DSN: getEnv("JOB_STORE_DSN", "file:prpilot.db?_busy_timeout=5000"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Queue.RedisURL == "" {
		return fmt.Errorf("redis URL is required")
	}

	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("worker concurrency must be at least 1, got %d", c.Queue.Concurrency)
	}

	if c.Queue.MaxRetry < 0 {
		return fmt.Errorf("job max retry must not be negative, got %d", c.Queue.MaxRetry)
	}

	if c.Store.DSN == "" {
		return fmt.Errorf("job store DSN is required")
	}

	return nil
}

// Address returns the server address in the format host:port
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions to get environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
