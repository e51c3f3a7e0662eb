package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the proxy.
type Config struct {
	App       AppConfig
	Freshdesk FreshdeskConfig
	Auth      AuthConfig
	Logger    LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// FreshdeskConfig holds upstream API connection values.
type FreshdeskConfig struct {
	APIKey          string
	Domain          string
	BaseURLOverride string
	TimeoutSeconds  int
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	BearerToken     string
	TokenTTLMinutes int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "freshdesk-proxy"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Freshdesk: FreshdeskConfig{
			APIKey:          os.Getenv("FRESHDESK_API_KEY"),
			Domain:          os.Getenv("FRESHDESK_DOMAIN"),
			BaseURLOverride: os.Getenv("FRESHDESK_BASE_URL"),
			TimeoutSeconds:  getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 30),
		},
		Auth: AuthConfig{
			BearerToken:     getEnv("BEARER_TOKEN", "mysecrettoken"),
			TokenTTLMinutes: getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Freshdesk.BaseURLOverride == "" {
		if cfg.Freshdesk.APIKey == "" || cfg.Freshdesk.Domain == "" {
			return nil, fmt.Errorf("FRESHDESK_API_KEY or FRESHDESK_DOMAIN missing from environment")
		}
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// BaseURL returns the upstream API root, honoring the override when set.
func (f FreshdeskConfig) BaseURL() string {
	if f.BaseURLOverride != "" {
		return f.BaseURLOverride
	}
	return fmt.Sprintf("https://%s/api/v2", f.Domain)
}

// Timeout returns the upstream call timeout duration.
func (f FreshdeskConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// TokenTTL returns the lifetime for issued access tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
