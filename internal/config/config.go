// Package config reads gateway and terminal client settings from an env file
// and the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the gateway and the terminal client.
type Config struct {
	// Gateway
	AppHost  string
	AppPort  string
	LogLevel string

	// Bank backend
	BankAPIURL     string
	BankAuthScheme string
	RequestTimeout time.Duration

	// Credential storage
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	CredentialKey     string
	CredentialTTL     time.Duration

	// Report polling
	ReportPollInterval time.Duration
	ReportMaxAttempts  int
	ReportDeadline     time.Duration

	// Report events
	KafkaBrokers []string
	KafkaTopic   string

	// Dashboard
	DefaultRecencyDays int
}

// Load reads the env file at path, when it exists, and builds a Config from
// the environment. Unset variables fall back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	cfg := &Config{
		AppHost:        getEnv("APP_HOST", "localhost"),
		AppPort:        getEnv("APP_PORT", "8080"),
		LogLevel:       getEnv("APP_LOG_LEVEL", "info"),
		BankAPIURL:     getEnv("BANK_API_URL", "http://localhost:8000/api"),
		BankAuthScheme: getEnv("BANK_AUTH_SCHEME", "Token"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		CredentialKey:  getEnv("CREDENTIAL_KEY", "authToken"),
		KafkaTopic:     getEnv("KAFKA_REPORT_TOPIC", "bank-client.reports"),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("BANK_REQUEST_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return nil, err
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return nil, err
	}
	if cfg.CredentialTTL, err = getDuration("CREDENTIAL_TTL", "0s"); err != nil {
		return nil, err
	}
	if cfg.ReportPollInterval, err = getDuration("REPORT_POLL_INTERVAL", "3s"); err != nil {
		return nil, err
	}
	if cfg.ReportPollInterval <= 0 {
		return nil, fmt.Errorf("REPORT_POLL_INTERVAL must be positive, got %v", cfg.ReportPollInterval)
	}
	if cfg.ReportMaxAttempts, err = getInt("REPORT_MAX_ATTEMPTS", "0"); err != nil {
		return nil, err
	}
	if cfg.ReportDeadline, err = getDuration("REPORT_DEADLINE", "0s"); err != nil {
		return nil, err
	}
	if cfg.DefaultRecencyDays, err = getInt("DASHBOARD_DEFAULT_DAYS", "7"); err != nil {
		return nil, err
	}
	if cfg.DefaultRecencyDays < 0 {
		return nil, fmt.Errorf("DASHBOARD_DEFAULT_DAYS must not be negative, got %d", cfg.DefaultRecencyDays)
	}

	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}

	return cfg, nil
}

// RedisAddr returns the host:port of the credential Redis.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// ListenAddr returns the host:port the gateway listens on.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func getInt(key, defaultValue string) (int, error) {
	raw := getEnv(key, defaultValue)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
