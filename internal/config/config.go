// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	AppEnv  string
	Port    int
	BaseURL string

	// OAuth2 token endpoint (C8)
	OAuthClientID     string
	OAuthClientSecret string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration

	// Token store (Postgres)
	PGConnectionString string
	TokenPoolMaxConns  int
	TokenCleanupPeriod time.Duration

	// Backend SQL Server database, reached through an SSH tunnel
	DBHost              string
	DBPort              int
	DBUser              string
	DBPassword          string
	DBName              string
	DBMaxConns          int
	DBQueryTimeout      time.Duration
	SSHTunnelHost       string
	SSHTunnelPort       int
	SSHTunnelUser       string
	SSHTunnelPrivateKey string
	SSHTunnelEnabled    bool

	// NATS audit bus (best-effort, optional)
	NATSURL string

	// CORS
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		Port:    getEnvAsInt("PORT", 8080),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		AccessTokenTTL:    getEnvAsDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:   getEnvAsDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),

		PGConnectionString: getEnv("PG_CONNECTION_STRING", ""),
		TokenPoolMaxConns:  getEnvAsInt("TOKEN_POOL_MAX_CONNS", 10),
		TokenCleanupPeriod: getEnvAsDuration("TOKEN_CLEANUP_PERIOD", 5*time.Minute),

		DBHost:              getEnv("DB_HOST", ""),
		DBPort:              getEnvAsInt("DB_PORT", 1433),
		DBUser:              getEnv("DB_USER", ""),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBName:              getEnv("DB_NAME", ""),
		DBMaxConns:          getEnvAsInt("DB_MAX_CONNS", 10),
		DBQueryTimeout:      getEnvAsDuration("DB_QUERY_TIMEOUT", 30*time.Second),
		SSHTunnelHost:       getEnv("SSH_TUNNEL_HOST", ""),
		SSHTunnelPort:       getEnvAsInt("SSH_TUNNEL_PORT", 22),
		SSHTunnelUser:       getEnv("SSH_TUNNEL_USER", ""),
		SSHTunnelPrivateKey: getEnv("SSH_TUNNEL_PRIVATE_KEY_PATH", ""),
		SSHTunnelEnabled:    getEnvAsBool("SSH_TUNNEL_ENABLED", false),

		NATSURL: getEnv("NATS_URL", ""),

		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.PGConnectionString == "" {
		return fmt.Errorf("PG_CONNECTION_STRING is required")
	}
	if c.OAuthClientID == "" || c.OAuthClientSecret == "" {
		return fmt.Errorf("OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET are required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
