package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Prices   PriceConfig
	Parser   ParserConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PriceConfig holds price fetcher configuration.
// RefreshInterval drives the background refresh job.
type PriceConfig struct {
	BaseURL         string
	Timeout         time.Duration
	RefreshInterval time.Duration
}

// ParserConfig holds transaction parser configuration.
// APIKey is an optional OpenAI key used as a fallback when no key has been
// stored through the API. SecretKey is the fernet key used to encrypt the
// stored key at rest; encrypted settings are disabled when it is empty.
type ParserConfig struct {
	APIKey    string
	Model     string
	SecretKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"),
				",",
			),
		},
		Prices: PriceConfig{
			BaseURL:         getEnv("PRICE_API_URL", "https://api.coingecko.com"),
			Timeout:         getDuration("PRICE_API_TIMEOUT", 15*time.Second),
			RefreshInterval: getDuration("PRICE_REFRESH_INTERVAL", 5*time.Minute),
		},
		Parser: ParserConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			SecretKey: getEnv("SECRET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration gets a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
