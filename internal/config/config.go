// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	URI  string
	Name string
}

// AuthConfig holds token signing settings
type AuthConfig struct {
	SecretKey     string
	TokenLifetime time.Duration
}

// AIConfig holds settings for the external generative-AI capability
type AIConfig struct {
	ValidationEnabled bool
	APIKey            string
	Model             string
	BaseURL           string
}

// SchedulerConfig holds deferred auto-response settings
type SchedulerConfig struct {
	ReplyWorkers int
	MisfireGrace time.Duration
}

// Config holds the complete application configuration
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Auth           AuthConfig
	AI             AIConfig
	Scheduler      SchedulerConfig
	AllowedOrigins []string
	Debug          bool
}

// LoadConfig loads configuration from environment variables and applies
// defaults. A .env file is loaded first if one can be found.
func LoadConfig() (*Config, error) {
	// Try to load .env from the usual locations; silently continue if absent.
	envLocations := []string{
		".env",
		"../../.env", // project root when running from cmd/server
	}
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			break
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnvOrDefault("HOST", "0.0.0.0"),
			Port: getEnvInt("PORT", 8080),
		},
		Database: DatabaseConfig{
			URI:  getEnvOrDefault("MONGO_URL", "mongodb://localhost:27017"),
			Name: getEnvOrDefault("DATABASE_NAME", "blog"),
		},
		Auth: AuthConfig{
			SecretKey:     os.Getenv("SECRET_KEY"),
			TokenLifetime: time.Duration(getEnvInt("ACCESS_TOKEN_LIFETIME_MINUTES", 15)) * time.Minute,
		},
		AI: AIConfig{
			ValidationEnabled: os.Getenv("AI_VALIDATION_ENABLED") == "true",
			APIKey:            os.Getenv("AI_API_KEY"),
			Model:             getEnvOrDefault("AI_MODEL_NAME", "gemini-1.5-flash-002"),
			BaseURL:           getEnvOrDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com"),
		},
		Scheduler: SchedulerConfig{
			ReplyWorkers: getEnvInt("REPLY_WORKERS", 3),
			MisfireGrace: time.Duration(getEnvInt("MISFIRE_GRACE_SECONDS", 3600)) * time.Second,
		},
		AllowedOrigins: []string{"*"},
		Debug:          os.Getenv("DEBUG") == "true",
	}

	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is required")
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
