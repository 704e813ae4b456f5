package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bookstore/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// It is populated from environment variables (optionally seeded from .env).
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	JWT      JWTConfig
	Security SecurityConfig
	Seed     SeedConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	UI       UIConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Duration time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

// SeedConfig drives the startup bootstrap of the default accounts.
// An account is skipped when its email or password is empty.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	UserEmail     string
	UserPassword  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Enabled   bool
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type UIConfig struct {
	Port          string
	APIBaseURL    string
	SessionCookie string
	TokenStore    string // redis, memory
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookstore API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: dbCfg,
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:   getEnv("JWT_ISSUER", "BookStoreAPI"),
			Audience: getEnv("JWT_AUDIENCE", "BookStoreApiClient"),
			Duration: time.Duration(getEnvInt("JWT_DURATION_HOURS", 1)) * time.Hour,
		},
		Security: SecurityConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 12),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
			UserEmail:     getEnv("SEED_USER_EMAIL", ""),
			UserPassword:  getEnv("SEED_USER_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Enabled:   getEnvBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bookstore"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		UI: UIConfig{
			Port:          getEnv("UI_PORT", "8081"),
			APIBaseURL:    getEnv("UI_API_BASE_URL", "http://localhost:8080"),
			SessionCookie: getEnv("UI_SESSION_COOKIE", "bookstore_session"),
			TokenStore:    getEnv("UI_TOKEN_STORE", "redis"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	// HS256 keys shorter than the hash size are rejected by most verifiers
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if c.JWT.Duration <= 0 {
		return fmt.Errorf("JWT_DURATION_HOURS must be positive")
	}
	if c.UI.TokenStore != "redis" && c.UI.TokenStore != "memory" {
		return fmt.Errorf("UI_TOKEN_STORE must be redis or memory, got %q", c.UI.TokenStore)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
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
