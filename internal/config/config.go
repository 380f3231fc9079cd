package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"invoicedesk/internal/logger"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const devJWTSecret = "default_super_secret_key"

type Config struct {
	Port          string
	GinMode       string
	CORSOrigins   []string
	PublicBaseURL string

	// Document store
	StoreDriver       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Sessions
	JWTSecret string
	TokenTTL  time.Duration

	// Object storage
	StorageDir   string
	UploadURLTTL time.Duration

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	config := &Config{
		Port:              port,
		GinMode:           getEnv("GIN_MODE", "debug"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "invoicedesk"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 24*time.Hour),
		StorageDir:        getEnv("STORAGE_DIR", "./data/uploads"),
		UploadURLTTL:      getEnvDuration("UPLOAD_URL_TTL", time.Hour),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:         getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if config.JWTSecret == "" {
		config.JWTSecret = devJWTSecret
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.StoreDriver != DriverPostgres && c.StoreDriver != DriverMemory {
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.StoreDriver)
	}
	if c.GinMode == "release" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in release mode")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.UploadURLTTL <= 0 {
		return fmt.Errorf("UPLOAD_URL_TTL must be positive")
	}
	if c.StorageDir == "" {
		return fmt.Errorf("STORAGE_DIR is required")
	}
	return nil
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// SecureCookies reports whether auth cookies need Secure and SameSite=None
func (c *Config) SecureCookies() bool {
	return c.GinMode == "release"
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
