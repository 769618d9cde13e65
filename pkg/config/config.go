package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	OTEL        OTELConfig
	Recommender RecommenderConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host     string
	Port     int
	Env      string
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Enabled  bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// RecommenderConfig holds candidate sourcing and scoring configuration
type RecommenderConfig struct {
	// MinLiveCandidates is the live-store row count below which the synthetic pool is appended.
	MinLiveCandidates        int
	AccommodationFallback    string
	GuideFallback            string
	LodgingWeights           []float64
	AmenityPolicy            string
	CandidateCacheTTLSeconds int
	// CacheWarmIntervalSeconds of 0 warms once at startup only.
	CacheWarmIntervalSeconds int
	DefaultTopK              int
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first; variables already set take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	weights, err := getEnvAsFloatSlice("LODGING_WEIGHTS")
	if err != nil {
		return nil, fmt.Errorf("invalid LODGING_WEIGHTS: %w", err)
	}

	policy := strings.ToLower(getEnv("LODGING_AMENITY_POLICY", "soft"))
	if policy != "soft" && policy != "strict" {
		return nil, fmt.Errorf("invalid LODGING_AMENITY_POLICY %q (must be soft or strict)", policy)
	}

	return &Config{
		Server: ServerConfig{
			Host:     getEnv("SERVER_HOST", "0.0.0.0"),
			Port:     getEnvAsInt("SERVER_PORT", 5001),
			Env:      getEnv("APP_ENV", "production"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "travelmatch"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Enabled:  getEnvAsBool("DB_ENABLED", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "travelmatch-recommender"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Recommender: RecommenderConfig{
			MinLiveCandidates:        getEnvAsInt("MIN_LIVE_CANDIDATES", 5),
			AccommodationFallback:    getEnv("ACCOMMODATION_FALLBACK_PATH", "data/mock_accommodations.json"),
			GuideFallback:            getEnv("GUIDE_FALLBACK_PATH", "data/mock_guides.json"),
			LodgingWeights:           weights,
			AmenityPolicy:            policy,
			CandidateCacheTTLSeconds: getEnvAsInt("CANDIDATE_CACHE_TTL_SECONDS", 60),
			CacheWarmIntervalSeconds: getEnvAsInt("CACHE_WARM_INTERVAL_SECONDS", 0),
			DefaultTopK:              getEnvAsInt("DEFAULT_TOP_K", 10),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsFloatSlice parses a comma-separated list of floats. An unset variable yields nil.
func getEnvAsFloatSlice(key string) ([]float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return nil, nil
	}
	return ParseFloatList(value)
}

// ParseFloatList parses "0.2, 0.1,0.7" into a slice.
func ParseFloatList(value string) ([]float64, error) {
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}
