package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultIndexURL = "https://myodfw.com/2025-26-sauvie-island-wildlife-area-game-bird-harvest-statistics"

// Config holds all application configuration
type Config struct {
	Source  SourceConfig
	Cache   CacheConfig
	Weather WeatherConfig
	Output  OutputConfig
	Server  ServerConfig
	Parse   ParseConfig
}

// SourceConfig holds report discovery and download configuration
type SourceConfig struct {
	IndexURL    string
	WindowDays  int
	HTTPTimeout time.Duration
	UserAgent   string
}

// CacheConfig holds artifact cache configuration. An empty DSN selects the directory cache.
type CacheConfig struct {
	Dir         string
	DSN         string
	DialTimeout time.Duration
}

// WeatherConfig holds weather enrichment configuration
type WeatherConfig struct {
	Enabled   bool
	BaseURL   string
	Latitude  float64
	Longitude float64
	Timezone  string
	Timeout   time.Duration
}

// OutputConfig holds report output configuration
type OutputConfig struct {
	Dir string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// ParseConfig holds document parsing configuration
type ParseConfig struct {
	Workers   int
	Pdftotext string
}

// LoadConfig loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment values win.
func LoadConfig() *Config {
	_ = godotenv.Load() // optional
	return &Config{
		Source: SourceConfig{
			IndexURL:    getEnv("HARVEST_INDEX_URL", DefaultIndexURL),
			WindowDays:  getEnvAsInt("HARVEST_WINDOW_DAYS", 3),
			HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
			UserAgent:   getEnv("HTTP_USER_AGENT", "blind-rankings/1.0"),
		},
		Cache: CacheConfig{
			Dir:         getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
			DSN:         getEnv("CACHE_DSN", ""),
			DialTimeout: getEnvAsDuration("CACHE_DIAL_TIMEOUT", 3*time.Second),
		},
		Weather: WeatherConfig{
			Enabled:   getEnvAsBool("WEATHER_ENABLED", true),
			BaseURL:   getEnv("WEATHER_URL", "https://archive-api.open-meteo.com/v1/archive"),
			Latitude:  getEnvAsFloat64("WEATHER_LAT", 45.72),
			Longitude: getEnvAsFloat64("WEATHER_LON", -122.82),
			Timezone:  getEnv("WEATHER_TIMEZONE", "America/Los_Angeles"),
			Timeout:   getEnvAsDuration("WEATHER_TIMEOUT", 15*time.Second),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "."),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		Parse: ParseConfig{
			Workers:   getEnvAsInt("PARSE_WORKERS", 4),
			Pdftotext: getEnv("PDFTOTEXT", ""),
		},
	}
}

// Helper functions for environment variable parsing
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

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Source.IndexURL == "" {
		return NewAppError("CONFIG_ERROR", "HARVEST_INDEX_URL is required", ErrInvalidInput)
	}
	if c.Source.WindowDays < 1 {
		return NewAppError("CONFIG_ERROR", "HARVEST_WINDOW_DAYS must be at least 1", ErrInvalidInput)
	}
	if c.Cache.Dir == "" && c.Cache.DSN == "" {
		return NewAppError("CONFIG_ERROR", "ARTIFACT_CACHE_DIR or CACHE_DSN is required", ErrInvalidInput)
	}
	if c.Parse.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "PARSE_WORKERS must be at least 1", ErrInvalidInput)
	}
	return nil
}
