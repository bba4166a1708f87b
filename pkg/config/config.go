package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Ranking / stats providers
	FanGraphs   ProviderConfig
	MLBPipeline ProviderConfig
	Prospectus  ProviderConfig
	StatsAPI    ProviderConfig

	// Marketplaces
	EBay   ProviderConfig
	COMC   ProviderConfig
	StockX ProviderConfig

	// Scanner
	Scanner ScannerConfig

	// Valuation
	Valuation ValuationConfig

	// Scheduler
	AnalyzeSchedule string
	ScanSchedule    string

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ProviderConfig holds settings for a single external data source.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

// ScannerConfig holds market scan tuning parameters.
type ScannerConfig struct {
	// Deal thresholds. A listing qualifies only when profit percentage is
	// strictly above MinProfitPct AND absolute profit strictly above MinProfitAbs.
	MinProfitPct float64
	MinProfitAbs float64

	// Dedup tolerance window in dollars. A candidate within +/- this of an
	// existing deal for the same owner/platform/card is a duplicate.
	DedupTolerance float64

	// Concurrency and pacing toward marketplaces.
	Workers          int
	ConnectorTimeout time.Duration
	SubjectsPerSec   float64
}

// ValuationConfig holds fair value estimation parameters.
type ValuationConfig struct {
	BaseValue        float64
	DemandMultiplier float64
	HighDemand       []string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		FanGraphs: ProviderConfig{
			BaseURL: getEnv("FANGRAPHS_BASE_URL", "https://www.fangraphs.com/api"),
			APIKey:  getEnv("FANGRAPHS_API_KEY", ""),
		},
		MLBPipeline: ProviderConfig{
			BaseURL: getEnv("MLB_PIPELINE_BASE_URL", "https://statsapi.mlb.com/api/v1"),
		},
		Prospectus: ProviderConfig{
			BaseURL: getEnv("PROSPECTUS_BASE_URL", "https://api.baseballprospectus.com"),
			APIKey:  getEnv("PROSPECTUS_API_KEY", ""),
		},
		StatsAPI: ProviderConfig{
			BaseURL: getEnv("STATS_API_BASE_URL", "https://statsapi.mlb.com/api/v1"),
		},

		EBay: ProviderConfig{
			BaseURL: getEnv("EBAY_BASE_URL", "https://svcs.ebay.com/services/search/FindingService/v1"),
			APIKey:  getEnv("EBAY_APP_ID", ""),
		},
		COMC: ProviderConfig{
			BaseURL: getEnv("COMC_BASE_URL", "https://www.comc.com"),
		},
		StockX: ProviderConfig{
			BaseURL: getEnv("STOCKX_BASE_URL", "https://stockx.com/api"),
		},

		Scanner: ScannerConfig{
			MinProfitPct:     getEnvAsFloat("SCAN_MIN_PROFIT_PCT", 15.0),
			MinProfitAbs:     getEnvAsFloat("SCAN_MIN_PROFIT_ABS", 25.0),
			DedupTolerance:   getEnvAsFloat("SCAN_DEDUP_TOLERANCE", 10.0),
			Workers:          getEnvAsInt("SCAN_WORKERS", 4),
			ConnectorTimeout: getEnvAsDuration("SCAN_CONNECTOR_TIMEOUT", "10s"),
			SubjectsPerSec:   getEnvAsFloat("SCAN_SUBJECTS_PER_SEC", 5.0),
		},

		Valuation: ValuationConfig{
			BaseValue:        getEnvAsFloat("VALUATION_BASE_VALUE", 200.0),
			DemandMultiplier: getEnvAsFloat("VALUATION_DEMAND_MULTIPLIER", 1.3),
			HighDemand:       getEnvAsList("VALUATION_HIGH_DEMAND", ""),
		},

		AnalyzeSchedule: getEnv("ANALYZE_SCHEDULE", "0 0 6 * * *"),
		ScanSchedule:    getEnv("SCAN_SCHEDULE", "0 0 * * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scanner.Workers < 1 {
		return fmt.Errorf("SCAN_WORKERS must be at least 1")
	}

	if c.Scanner.DedupTolerance < 0 {
		return fmt.Errorf("SCAN_DEDUP_TOLERANCE must not be negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	if valueStr == "" {
		return nil
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
