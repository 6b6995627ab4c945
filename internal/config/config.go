package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// Built once at startup from environment variables and injected
// through the container; nothing reads env vars after this.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	TourAPI  TourAPIConfig
	Crawler  CrawlerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string

	// AllowedOrigins for CORS; "*" allows everything.
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32

	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// TourAPIConfig configures the Korea Tourism Organization open API client.
type TourAPIConfig struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
	MaxRetries int
}

// CrawlerConfig controls the background crawl jobs.
type CrawlerConfig struct {
	// Delay between keyword batches, courtesy toward upstream servers.
	BatchDelay time.Duration
	// Cron spec for the scheduled crawl; empty disables scheduling.
	Schedule string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "KCultureSpot API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),

			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "kculture"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 25)),
			MinConns:       int32(getEnvInt("DB_MIN_CONNS", 5)),
			MaxRetries:     getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:     time.Duration(getEnvInt("DB_RETRY_DELAY_SEC", 1)) * time.Second,
			ConnectTimeout: time.Duration(getEnvInt("DB_CONNECT_TIMEOUT_SEC", 10)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessExpiry:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRY_MIN", 60*24)) * time.Minute,
			RefreshExpiry: time.Duration(getEnvInt("JWT_REFRESH_EXPIRY_HOURS", 72)) * time.Hour,
		},
		TourAPI: TourAPIConfig{
			BaseURL:    getEnv("TOUR_API_BASE_URL", "http://apis.data.go.kr/B551011/KorService1"),
			ServiceKey: getEnv("TOUR_API_KEY", ""),
			Timeout:    time.Duration(getEnvInt("TOUR_API_TIMEOUT_SEC", 30)) * time.Second,
			MaxRetries: getEnvInt("TOUR_API_MAX_RETRIES", 3),
		},
		Crawler: CrawlerConfig{
			BatchDelay: time.Duration(getEnvInt("CRAWLER_BATCH_DELAY_SEC", 1)) * time.Second,
			Schedule:   getEnv("CRAWLER_SCHEDULE", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
