package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Gemini   GeminiConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level  string
	Format string
}

type GeminiConfig struct {
	APIKey           string
	Model            string
	StrictValidation bool
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	URL string
}

type WorkerConfig struct {
	Concurrency     int
	JanitorInterval time.Duration
	StaleAfter      time.Duration
}

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

const DefaultModel = "gemini-3-flash-preview"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Gemini: GeminiConfig{
			// An empty key is allowed; the first analysis fails instead.
			APIKey:           getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:            getEnv("GEMINI_MODEL", DefaultModel),
			StrictValidation: getEnvAsBool("STRICT_RESPONSE_VALIDATION", false),
		},
		Session: SessionConfig{
			Store: strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
			TTL:   getEnvAsDuration("SESSION_TTL", "24h"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "career_architect"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvAsInt("WORKER_CONCURRENCY", 3),
			JanitorInterval: getEnvAsDuration("JANITOR_INTERVAL", "1m"),
			StaleAfter:      getEnvAsDuration("STALE_ANALYSIS_AFTER", "10m"),
		},
	}
}

func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("config error: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config error: SESSION_TTL must be positive")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config error: WORKER_CONCURRENCY must be at least 1")
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
