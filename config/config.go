package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	App     AppConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// APIConfig points at the remote profile API the web front end talks to.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration // 0 means no client-side timeout
}

type SessionConfig struct {
	Store        string
	TTL          time.Duration
	CookieSecure bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	ServiceName string
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_URL", ""), "/"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 0),
		},
		Session: SessionConfig{
			Store:        strings.ToLower(getEnv("SESSION_STORE", SessionStoreCookie)),
			TTL:          getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			ServiceName: getEnv("SERVICE_NAME", "skillfolio-web"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	switch c.Session.Store {
	case SessionStoreCookie:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreCookie, SessionStoreRedis, c.Session.Store)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
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
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
