package config

import (
	"os"
	"strconv"
	"time"

	"expense_tracker/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	FrontendURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// API rate limits (fixed window, per IP)
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Upper bound for any single store query.
	QueryTimeout time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (and .env if present).
// Missing required values are fatal; everything else has a default.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	// Defaults mirror the public API limit: 100 requests per 15 minutes.
	apiLimit := envInt("API_RATE_LIMIT", 100)
	apiWindow := envSeconds("API_RATE_WINDOW_SECONDS", 15*time.Minute)
	authLimit := envInt("AUTH_RATE_LIMIT", 10)
	authWindow := envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute)

	queryTimeout := envSeconds("QUERY_TIMEOUT_SECONDS", 10*time.Second)

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		FrontendURL:    frontendURL,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		APIRateLimit:   apiLimit,
		APIRateWindow:  apiWindow,
		AuthRateLimit:  authLimit,
		AuthRateWindow: authWindow,
		QueryTimeout:   queryTimeout,
		LogLevel:       envDefault("LOG_LEVEL", "info"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
