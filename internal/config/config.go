package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr    string
	DatabaseURL string

	// RabbitMQ (rating event ingestion)
	RabbitURL       string
	RabbitExchange  string
	RabbitQueue     string
	ConsumerBackoff time.Duration

	// Course catalog sync
	CourseServiceURL string
	CatalogTimeout   time.Duration
	InitialSyncDelay time.Duration

	// Redis & caching (optional)
	RedisURL string
	CacheTTL time.Duration

	// Rate limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8084")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "course.ratings")
	cfg.RabbitQueue = getEnv("RABBIT_QUEUE", "recommendation-service.rating-events")
	cfg.ConsumerBackoff = getDuration("CONSUMER_BACKOFF", 1*time.Second)

	cfg.CourseServiceURL = strings.TrimRight(getEnv("COURSE_SERVICE_URL", ""), "/")
	cfg.CatalogTimeout = getDuration("CATALOG_TIMEOUT", 10*time.Second)
	cfg.InitialSyncDelay = getDuration("INITIAL_SYNC_DELAY", 10*time.Second)

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTL = getDuration("CACHE_TTL_RECOMMENDATIONS", 30*time.Second)

	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	if cfg.CourseServiceURL == "" {
		return nil, fmt.Errorf("missing COURSE_SERVICE_URL")
	}
	if cfg.AppEnv != "dev" && cfg.RabbitURL == "" {
		return nil, fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
