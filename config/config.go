package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Inventory UpstreamConfig
	Order     UpstreamConfig
	Session   SessionConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// UpstreamConfig describes one of the two remote JSON backends
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	// Store selects where the per-session ordered-items set lives:
	// "memory" or "redis".
	Store      string
	CookieName string
	TTL        time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	// Brokers empty means activity events are disabled.
	Brokers       []string
	TopicActivity string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	upstreamTimeout, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "10"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_SECONDS", "86400"))

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8090"),
			Env:  getEnv("ENV", "development"),
		},
		Inventory: UpstreamConfig{
			BaseURL: getEnv("INVENTORY_API_URL", "http://localhost:8080"),
			Timeout: time.Duration(upstreamTimeout) * time.Second,
		},
		Order: UpstreamConfig{
			BaseURL: getEnv("ORDER_API_URL", "http://localhost:8081"),
			Timeout: time.Duration(upstreamTimeout) * time.Second,
		},
		Session: SessionConfig{
			Store:      getEnv("SESSION_STORE", "memory"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			TTL:        time.Duration(sessionTTL) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       brokers,
			TopicActivity: getEnv("KAFKA_TOPIC_ACTIVITY", "storefront-activity"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, inventory=%s, order=%s",
		cfg.Server.Env, cfg.Server.Port, cfg.Inventory.BaseURL, cfg.Order.BaseURL)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
