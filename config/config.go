package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr            string
	LogLevel            string
	JWTSecret           string
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPass              string
	DBName              string
	DBDSN               string
	SQLitePath          string
	RedisEnabled        bool
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	StaticDir           string
	CORSOrigins         []string
	MaxUploadBytes      int64
	RabbitMQURL         string
	RabbitMQHost        string
	RabbitMQPort        string
	RabbitMQUser        string
	RabbitMQPass        string
	RabbitMQVhost       string
	// CleanupQueueEnabled makes the API publish failed file removals to RabbitMQ.
	CleanupQueueEnabled bool
	RabbitMQPrefetch    int
	CleanupConcurrency  int
	CleanupRate         float64
	CleanupBurst        int
	CleanupRetryMax     int
	CleanupRetryDelays  []time.Duration
	ReconcileInterval   time.Duration
	ReconcileGrace      time.Duration
	SMTPHost            string
	SMTPPort            string
	SMTPUser            string
	SMTPPass            string
	SMTPFrom            string
	SMTPTLS             bool
	SMTPStartTLS        bool
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDurationList(key string, defaultValue []time.Duration) []time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := time.ParseDuration(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads .env (if any) and the environment into AppConfig.
func InitConfig() {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	retryDelays := getEnvDurationList(
		"CLEANUP_RETRY_DELAYS",
		[]time.Duration{10 * time.Second, time.Minute, 10 * time.Minute},
	)
	AppConfig = Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8000"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		JWTSecret:           getEnv("JWT_SECRET", "modelhub-dev-secret"),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "root"),
		DBPass:              getEnv("DB_PASS", "root"),
		DBName:              getEnv("DB_NAME", "modelhub"),
		DBDSN:               getEnv("DB_DSN", ""),
		SQLitePath:          getEnv("SQLITE_PATH", "modelhub.db"),
		RedisEnabled:        getEnvBool("REDIS_ENABLED", false),
		RedisHost:           getEnv("REDIS_HOST", "localhost"),
		RedisPort:           getEnv("REDIS_PORT", "6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		StaticDir:           getEnv("STATIC_DIR", "static"),
		CORSOrigins:         getEnvList("CORS_ALLOW_ORIGINS", nil),
		MaxUploadBytes:      getEnvInt64("MAX_UPLOAD_BYTES", 200<<20),
		RabbitMQURL:         rabbitURL,
		RabbitMQHost:        rabbitHost,
		RabbitMQPort:        rabbitPort,
		RabbitMQUser:        rabbitUser,
		RabbitMQPass:        rabbitPass,
		RabbitMQVhost:       rabbitVhost,
		CleanupQueueEnabled: getEnvBool("CLEANUP_QUEUE_ENABLED", false),
		RabbitMQPrefetch:    getEnvInt("RABBITMQ_PREFETCH", 8),
		CleanupConcurrency:  getEnvInt("CLEANUP_WORKER_CONCURRENCY", 2),
		CleanupRate:         getEnvFloat("CLEANUP_RATE", 5),
		CleanupBurst:        getEnvInt("CLEANUP_BURST", 5),
		CleanupRetryMax:     getEnvInt("CLEANUP_RETRY_MAX", 3),
		CleanupRetryDelays:  retryDelays,
		ReconcileInterval:   getEnvDuration("RECONCILE_INTERVAL", time.Hour),
		ReconcileGrace:      getEnvDuration("RECONCILE_GRACE", 10*time.Minute),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", ""),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPass:            getEnv("SMTP_PASS", ""),
		SMTPFrom:            getEnv("SMTP_FROM", ""),
		SMTPTLS:             getEnvBool("SMTP_TLS", false),
		SMTPStartTLS:        getEnvBool("SMTP_STARTTLS", false),
	}

	InitStorageConfig()
}
