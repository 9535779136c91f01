package config

import (
	"os"
	"strconv"
	"time"

	"skybook/internal/cache"
	"skybook/internal/database"
	"skybook/internal/messaging"
	"skybook/internal/search"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Окно дедупликации повторных запросов на бронирование
	BookingDedupWindow time.Duration
	// Таймаут, после которого неоплаченное бронирование отменяется
	BookingExpiration time.Duration

	// Блокировка входа после неудачных попыток
	MaxLoginAttempts int
	LoginLockoutTTL  time.Duration

	FlightCacheTTL time.Duration

	Database database.Config
	Redis    cache.Config
	NATS     messaging.Config
	Search   search.Config
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		BookingDedupWindow: time.Duration(getEnvInt("BOOKING_DEDUP_WINDOW_SEC", 300)) * time.Second,
		BookingExpiration:  time.Duration(getEnvInt("BOOKING_EXPIRATION_MIN", 15)) * time.Minute,

		MaxLoginAttempts: getEnvInt("MAX_LOGIN_ATTEMPTS", 5),
		LoginLockoutTTL:  time.Duration(getEnvInt("LOGIN_LOCKOUT_MIN", 15)) * time.Minute,

		FlightCacheTTL: time.Duration(getEnvInt("FLIGHT_CACHE_TTL_SEC", 60)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "skybook"),
			Password:           getEnv("DB_PASSWORD", "skybook123"),
			DBName:             getEnv("DB_NAME", "skybook"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 100),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
			StatementTimeoutMS: getEnvInt("DB_STATEMENT_TIMEOUT_MS", 5000),
		},

		Redis: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "skybook"),
			ClientID:  getEnv("NATS_CLIENT_ID", "skybook-api"),
		},

		Search: search.Config{
			URL:        getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "flights"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
