package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`

	// Ожидание незавершенных пакетов при остановке; не меньше ANALYSIS_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"11m"`

	// Postgres pool Config
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPool int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Analysis provider Config
	AnalysisURL           string        `env:"ANALYSIS_URL" envDefault:"https://whisp.openforis.org/api/geojson"`
	AnalysisTimeout       time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"10m"`
	AnalysisChunkSize     int           `env:"ANALYSIS_CHUNK_SIZE" envDefault:"500"`
	AnalysisRatePerMinute int           `env:"ANALYSIS_RATE_PER_MINUTE" envDefault:"30"`

	// Geo-ID registry Config
	GeoidRegistryURL string        `env:"GEOID_REGISTRY_URL" envDefault:"https://api-ar.agstack.org/register-field-boundary"`
	GeoidTimeout     time.Duration `env:"GEOID_TIMEOUT" envDefault:"30s"`
	GeoidMaxRetries  int           `env:"GEOID_MAX_RETRIES" envDefault:"3"`
	GeoidBaseDelay   time.Duration `env:"GEOID_BASE_DELAY" envDefault:"2s"`

	// Cache Config
	RiskLayerTTL     time.Duration `env:"RISK_LAYER_TTL" envDefault:"1h"`
	SettingsCacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"30s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		MigrationsPath:        getEnv("MIGRATIONS_PATH", "file://migrations"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		DBMaxConns:            getEnvAsInt("DB_MAX_CONNS", 10),
		DBMaxConnIdleTime:     getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		RedisPool:             getEnvAsInt("REDIS_POOL_SIZE", 10),
		AnalysisURL:           getEnv("ANALYSIS_URL", "https://whisp.openforis.org/api/geojson"),
		AnalysisTimeout:       getEnvAsDuration("ANALYSIS_TIMEOUT", 10*time.Minute),
		ShutdownTimeout:       getEnvAsDuration("SHUTDOWN_TIMEOUT", 0),
		AnalysisChunkSize:     getEnvAsInt("ANALYSIS_CHUNK_SIZE", 500),
		AnalysisRatePerMinute: getEnvAsInt("ANALYSIS_RATE_PER_MINUTE", 30),
		GeoidRegistryURL:      getEnv("GEOID_REGISTRY_URL", "https://api-ar.agstack.org/register-field-boundary"),
		GeoidTimeout:          getEnvAsDuration("GEOID_TIMEOUT", 30*time.Second),
		GeoidMaxRetries:       getEnvAsInt("GEOID_MAX_RETRIES", 3),
		GeoidBaseDelay:        getEnvAsDuration("GEOID_BASE_DELAY", 2*time.Second),
		RiskLayerTTL:          getEnvAsDuration("RISK_LAYER_TTL", time.Hour),
		SettingsCacheTTL:      getEnvAsDuration("SETTINGS_CACHE_TTL", 30*time.Second),
		APIKeys:               getEnvAsList("API_KEYS"),
		AllowedOrigins:        getEnvAsList("ALLOWED_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.AnalysisChunkSize < 1 {
		return nil, fmt.Errorf("ANALYSIS_CHUNK_SIZE must be positive, got %d", cfg.AnalysisChunkSize)
	}

	if cfg.ShutdownTimeout < cfg.AnalysisTimeout {
		cfg.ShutdownTimeout = cfg.AnalysisTimeout + time.Minute
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список значений, разделенных запятыми
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
