package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/transport-service/internal/pkg/validator"
)

type Config struct {
	Server     ServerConfig
	Valhalla   ValhallaConfig
	Redis      RedisConfig
	Accounting AccountingConfig
	Cache      CacheConfig
	Log        LogConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int      `validate:"required,min=1,max=65535"`
	Env         string   `validate:"oneof=development production test"`
	CORSOrigins []string `validate:"min=1"`
	BodyLimit   int      `validate:"min=1024"`
}

type ValhallaConfig struct {
	URL     string        `validate:"required,url"`
	Timeout time.Duration `validate:"min=1ms"`
	Breaker BreakerConfig
}

// BreakerConfig - настройки circuit breaker клиента движка
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration `validate:"min=1ms"`
	ConsecutiveFailures uint32        `validate:"min=1"`
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int `validate:"min=0"`
	PoolSize    int `validate:"min=0"`
	DialTimeout time.Duration
}

type AccountingConfig struct {
	Enabled bool
	Stream  string `validate:"required"`
}

type CacheConfig struct {
	StatsCacheTTL time.Duration
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string `validate:"required"`
	BatchSize         int    `validate:"min=1,max=1000"`
	StreamReadTimeout time.Duration
	ClaimMinIdle      time.Duration
	MaxRetries        int `validate:"min=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_BODY_LIMIT", 10*1024*1024)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("VALHALLA_TIMEOUT", 30)
	v.SetDefault("VALHALLA_BREAKER_MAX_REQUESTS", 1)
	v.SetDefault("VALHALLA_BREAKER_INTERVAL", 60)
	v.SetDefault("VALHALLA_BREAKER_TIMEOUT", 30)
	v.SetDefault("VALHALLA_BREAKER_FAILURES", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 0)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5)

	v.SetDefault("ACCOUNTING_ENABLED", false)
	v.SetDefault("ACCOUNTING_STREAM", "stream:transport:accounting")
	v.SetDefault("STATS_CACHE_TTL", 30)

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "transport-accounting-workers")
	v.SetDefault("WORKER_BATCH_SIZE", 10)
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 1000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_CLAIM_MIN_IDLE", 30)
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения.
// Переменные окружения имеют приоритет над .env.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
			BodyLimit:   v.GetInt("API_BODY_LIMIT"),
		},
		Valhalla: ValhallaConfig{
			URL:     strings.TrimRight(v.GetString("VALHALLA_URL"), "/"),
			Timeout: time.Duration(v.GetInt("VALHALLA_TIMEOUT")) * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:         v.GetUint32("VALHALLA_BREAKER_MAX_REQUESTS"),
				Interval:            time.Duration(v.GetInt("VALHALLA_BREAKER_INTERVAL")) * time.Second,
				Timeout:             time.Duration(v.GetInt("VALHALLA_BREAKER_TIMEOUT")) * time.Second,
				ConsecutiveFailures: v.GetUint32("VALHALLA_BREAKER_FAILURES"),
			},
		},
		Redis: RedisConfig{
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetInt("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: time.Duration(v.GetInt("REDIS_DIAL_TIMEOUT")) * time.Second,
		},
		Accounting: AccountingConfig{
			Enabled: v.GetBool("ACCOUNTING_ENABLED"),
			Stream:  v.GetString("ACCOUNTING_STREAM"),
		},
		Cache: CacheConfig{
			StatsCacheTTL: time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			ClaimMinIdle:      time.Duration(v.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Second,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AllowOrigins - значение для cors.Config.AllowOrigins
func (c *Config) AllowOrigins() string {
	return strings.Join(c.Server.CORSOrigins, ",")
}
