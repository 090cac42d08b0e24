// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Stripe    StripeConfig    `koanf:"stripe"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	Migrate         bool          `koanf:"migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

// JWTConfig holds the shared-secret settings for access credentials.
// AccessTokenExpire is the validity window stamped into every credential.
type JWTConfig struct {
	Secret            string        `koanf:"secret"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
}

type StripeConfig struct {
	SecretKey string `koanf:"secret_key"`
	Currency  string `koanf:"currency"`
}

// KafkaConfig enables the payment event publisher when Brokers is non-empty.
type KafkaConfig struct {
	Brokers      []string `koanf:"brokers"`
	PaymentTopic string   `koanf:"payment_topic"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = load(configPath)
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Summer Camp API",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             5000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"database.migrate":            true,

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.access_token_expire": "48h",
		"jwt.issuer":              "summercamp-api",

		"stripe.currency": "usd",

		"kafka.payment_topic": "payment.committed",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"http://localhost:5173"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "summercamp-api",

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"DATABASE_MIGRATE":            "database.migrate",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"ACCESS_TOKEN_SECRET":         "jwt.secret",
	"JWT_ACCESS_TOKEN_EXPIRE":     "jwt.access_token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"PAYMENT_SECRET_KEY":          "stripe.secret_key",
	"PAYMENT_CURRENCY":            "stripe.currency",
	"KAFKA_PAYMENT_TOPIC":         "kafka.payment_topic",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"METRICS_ENABLED":             "metrics.enabled",
	"METRICS_PATH":                "metrics.path",
}

// envValue maps a known env var to its config key. KAFKA_BROKERS is a
// comma separated list.
func envValue(key, value string) (string, any) {
	if key == "KAFKA_BROKERS" {
		return "kafka.brokers", splitList(value)
	}
	if mapped, ok := envKeyMap[key]; ok {
		return mapped, value
	}
	return "", nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}

	if c.JWT.AccessTokenExpire <= 0 {
		return fmt.Errorf("jwt.access_token_expire must be positive")
	}

	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("PAYMENT_SECRET_KEY is required")
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.PaymentTopic == "" {
		return fmt.Errorf("kafka.payment_topic is required when brokers are set")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
