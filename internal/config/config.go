package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается, если значения конфигурации непригодны для запуска
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса (config.toml)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Business BusinessConfig `toml:"business"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Realtime RealtimeConfig `toml:"realtime"`
	Tracing  TracingConfig  `toml:"tracing"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	AllowedOrigins  []string `toml:"allowed_origins"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig правила бронирования
type BusinessConfig struct {
	Timezone              string `toml:"timezone"`
	SlotStepMinutes       int    `toml:"slot_step_minutes"`
	BookingCutoffMinutes  int    `toml:"booking_cutoff_minutes"`
	CancellationLeadHours int    `toml:"cancellation_lead_hours"`
	InitialStatus         string `toml:"initial_status"` // pending | confirmed
	WhatsAppCountryCode   string `toml:"whatsapp_country_code"`
}

// Location часовой пояс салона
func (b BusinessConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	AdminEmail      string `toml:"admin_email"`
	AdminPassword   string `toml:"admin_password"`
}

type RedisConfig struct {
	Enabled             bool   `toml:"enabled"`
	Addr                string `toml:"addr"`
	Password            string `toml:"password"`
	DB                  int    `toml:"db"`
	RateLimitRequests   int    `toml:"rate_limit_requests"`
	RateLimitWindowSecs int    `toml:"rate_limit_window_seconds"`
	FailOpen            bool   `toml:"fail_open"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type RealtimeConfig struct {
	MinReconnectSeconds  int    `toml:"min_reconnect_seconds"`
	MaxReconnectSeconds  int    `toml:"max_reconnect_seconds"`
	SubscriberBufferSize int    `toml:"subscriber_buffer_size"`
	HeartbeatSeconds     int    `toml:"heartbeat_seconds"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type CatalogConfig struct {
	CacheSize       int `toml:"cache_size"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// Load читает конфигурацию из TOML-файла, применяет значения по умолчанию,
// переопределения из окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию, поверх которых декодируется файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			MaxBodyBytes:    1 << 20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "pawsbubbles-booking",
		},
		Business: BusinessConfig{
			Timezone:              "America/Bogota",
			SlotStepMinutes:       15,
			BookingCutoffMinutes:  45,
			CancellationLeadHours: 3,
			InitialStatus:         "confirmed",
			WhatsAppCountryCode:   "57",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 12 * 60,
		},
		Redis: RedisConfig{
			Addr:                "localhost:6379",
			RateLimitRequests:   20,
			RateLimitWindowSecs: 60,
			FailOpen:            true,
		},
		Kafka: KafkaConfig{
			Topic: "appointments.changes.v1",
		},
		Realtime: RealtimeConfig{
			MinReconnectSeconds:  1,
			MaxReconnectSeconds:  30,
			SubscriberBufferSize: 16,
			HeartbeatSeconds:     25,
		},
		Tracing: TracingConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Catalog: CatalogConfig{
			CacheSize:       64,
			CacheTTLSeconds: 600,
		},
	}
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		"DB_PASSWORD":    &c.Database.Password,
		"JWT_SECRET":     &c.Auth.JWTSecret,
		"ADMIN_PASSWORD": &c.Auth.AdminPassword,
		"REDIS_PASSWORD": &c.Redis.Password,
	}
	for key, target := range overrides {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*target = v
		}
	}
}

// Validate проверяет, что с конфигурацией можно стартовать
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if _, err := c.Business.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("business.timezone: %v", err))
	}
	if c.Business.SlotStepMinutes <= 0 || 60%c.Business.SlotStepMinutes != 0 {
		problems = append(problems, "business.slot_step_minutes must divide 60")
	}
	if c.Business.BookingCutoffMinutes < 0 {
		problems = append(problems, "business.booking_cutoff_minutes must not be negative")
	}
	if c.Business.CancellationLeadHours < 0 {
		problems = append(problems, "business.cancellation_lead_hours must not be negative")
	}
	if c.Business.InitialStatus != "pending" && c.Business.InitialStatus != "confirmed" {
		problems = append(problems, "business.initial_status must be pending or confirmed")
	}
	if len(c.Auth.JWTSecret) < 32 {
		problems = append(problems, "auth.jwt_secret must be at least 32 characters")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		problems = append(problems, "auth.token_ttl_minutes must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
