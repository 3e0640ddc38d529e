package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"

	ProviderGoogle = "google"
	ProviderMemory = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Reservations ReservationsConfig `toml:"reservations"`
	Sync         SyncConfig         `toml:"sync"`
	Calendar     CalendarConfig     `toml:"calendar"`
	Lock         LockConfig         `toml:"lock"`
	Resources    []ResourceConfig   `toml:"resources"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type ReservationsConfig struct {
	MinDurationMinutes int `toml:"min_duration_minutes"`
	MaxDurationMinutes int `toml:"max_duration_minutes"`
	SlotStepMinutes    int `toml:"slot_step_minutes"`
	LockWaitMs         int `toml:"lock_wait_ms"`
}

// LockWait ограничение ожидания блокировки ресурса
func (r ReservationsConfig) LockWait() time.Duration {
	return time.Duration(r.LockWaitMs) * time.Millisecond
}

type SyncConfig struct {
	Enabled                bool   `toml:"enabled"`
	Schedule               string `toml:"schedule"`
	RunOnStart             bool   `toml:"run_on_start"`
	CallTimeoutSeconds     int    `toml:"call_timeout_seconds"`
	ResourceTimeoutSeconds int    `toml:"resource_timeout_seconds"`
}

func (s SyncConfig) CallTimeout() time.Duration {
	return time.Duration(s.CallTimeoutSeconds) * time.Second
}

func (s SyncConfig) ResourceTimeout() time.Duration {
	return time.Duration(s.ResourceTimeoutSeconds) * time.Second
}

type CalendarConfig struct {
	Provider           string  `toml:"provider"`
	CredentialsFile    string  `toml:"credentials_file"`
	RateLimitPerSecond float64 `toml:"rate_limit_per_second"`
	Burst              int     `toml:"burst"`
}

type LockConfig struct {
	Driver          string `toml:"driver"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	LeaseTTLSeconds int    `toml:"lease_ttl_seconds"`
}

func (l LockConfig) LeaseTTL() time.Duration {
	return time.Duration(l.LeaseTTLSeconds) * time.Second
}

// ResourceConfig описание одного бокса (bay)
type ResourceConfig struct {
	ID         string      `toml:"id"`
	Name       string      `toml:"name"`
	CalendarID string      `toml:"calendar_id"`
	Timezone   string      `toml:"timezone"`
	Hours      HoursConfig `toml:"hours"`
}

type HoursConfig struct {
	Open  string               `toml:"open"`
	Close string               `toml:"close"`
	Days  map[string]DayConfig `toml:"days"` // ключ - день недели: monday, tuesday, ...
}

type DayConfig struct {
	Open   string `toml:"open"`
	Close  string `toml:"close"`
	Closed bool   `toml:"closed"`
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse читает конфигурацию из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    60,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "bay-booking-service",
		},
		Reservations: ReservationsConfig{
			MinDurationMinutes: 15,
			MaxDurationMinutes: 480,
			SlotStepMinutes:    30,
			LockWaitMs:         2000,
		},
		Sync: SyncConfig{
			Enabled:                true,
			Schedule:               "@every 15m",
			CallTimeoutSeconds:     10,
			ResourceTimeoutSeconds: 300,
		},
		Calendar: CalendarConfig{
			Provider:           ProviderMemory,
			RateLimitPerSecond: 5,
			Burst:              5,
		},
		Lock: LockConfig{
			Driver:          DriverMemory,
			LeaseTTLSeconds: 600,
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	switch c.Calendar.Provider {
	case ProviderGoogle:
		if c.Calendar.CredentialsFile == "" {
			return fmt.Errorf("%w: calendar.credentials_file is required for google provider", ErrInvalidConfig)
		}
	case ProviderMemory:
	default:
		return fmt.Errorf("%w: unknown calendar provider %q", ErrInvalidConfig, c.Calendar.Provider)
	}
	switch c.Lock.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Lock.RedisAddr == "" {
			return fmt.Errorf("%w: lock.redis_addr is required for redis driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown lock driver %q", ErrInvalidConfig, c.Lock.Driver)
	}

	r := c.Reservations
	if r.MinDurationMinutes <= 0 || r.MaxDurationMinutes < r.MinDurationMinutes {
		return fmt.Errorf("%w: duration bounds %d..%d", ErrInvalidConfig, r.MinDurationMinutes, r.MaxDurationMinutes)
	}
	if r.SlotStepMinutes <= 0 || r.LockWaitMs <= 0 {
		return fmt.Errorf("%w: slot_step_minutes and lock_wait_ms must be positive", ErrInvalidConfig)
	}
	if c.Sync.CallTimeoutSeconds <= 0 || c.Sync.ResourceTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: sync timeouts must be positive", ErrInvalidConfig)
	}
	if c.Lock.LeaseTTLSeconds < c.Sync.ResourceTimeoutSeconds {
		return fmt.Errorf("%w: lock.lease_ttl_seconds must cover sync.resource_timeout_seconds", ErrInvalidConfig)
	}
	if len(c.Resources) == 0 {
		return fmt.Errorf("%w: at least one [[resources]] entry is required", ErrInvalidConfig)
	}
	return nil
}
