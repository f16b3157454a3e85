// Package config загружает конфигурацию сервиса из TOML файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Database       DatabaseConfig    `toml:"database"`
	Redis          RedisConfig       `toml:"redis"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	Booking        BookingConfig     `toml:"booking"`
	VenueService   IntegrationConfig `toml:"venue_service"`
	UserService    IntegrationConfig `toml:"user_service"`
	LedgerService  IntegrationConfig `toml:"ledger_service"`
	InvoiceService IntegrationConfig `toml:"invoice_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	InternalToken   string `toml:"internal_token"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
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

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisConfig настройки подключения к Redis (бэкенд блокировок слотов)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	// TTL мягкой блокировки слота (окно оплаты), минуты
	LockTTLMinutes int `toml:"lock_ttl_minutes"`
	// Процент платформенного сбора поверх стоимости слота
	PlatformFeePercent float64 `toml:"platform_fee_percent"`
	// Доля стоимости слота, оплачиваемая онлайн при бронировании
	AdvanceSharePercent float64 `toml:"advance_share_percent"`
	// Интервал фонового перевода просроченных pending в expired, секунды
	ExpirySweepSeconds int `toml:"expiry_sweep_seconds"`
	// Бэкенд блокировок: "memory" или "redis"
	SoftlockBackend string `toml:"softlock_backend"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
	Token   string `toml:"token"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "playpoint-venuebooking"
	}

	if c.Booking.LockTTLMinutes == 0 {
		c.Booking.LockTTLMinutes = 7
	}
	if c.Booking.AdvanceSharePercent == 0 {
		c.Booking.AdvanceSharePercent = 30
	}
	if c.Booking.ExpirySweepSeconds == 0 {
		c.Booking.ExpirySweepSeconds = 60
	}
	if c.Booking.SoftlockBackend == "" {
		c.Booking.SoftlockBackend = "memory"
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}

	switch c.Booking.SoftlockBackend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when booking.softlock_backend = \"redis\"")
		}
	default:
		return fmt.Errorf("booking.softlock_backend must be \"memory\" or \"redis\", got %q", c.Booking.SoftlockBackend)
	}

	if c.Booking.PlatformFeePercent < 0 || c.Booking.PlatformFeePercent > 100 {
		return fmt.Errorf("booking.platform_fee_percent must be within [0, 100]")
	}
	if c.Booking.AdvanceSharePercent < 0 || c.Booking.AdvanceSharePercent > 100 {
		return fmt.Errorf("booking.advance_share_percent must be within [0, 100]")
	}

	return nil
}
