package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/canchub/court-booking-service/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	VenueService  ServiceClientConfig `toml:"venue_service"`
	UserService   ServiceClientConfig `toml:"user_service"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig бизнес-параметры движка бронирования
type BookingConfig struct {
	// Порог поздней отмены в часах до начала бронирования
	LateWindowHours int `toml:"late_window_hours"`
	// Сколько минут PENDING бронирование ждёт подтверждения
	PendingTTLMinutes int `toml:"pending_ttl_minutes"`
	// Период запуска sweep'а экспирации, секунды (0 = выключен)
	ExpireSweepSeconds int `toml:"expire_sweep_seconds"`
	// Создавать бронирования сразу подтверждёнными, минуя PENDING
	AutoConfirm bool `toml:"auto_confirm"`
	// Валюта цен (только для отображения)
	Currency string `toml:"currency"`
}

// ServiceClientConfig настройки HTTP клиента внешнего сервиса
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// NotificationsConfig настройки публикации событий в RabbitMQ
type NotificationsConfig struct {
	Enabled  bool   `toml:"enabled"`
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Server.HTTPPort <= 0 {
		return nil, fmt.Errorf("config: server.http_port must be positive")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.host and database.dbname are required")
	}
	if cfg.Booking.LateWindowHours < 0 {
		return nil, fmt.Errorf("config: booking.late_window_hours cannot be negative")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Booking.LateWindowHours == 0 {
		cfg.Booking.LateWindowHours = domain.DefaultLateWindowHours
	}
	if cfg.Booking.PendingTTLMinutes == 0 {
		cfg.Booking.PendingTTLMinutes = domain.DefaultPendingTTLMinutes
	}
	if cfg.Booking.Currency == "" {
		cfg.Booking.Currency = domain.DefaultCurrency
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
