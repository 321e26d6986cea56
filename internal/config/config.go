package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-VisitBookingService/internal/domain"
)

// defaultLockTimeoutMS лимит ожидания блокировок по умолчанию (мс)
// Одобрение держит блокировку всей группы (date, segment), поэтому ожидание
// должно быть ограничено: по истечении лимита транзакция прерывается
// и вызывающая сторона повторяет операцию
const defaultLockTimeoutMS = 3000

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Booking    BookingConfig    `toml:"booking"`
	SMSGateway SMSGatewayConfig `toml:"sms_gateway"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

	// LockTimeout лимит ожидания блокировок строк внутри транзакций (мс)
	LockTimeout int `toml:"lock_timeout"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки бронирования
type BookingConfig struct {
	// MaxSlotsPerSegment вместимость одного сегмента (date + segment)
	// Фиксируется на старте процесса, не меняется per-request
	MaxSlotsPerSegment int `toml:"max_slots_per_segment"`
}

// SMSGatewayConfig настройки SMS-шлюза для уведомлений
type SMSGatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Booking.MaxSlotsPerSegment == 0 {
		cfg.Booking.MaxSlotsPerSegment = domain.DefaultMaxSlotsPerSegment
	}
	if cfg.Booking.MaxSlotsPerSegment < 0 {
		return nil, fmt.Errorf("config: booking.max_slots_per_segment must be positive, got %d",
			cfg.Booking.MaxSlotsPerSegment)
	}

	if cfg.Database.LockTimeout == 0 {
		cfg.Database.LockTimeout = defaultLockTimeoutMS
	}
	if cfg.Database.LockTimeout < 0 {
		return nil, fmt.Errorf("config: database.lock_timeout must not be negative, got %d",
			cfg.Database.LockTimeout)
	}

	return &cfg, nil
}
