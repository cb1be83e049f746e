// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"creator-wallet/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort      string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	PayoutTimezone  string `envconfig:"PAYOUT_TIMEZONE" default:"Africa/Lagos"`
	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"NGN"`
	DB              DBConfig
	Redis           RedisConfig
}

// DBConfig holds the PostgreSQL settings.
type DBConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"user"`
	Password        string        `envconfig:"DB_PASSWORD" default:"password"`
	Name            string        `envconfig:"DB_NAME" default:"walletdb"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

// RedisConfig holds the ledger snapshot cache settings.
type RedisConfig struct {
	Enabled  bool          `envconfig:"CACHE_ENABLED" default:"false"`
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one is present.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY %q: expected a 3-letter ISO code", cfg.DefaultCurrency)
	}
	if _, err := cfg.PayoutLocation(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Database converts the env settings into the connection config used by pkg/db.
func (c *AppConfig) Database() db.Config {
	return db.Config{
		Host:            c.DB.Host,
		Port:            c.DB.Port,
		User:            c.DB.User,
		Password:        c.DB.Password,
		DBName:          c.DB.Name,
		SSLMode:         c.DB.SSLMode,
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
	}
}

// PayoutLocation resolves the timezone payout calendar dates are computed in.
func (c *AppConfig) PayoutLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.PayoutTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYOUT_TIMEZONE %q: %w", c.PayoutTimezone, err)
	}
	return loc, nil
}
