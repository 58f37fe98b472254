package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all service configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
	Seed   bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// RabbitMQConfig leaves product events disabled when URL is empty.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

type LoggerConfig struct {
	Level  string
	Format string
}

// AuthConfig throttles /api/auth to RateMax requests per RateWindow for each client IP.
type AuthConfig struct {
	RateMax    int
	RateWindow time.Duration
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "" || c.App.Env == "development" || c.App.Env == "test"
}

// Load reads configuration from an optional .env file, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL %q: %w", v.GetString("JWT_TTL"), err)
	}

	cfg := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  strings.ToLower(v.GetString("APP_ENV")),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
			Seed:   v.GetBool("DATABASE_SEED"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    ttl,
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			RateMax:    v.GetInt("AUTH_RATE_MAX"),
			RateWindow: v.GetDuration("AUTH_RATE_WINDOW"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:products.db?cache=shared")
	v.SetDefault("DATABASE_SEED", true)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("AUTH_RATE_MAX", 10)
	v.SetDefault("AUTH_RATE_WINDOW", "1m")
}

// Validate checks the combination of settings.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWT.Secret = "development-secret"
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	if c.RabbitMQ.URL != "" && c.RabbitMQ.Queue == "" {
		return errors.New("RABBITMQ_QUEUE is required when RABBITMQ_URL is set")
	}

	if c.Auth.RateMax <= 0 || c.Auth.RateWindow <= 0 {
		return errors.New("AUTH_RATE_MAX and AUTH_RATE_WINDOW must be positive")
	}
	return nil
}
