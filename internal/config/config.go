package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBDriver    string
	DatabaseURL string
	RabbitMQURL string
	LogLevel    string
	LogFormat   string
}

// Addr is the listen address for Fiber.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads configuration from envFile (when it exists) and the environment.
// Environment variables win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "4000")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// FromViper builds a Config from v and checks the values that would otherwise
// fail late.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:        v.GetString("PORT"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		DBDriver:    v.GetString("DB_DRIVER"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
	}

	if cfg.Port == "" {
		return Config{}, errors.New("PORT must not be empty")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.FrontendURL != "" {
		u, err := url.Parse(cfg.FrontendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Config{}, fmt.Errorf("FRONTEND_URL %q is not an origin", cfg.FrontendURL)
		}
	}
	return cfg, nil
}
