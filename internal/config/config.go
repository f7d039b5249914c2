package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"trafficwatch"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Identity provider tokens are HS256-signed with this secret.
	SessionSecret string `env:"SESSION_SECRET"`

	// Upstream prediction / routing API
	UpstreamAPIURL  string        `env:"UPSTREAM_API_URL" envDefault:"http://localhost:8005"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

	// Polling
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`
	PollCities   []string      `env:"POLL_CITIES" envSeparator:"," envDefault:"Mumbai"`
	DefaultCity  string        `env:"DEFAULT_CITY" envDefault:"Mumbai"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	// Observability
	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	// The default city backs requests that name no city, so it is always polled.
	if cfg.DefaultCity != "" && !cfg.Polls(cfg.DefaultCity) {
		cfg.PollCities = append(cfg.PollCities, cfg.DefaultCity)
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Polls reports whether city is one of the polled cities.
func (c *Config) Polls(city string) bool {
	for _, p := range c.PollCities {
		if p == city {
			return true
		}
	}
	return false
}
