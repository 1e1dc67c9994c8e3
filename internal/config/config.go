package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	// AllowedOrigins supplements the always-on localhost CORS allowance,
	// e.g. the deployed web client origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// SessionTTL bounds how long an idle conversation session may linger
	// after its screen stopped talking to us.
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
