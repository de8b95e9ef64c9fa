// Package config loads tinyrsa settings from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds the settings shared by every tinyrsa command.
type Config struct {
	LogLevel       string `env:"TINYRSA_LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"TINYRSA_LOG_DEVELOPMENT" envDefault:"false"`
	// Seed selects a deterministic random stream for key generation; zero
	// means crypto/rand.
	Seed uint64 `env:"TINYRSA_SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// Load returns the Config described by the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
