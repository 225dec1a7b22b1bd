package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type AutoplayConfig struct {
	Enabled   bool          `env:"AUTOPLAY_ENABLED" envDefault:"false"`
	Interval  time.Duration `env:"AUTOPLAY_INTERVAL" envDefault:"30s"`
	MinActive time.Duration `env:"AUTOPLAY_MIN_ACTIVE" envDefault:"2m"`
}

func LoadAutoplay() (AutoplayConfig, error) {
	var cfg AutoplayConfig
	err := env.Parse(&cfg)
	return cfg, err
}
