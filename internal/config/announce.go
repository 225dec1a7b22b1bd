package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type AnnounceConfig struct {
	Enabled         bool          `env:"ANNOUNCE_ENABLED" envDefault:"false"`
	DiscordWebhooks []string      `env:"ANNOUNCE_DISCORD_WEBHOOKS" envSeparator:","`
	Events          []string      `env:"ANNOUNCE_EVENTS" envDefault:"tournament_started,tournament_completed" envSeparator:","`
	Workers         int           `env:"ANNOUNCE_WORKERS" envDefault:"2"`
	RetryMax        int           `env:"ANNOUNCE_RETRY_MAX" envDefault:"3"`
	RetryBase       time.Duration `env:"ANNOUNCE_RETRY_BASE" envDefault:"500ms"`
	RequestTimeout  time.Duration `env:"ANNOUNCE_REQUEST_TIMEOUT" envDefault:"5s"`
}

func LoadAnnounce() (AnnounceConfig, error) {
	var cfg AnnounceConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.DiscordWebhooks = trimEmpty(cfg.DiscordWebhooks)
	for i := range cfg.Events {
		cfg.Events[i] = strings.ToLower(strings.TrimSpace(cfg.Events[i]))
	}
	cfg.Events = trimEmpty(cfg.Events)
	if cfg.Enabled && len(cfg.DiscordWebhooks) == 0 {
		return cfg, fmt.Errorf("ANNOUNCE_DISCORD_WEBHOOKS is required when ANNOUNCE_ENABLED is set")
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}
	return cfg, nil
}

func trimEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
