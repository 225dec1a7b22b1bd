package config

import "github.com/caarlos0/env/v11"

type WatchConfig struct {
	WSURL string `env:"WS_URL" envDefault:"ws://localhost:4000/ws"`
	Room  string `env:"WATCH_ROOM" envDefault:"lobby"`
}

func LoadWatch() (WatchConfig, error) {
	var cfg WatchConfig
	err := env.Parse(&cfg)
	return cfg, err
}
