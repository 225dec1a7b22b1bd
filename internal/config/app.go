package config

import "github.com/joho/godotenv"

type AppConfig struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Autoplay AutoplayConfig
	Announce AnnounceConfig
}

// LoadDotEnv reads an optional .env file into the process environment.
// Variables already set win over the file.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	storageCfg, err := LoadStorage()
	if err != nil {
		return AppConfig{}, err
	}
	autoplayCfg, err := LoadAutoplay()
	if err != nil {
		return AppConfig{}, err
	}
	announceCfg, err := LoadAnnounce()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:   serverCfg,
		Log:      logCfg,
		Storage:  storageCfg,
		Autoplay: autoplayCfg,
		Announce: announceCfg,
	}, nil
}
