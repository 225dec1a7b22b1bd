package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND" envDefault:"file"`
	Dir     string `env:"STORAGE_DIR" envDefault:"data"`

	PostgresDSN   string `env:"POSTGRES_DSN"`
	PostgresTable string `env:"POSTGRES_TABLE" envDefault:"kv_store"`

	S3Bucket          string `env:"S3_BUCKET"`
	S3Prefix          string `env:"S3_PREFIX" envDefault:"tournamentflow"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"auto"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PathStyle       bool   `env:"S3_PATH_STYLE" envDefault:"false"`
}

func LoadStorage() (StorageConfig, error) {
	var cfg StorageConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c StorageConfig) Validate() error {
	switch c.Backend {
	case "memory":
	case "file":
		if c.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the file backend")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Backend)
	}
	return nil
}
