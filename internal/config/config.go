package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Finboard"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		Path string `envconfig:"DB_PATH" default:"data/finboard.db"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	OpenAI struct {
		APIKey string `envconfig:"OPENAI_API_KEY"`
		Model  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
