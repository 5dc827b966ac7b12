package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const prefix = "BRANDKIT"

// Database holds libsql connection configuration. Local file URLs need no
// auth token.
type Database struct {
	URL       string `envconfig:"DATABASE_URL" default:"file:brandkit.db"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
}

// OTel holds OTLP metrics exporter configuration.
type OTel struct {
	Enabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint string `envconfig:"OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"OTEL_INSECURE" default:"false"`
}

// Config is the full runtime configuration.
type Config struct {
	Database      Database `ignored:"true"`
	OTel          OTel     `ignored:"true"`
	Port          int      `envconfig:"PORT" default:"8080"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
	DefaultTenant string   `envconfig:"DEFAULT_TENANT" default:"default"`
	PaletteBlend  string   `envconfig:"PALETTE_BLEND" default:"hsl"`
}

// Load reads an optional .env file and then the BRANDKIT_* environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg.Database); err != nil {
		return nil, err
	}
	if err := envconfig.Process(prefix, &cfg.OTel); err != nil {
		return nil, err
	}
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
