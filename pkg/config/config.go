// Package config loads the dashboard configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the population dashboard settings.
type Config struct {
	DataDir          string   `env:"POPSTATS_DATA_DIR" envDefault:"./data"`
	HTTPAddr         string   `env:"POPSTATS_HTTP_ADDR" envDefault:":8501"`
	CacheSize        int      `env:"POPSTATS_CACHE_SIZE" envDefault:"16"`
	Countries        []string `env:"POPSTATS_COUNTRIES" envSeparator:"," envDefault:"abw,usa,chn,ind,bra,can,mex,deu,fra,jpn"`
	DefaultCountries []string `env:"POPSTATS_DEFAULT_COUNTRIES" envSeparator:"," envDefault:"usa,chn,ind"`
	SourceURL        string   `env:"POPSTATS_SOURCE_URL"`
	LogLevel         string   `env:"POPSTATS_LOG_LEVEL" envDefault:"info"`
	Dev              bool     `env:"POPSTATS_DEV" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional dotenv files, then the environment. Variables
// already set in the environment win over dotenv values. A missing dotenv
// file is not an error.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("POPSTATS_CACHE_SIZE must be positive, got %d", cfg.CacheSize)
	}

	return cfg, nil
}
