package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TRACKER_CONFIG is set
//  3. env (prefix TRACKER_)
//
// A .env file in the working directory is folded into the process environment
// first, mirroring the dotenv convention the service has always used.
func Load(_ context.Context) (*Config, error) {
	// Missing .env is not an error; it only exists in local setups.
	_ = godotenv.Load()

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TRACKER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TRACKER_ADDR, TRACKER_MONGO_URI, ...
	// Map env keys like TRACKER_MONGO_URI -> mongo_uri to match koanf tags.
	envProvider := env.Provider("TRACKER_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "tracker_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch cfg.Store {
	case StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, cfg.Store)
	}
	if cfg.DefaultLogLimit <= 0 {
		return nil, fmt.Errorf("%w: default_log_limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
