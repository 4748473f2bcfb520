package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/shop_records/pkg/config"
)

const (
	SeedAlways = "always"
	SeedOnce   = "once"
	SeedOff    = "off"
)

type ServiceConfig struct {
	config.Config

	SeedMode string
}

// Load reads .env (when present) and the process environment.
func Load() (ServiceConfig, error) {
	envFile := config.EnvDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("notice: could not load %s: %v", envFile, err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	seedMode := strings.ToLower(config.EnvDefault("SEED_MODE", SeedAlways))
	if err := config.OneOf(seedMode, "SEED_MODE", SeedAlways, SeedOnce, SeedOff); err != nil {
		return ServiceConfig{}, err
	}

	return ServiceConfig{Config: cfg, SeedMode: seedMode}, nil
}
