package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the sports unit tools.
type Config struct {
	DBPath        string `env:"SPORTS_DB_PATH,        default=sports_inventory.db"`
	BookingsPath  string `env:"SPORTS_BOOKINGS_PATH,  default=events.csv"`
	HashPasswords bool   `env:"SPORTS_HASH_PASSWORDS, default=false"`

	Log   LogConfig
	Admin SeedAdmin
}

type LogConfig struct {
	Level  string `env:"SPORTS_LOG_LEVEL,  default=warn"`
	Pretty bool   `env:"SPORTS_LOG_PRETTY, default=true"`
}

// SeedAdmin is an account upserted as admin on start-up when both fields are
// set.
type SeedAdmin struct {
	Username string `env:"SPORTS_SEED_ADMIN_USER"`
	Password string `env:"SPORTS_SEED_ADMIN_PASSWORD"`
}

// Enabled reports whether a seed account was configured.
func (s SeedAdmin) Enabled() bool { return s.Username != "" && s.Password != "" }

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper fills a Config from l. Tests pass a map lookuper.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
