// Package config loads the service configuration from YAML and the environment.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/fcv/porteria/internal/porteria/policy"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env      string `yaml:"env" env:"PORTERIA_ENV" env-default:"local" validate:"oneof=local dev prod"`
	Timezone string `yaml:"timezone" env:"PORTERIA_TIMEZONE" env-default:"America/Santiago"`

	HTTP struct {
		Addr string `yaml:"addr" env:"PORTERIA_HTTP_ADDR" env-default:":8080" validate:"required"`
	} `yaml:"http"`

	// GRPC serves grpc.health.v1 only.
	GRPC struct {
		Addr string `yaml:"addr" env:"PORTERIA_GRPC_ADDR" env-default:":9090" validate:"required"`
	} `yaml:"grpc"`

	Database struct {
		Driver string `yaml:"driver" env:"PORTERIA_DB_DRIVER" env-default:"sqlite" validate:"oneof=memory sqlite postgres"`
		Path   string `yaml:"path" env:"PORTERIA_DB_PATH" env-default:"./data/porteria.db"`
		DSN    string `yaml:"dsn" env:"PORTERIA_DB_DSN" validate:"required_if=Driver postgres"`
		// Seed loads the demo directory on start. Never enable in prod.
		Seed bool `yaml:"seed" env:"PORTERIA_DB_SEED"`
	} `yaml:"database"`

	// Redis caches directory lookups when URL is set.
	Redis struct {
		URL string        `yaml:"url" env:"PORTERIA_REDIS_URL"`
		TTL time.Duration `yaml:"ttl" env:"PORTERIA_REDIS_TTL" env-default:"1m" validate:"gt=0"`
	} `yaml:"redis"`

	// Schedule.Enforce switches from the always-within placeholder to the
	// course window checker.
	Schedule struct {
		Enforce bool `yaml:"enforce" env:"PORTERIA_SCHEDULE_ENFORCE"`
	} `yaml:"schedule"`

	AccessLog struct {
		// RetentionDays of 0 keeps every log.
		RetentionDays      int `yaml:"retention_days" env:"PORTERIA_ACCESS_LOG_RETENTION_DAYS" validate:"gte=0"`
		PruneIntervalHours int `yaml:"prune_interval_hours" env:"PORTERIA_ACCESS_LOG_PRUNE_INTERVAL_HOURS" env-default:"6" validate:"gte=0"`
	} `yaml:"access_log"`

	// Presets replaces the built-in preset table when non-empty.
	Presets map[string]policy.Preset `yaml:"presets"`
}

// Load reads path (YAML) and applies environment overrides. An empty path
// reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(&cfg, nil)
		return nil, fmt.Errorf("read config: %w; %s", err, desc)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = policy.Defaults()
	}
	return &cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) PresetTable() *policy.Table {
	return policy.NewTable(c.Presets)
}
