// Package config loads server configuration from a YAML file or the
// environment.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	AllocationExact   = "exact"
	AllocationRounded = "rounded"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"sipilpro.db"`
	HTTPServer  `yaml:"http_server"`

	// AllocationMode picks how the daily wage is split across projects:
	// "exact" shares always sum to the daily wage, "rounded" rounds each
	// share on its own.
	AllocationMode string `yaml:"allocation_mode" env:"ALLOCATION_MODE" env-default:"exact"`
	DisableCache   bool   `yaml:"disable_cache" env:"DISABLE_CACHE"`

	// AggregationWorkers bounds the per-worker fan-out of payroll listings.
	AggregationWorkers int `yaml:"aggregation_workers" env:"AGGREGATION_WORKERS" env-default:"4"`

	Scheduler `yaml:"scheduler"`
	CORS      `yaml:"cors"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Scheduler struct {
	Enabled  bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"24h"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`
}

// Load reads path when set, the environment otherwise, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("env must be one of %s, %s, %s; got %q", EnvLocal, EnvDev, EnvProd, c.Env)
	}
	switch c.AllocationMode {
	case AllocationExact, AllocationRounded:
	default:
		return fmt.Errorf("allocation_mode must be %q or %q; got %q", AllocationExact, AllocationRounded, c.AllocationMode)
	}
	if c.AggregationWorkers < 1 {
		return fmt.Errorf("aggregation_workers must be at least 1; got %d", c.AggregationWorkers)
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive")
	}
	return nil
}

// Reconcile reports whether allocation shares must tie out to the daily wage.
func (c *Config) Reconcile() bool { return c.AllocationMode == AllocationExact }
