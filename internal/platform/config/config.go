// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, jobs) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the batch tooling is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the Carlex batch tooling.
type Config struct {

	// Runtime environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) — job checkpoints
	RedisURL string `env:"REDIS_URL,required"`

	// BatchSize is the number of rows fetched or written per store
	// round trip. Kept small (50–500) to bound request size, not for
	// parallelism; jobs remain batch-sequential.
	BatchSize int `env:"BATCH_SIZE" envDefault:"200"`

	// StoreRPS caps store round trips per second between batches so a
	// long resolution run doesn't starve the shared database.
	StoreRPS float64 `env:"STORE_RPS" envDefault:"10"`

	// CheckpointTTLHours is how long a job checkpoint survives in Redis
	// before an interrupted run is considered abandoned.
	CheckpointTTLHours int `env:"CHECKPOINT_TTL_HOURS" envDefault:"48"`
}

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("config: BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}

	return cfg, nil
}

// IsDevelopment reports whether the tooling is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the tooling is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
