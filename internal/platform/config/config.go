// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, the configuration is read-only and passed to components by
constructor. The token secret and ttl are read once at startup and are not
hot-reloadable.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the ShopHub API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"production"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// TrustProxyHeaders takes the client address from X-Real-IP or
	// X-Forwarded-For. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath optionally points at an on-disk migrations directory.
	// Empty uses the migrations embedded in the binary.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis). Empty disables listing caches.
	RedisURL string `env:"REDIS_URL"`

	// Bearer token signing
	JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"1h"`

	// Password hashing
	BcryptCost  int `env:"BCRYPT_COST"  envDefault:"10"`
	HashWorkers int `env:"HASH_WORKERS" envDefault:"4"`

	// Media host (S3-compatible object storage)
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	MediaPublicURL string `env:"MEDIA_PUBLIC_URL"`

	// Cross-Origin Resource Sharing (comma-separated origins allowed outside development)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTExpiresIn <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.JWTExpiresIn))
	}
	if c.HashWorkers < 1 {
		errs = append(errs, fmt.Errorf("HASH_WORKERS must be at least 1, got %d", c.HashWorkers))
	}
	if c.IsProduction() && c.S3Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required in production"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode,
// which reflects any CORS origin. It must be selected explicitly.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the parsed EXTRA_ORIGINS list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// MediaEnabled reports whether an object storage bucket is configured.
func (c *Config) MediaEnabled() bool {
	return c.S3Bucket != ""
}
