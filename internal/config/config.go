// Package config loads the read handler's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Defaults for the parks SSO realm.
const (
	DefaultIssuer   = "https://oidc.gov.bc.ca/auth/realms/3l5nw6dk"
	DefaultCacheTTL = 10 * time.Minute
	jwksPath        = "/protocol/openid-connect/certs"
)

// ErrMissingTableName is returned when TABLE_NAME is unset.
var ErrMissingTableName = errors.New("TABLE_NAME is required")

// Config is read once at cold start and never modified.
type Config struct {
	TableName string
	Issuer    string
	JWKSURL   string
	CacheTTL  time.Duration
	LogLevel  slog.Level
}

// Load reads configuration using getenv, normally os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		TableName: getenv("TABLE_NAME"),
		Issuer:    getenv("SSO_ISSUER"),
		JWKSURL:   getenv("SSO_JWKSURI"),
		CacheTTL:  DefaultCacheTTL,
		LogLevel:  slog.LevelInfo,
	}

	if cfg.TableName == "" {
		return Config{}, ErrMissingTableName
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = strings.TrimSuffix(cfg.Issuer, "/") + jwksPath
	}

	if ttlStr := getenv("JWKS_CACHE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid JWKS_CACHE_TTL %q", ttlStr)
		}
		cfg.CacheTTL = ttl
	}

	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	return cfg, nil
}
