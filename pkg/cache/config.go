// Package cache provides the Redis client and JSON key/value helpers used for short-lived state.
package cache

import (
	"crypto/tls"
	"fmt"

	"medspace-api/pkg/config"
)

// RedisConfig holds the connection settings derived from the application config.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      *tls.Config
}

// NewRedisConfig builds connection settings, loading the client certificate when TLS is enabled.
func NewRedisConfig(cfg *config.Config) (*RedisConfig, error) {
	rc := &RedisConfig{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	if !cfg.Redis.TLSEnabled {
		return rc, nil
	}

	rc.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.Redis.TLSCertFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.Redis.TLSCertFile, cfg.Redis.TLSCertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate: %v", err)
		}
		rc.TLS.Certificates = []tls.Certificate{cert}
	}
	return rc, nil
}
