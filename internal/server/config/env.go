package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment variables the original deployment used.
// Pointer fields stay nil when the variable is unset, so absent variables
// keep the values from earlier configuration layers.
type envConfig struct {
	EndpointAddrGRPC         *string `env:"GRPC_ADDRESS"`
	DatabaseDSN              *string `env:"DATABASE_DSN"`
	SecretKey                *string `env:"SECRET_KEY"`
	Algorithm                *string `env:"ALGORITHM"`
	AccessTokenExpireMinutes *int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RevokedPurgeMinutes      *int    `env:"REVOKED_PURGE_MINUTES"`
	BCryptCost               *int    `env:"BCRYPT_COST"`
}

// parseEnv overlays environment variables onto the Config.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.Algorithm != nil {
		config.Algorithm = *c.Algorithm
	}
	if c.AccessTokenExpireMinutes != nil {
		config.AccessTokenValidityDuration = time.Duration(*c.AccessTokenExpireMinutes) * time.Minute
	}
	if c.RevokedPurgeMinutes != nil {
		config.RevokedPurgeInterval = time.Duration(*c.RevokedPurgeMinutes) * time.Minute
	}
	if c.BCryptCost != nil {
		config.BCryptCost = *c.BCryptCost
	}
}
