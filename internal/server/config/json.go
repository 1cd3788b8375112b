package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/andrejsk/placemark/internal/flagx"
	"github.com/andrejsk/placemark/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files; present fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	Algorithm                   string          `json:"algorithm"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	RevokedPurgeInterval        *timex.Duration `json:"revoked_purge_interval"`
	BCryptCost                  int             `json:"bcrypt_cost"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; without
// them no JSON file is loaded. Absent fields keep their current values.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.Algorithm != "" {
		config.Algorithm = c.Algorithm
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RevokedPurgeInterval != nil {
		config.RevokedPurgeInterval = time.Duration(c.RevokedPurgeInterval.Duration)
	}
	if c.BCryptCost != 0 {
		config.BCryptCost = c.BCryptCost
	}
}
