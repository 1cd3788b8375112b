package config

import (
	"flag"
	"os"
	"time"

	"github.com/andrejsk/placemark/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-m string   signing algorithm (HS256, HS384, HS512)
//	-t int      access token validity, minutes
//	-r int      revoked-token purge interval, minutes
//	-b int      bcrypt cost for password digests
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-m", "-t", "-r", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.Algorithm, "m", config.Algorithm, "token signing algorithm")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	revokedPurgeInterval := fs.Int("r", int(config.RevokedPurgeInterval.Minutes()), "revoked token purge interval (in minutes)")

	fs.IntVar(&config.BCryptCost, "b", config.BCryptCost, "bcrypt cost for password digests")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RevokedPurgeInterval = time.Duration(*revokedPurgeInterval) * time.Minute
}
