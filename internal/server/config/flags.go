package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-a string     HTTP bind address (e.g. ":8000")
//	-g string     gRPC health bind address
//	-d string     PostgreSQL DSN
//	-s string     token signing secret
//	-t int        access token TTL, minutes
//	-k int        bcrypt cost
//	-w duration   clock skew tolerance (e.g. "5s")
//	-l string     log level
//
// Only these flags are read out of os.Args, so the todoctl subcommand flags
// can share the same command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-k", "-w", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to listen on")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address and port to listen on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	ttl := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access token TTL (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.DurationVar(&config.ClockSkew, "w", config.ClockSkew, "clock skew tolerance for token expiry")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is minutes only, so a sub-minute TTL from another source survives
	// unless the flag is given explicitly.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
