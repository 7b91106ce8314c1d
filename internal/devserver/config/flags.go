package config

import (
	"flag"
	"os"

	"github.com/creatorlink/creatorlink/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   address and port to listen on
//	-dsn string postgres DSN (empty keeps users in memory)
//	-k string   JWT signing secret
//
// Everything else (Google, S3) comes from the JSON config: those values are
// deployment-shaped, not per-invocation.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-dsn", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "postgres DSN (empty for in-memory users)")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
