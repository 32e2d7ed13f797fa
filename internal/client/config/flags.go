package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     API base URL
//	-k string     hex field encryption key
//	-d string     path of the local SQLite file
//	-s duration   query stale time, e.g. 30s
//	-l string     log level
//
// Only these flags are taken from args, so -c/-config and anything meant for
// other components pass through untouched.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-d", "-s", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.EncryptionKey, "k", cfg.EncryptionKey, "field encryption key (hex)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database file")
	fs.DurationVar(&cfg.StaleTime, "s", cfg.StaleTime, "query stale time")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
