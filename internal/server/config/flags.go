package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
)

// parseFlags applies command-line overrides.
//
//	-m string   environment: development, production or test
//	-p int      listen port
//	-d string   PostgreSQL URL
//	-o string   allowed CORS origin
//	-t duration request timeout (e.g. "30s")
//	-migrate    run migrations on start (use -migrate=false to skip)
//
// Only these flags are picked out of args so -c and -e, handled by the
// other layers, do not trip the parser.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-m", "-p", "-d", "-o", "-t", "-migrate"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Env, "m", config.Env, "environment")
	fs.IntVar(&config.Port, "p", config.Port, "port to listen on")
	fs.StringVar(&config.DatabaseURL, "d", config.DatabaseURL, "database URL")
	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "allowed CORS origin")
	fs.DurationVar(&config.RequestTimeout, "t", config.RequestTimeout, "request timeout")
	fs.BoolVar(&config.AutoMigrate, "migrate", config.AutoMigrate, "run migrations on start")

	return fs.Parse(args)
}
