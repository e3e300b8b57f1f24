// Command migrate runs goose against the embedded schema migrations.
//
//	migrate [-d postgres://...] [-c config.json] [-e .env] <command> [args]
//
// Commands are goose's: up, up-by-one, up-to N, down, down-to N, redo,
// reset, status, version.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/dmitrijs2005/jobtracker/internal/server"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

// flags of the config layers that consume a following value
var valueFlags = []string{"-m", "-p", "-d", "-o", "-t", "-c", "-config", "-e", "-env-file"}

func main() {

	args := os.Args[1:]

	command := flagx.Positional(args, valueFlags)
	if len(command) == 0 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-d database-url] <up|down|status|version|reset|...> [args]")
		os.Exit(2)
	}

	cfg, err := config.Load(args)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := server.OpenDB(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.Goose(context.Background(), db, command[0], command[1:]...); err != nil {
		log.Printf("migrate %s: %v", command[0], err)
		db.Close()
		os.Exit(1)
	}

}
