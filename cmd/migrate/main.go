package main

import (
	"context"
	"fmt"
	"os"
	"time"

	pg "health-records-access/internal/adapters/storage/postgres"
	"health-records-access/internal/config"
	"health-records-access/internal/platform/logger"

	"github.com/spf13/pflag"
)

const usage = `usage: migrate [--config file] [--dsn dsn] <up|status>

  up      aplica el schema de access_grants (idempotente)
  status  dice si la tabla existe y cuántos grants tiene
`

func main() {
	fs := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("CONFIG_FILE"), "ruta al config YAML (opcional)")
	dsn := fs.String("dsn", "", "DSN de Postgres (pisa config y DB_DSN)")
	timeout := fs.Duration("timeout", 30*time.Second, "timeout total")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	log := logger.NewFromEnv().With(map[string]any{"cmd": "migrate"})

	if err := run(fs.Arg(0), *configPath, *dsn, *timeout, log); err != nil {
		log.Error("migrate failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func run(cmd, configPath, dsn string, timeout time.Duration, log logger.Logger) error {
	if dsn == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dsn = cfg.Postgres.DSN
	}
	if dsn == "" {
		return fmt.Errorf("no postgres DSN: use --dsn, DB_DSN or postgres.dsn in config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := pg.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	switch cmd {
	case "up":
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("schema applied", nil)
	case "status":
		exists, rows, err := pg.Status(ctx, db)
		if err != nil {
			return err
		}
		log.Info("schema status", map[string]any{"table_exists": exists, "grants": rows})
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
