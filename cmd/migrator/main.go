package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

func main() {
	dsn := pflag.StringP("dsn", "d", "", "postgres connection string")
	dir := pflag.StringP("migrations", "m", "migrations", "migrations directory")
	pflag.Parse()

	if *dsn == "" {
		slog.Error("--dsn flag is required")
		os.Exit(2)
	}

	m, err := migrate.New("file://"+*dir, "pgx5://"+*dsn)
	if err != nil {
		slog.Error("failed to init migrations", "err", err)
		os.Exit(2)
	}
	m.Log = migrationLog{}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("schema is up to date")
	case err != nil:
		slog.Error("failed to apply migrations", "err", err)
		os.Exit(2)
	default:
		slog.Info("migrations applied")
	}
}

// migrationLog adapts slog to the migrate.Logger interface.
type migrationLog struct{}

func (migrationLog) Printf(format string, v ...any) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrationLog) Verbose() bool { return false }
