// pkg/db/migrate.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsDir is the directory inside the embedded filesystem holding the SQL files.
const MigrationsDir = "migrations"

// Migrate runs a goose command ("up", "down", "status", "version", ...) against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
