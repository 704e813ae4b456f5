package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // database/sql driver used by goose
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"bookstore/internal/infrastructure/database/migrations"
)

// gooseUp applies every pending migration found in dir.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded schema migrations.
// goose works on database/sql, so it gets its own short-lived lib/pq handle
// instead of borrowing from the pgx pool.
func Migrate(ctx context.Context, cfg *DBConfig) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info().Msg("[DATABASE] migrations applied")
	return nil
}
