package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Migrate aplica, cada uno en su transacción, los .sql de files que aún no figuran en
// schema_migrations. Devuelve cuántos aplicó.
func Migrate(ctx context.Context, pool *pgxpool.Pool, files fs.FS, log zerolog.Logger) (int, error) {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return 0, storeErr("create schema_migrations", err)
	}

	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return 0, fmt.Errorf("listar migraciones: %w", err)
	}
	slices.Sort(names)

	applied := 0
	for _, name := range names {
		var done bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&done); err != nil {
			return applied, storeErr("consultar migración", err)
		}
		if done {
			continue
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return applied, fmt.Errorf("leer %s: %w", name, err)
		}
		if err := applyMigration(ctx, pool, strings.TrimSuffix(name, ".sql"), name, string(body)); err != nil {
			return applied, err
		}
		log.Info().Str("migration", name).Msg("migración aplicada")
		applied++
	}
	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, label, name, body string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return storeErr("begin migration", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("migración %s: %w", label, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return storeErr("registrar migración", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit migration", err)
	}
	return nil
}
