package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsTable = "schema_migrations"

// RunMigrations applies the embedded SQL migrations. With rollback set it
// reverts only the latest applied version.
func RunMigrations(ctx context.Context, dsn string, rollback bool) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose: open db: %w", err)
	}
	defer sqlDB.Close()
	return migrate(ctx, sqlDB, "postgres", rollback)
}

func migrate(ctx context.Context, sqlDB *sql.DB, dialect string, rollback bool) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(migrationsTable)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose: dialect: %w", err)
	}
	if rollback {
		if err := goose.DownContext(ctx, sqlDB, "migrations"); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		return nil
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
