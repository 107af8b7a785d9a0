package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/deppfellow/kringe-music/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// versionTable records the applied catalog schema version.
const versionTable = "kringe_schema_version"

// Migrate brings the PostgreSQL schema (users, catalog, feedback) to the
// latest embedded version. The news collection in MongoDB is schemaless
// and not versioned here.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("connect for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	scripts, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	if err := m.LoadMigrations(scripts); err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	to := int32(len(m.Migrations))

	if from == to {
		logger.Info().Int32("version", to).Msg("database schema up to date")
		return nil
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate from %d to %d: %w", from, to, err)
	}

	logger.Info().Int32("from", from).Int32("to", to).Msg("migrated database schema")
	return nil
}
