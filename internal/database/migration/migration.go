package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Dialect identifies the SQL flavour a schema is written for.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type migrationStep struct {
	Name string
	SQL  string
}

var postgresSteps = []migrationStep{
	{
		Name: "create_extension_unaccent",
		SQL:  `CREATE EXTENSION IF NOT EXISTS unaccent;`,
	},
	{
		Name: "create_table_notes",
		SQL: `CREATE TABLE IF NOT EXISTS notes (
  seq        BIGSERIAL   NOT NULL UNIQUE,
  id         UUID        PRIMARY KEY,
  title      TEXT,
  content    TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notes_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at DESC, seq DESC);`,
	},
}

// created_at holds Unix microseconds; rowid doubles as the insertion sequence.
var sqliteSteps = []migrationStep{
	{
		Name: "create_table_notes",
		SQL: `CREATE TABLE IF NOT EXISTS notes (
  id         TEXT    PRIMARY KEY,
  title      TEXT,
  content    TEXT,
  created_at INTEGER NOT NULL
);`,
	},
	{
		Name: "create_index_notes_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at DESC);`,
	},
}

var sentinelQueries = map[Dialect]string{
	Postgres: "SELECT to_regclass('public.notes') IS NOT NULL",
	SQLite:   "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'notes')",
}

func stepsFor(d Dialect) ([]migrationStep, error) {
	switch d {
	case Postgres:
		return postgresSteps, nil
	case SQLite:
		return sqliteSteps, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", d)
	}
}

// EnsureMigrated checks if the 'notes' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect Dialect, logger *slog.Logger) error {
	steps, err := stepsFor(dialect)
	if err != nil {
		return err
	}
	start := time.Now()
	log := logger.With("component", "database", "dialect", string(dialect))

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQueries[dialect]).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
