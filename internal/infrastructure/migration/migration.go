package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting database migrations")

	for _, m := range Migrations() {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		logger.Info("Migration completed", "name", m.Name)
	}

	logger.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration. Every statement is written
// to be safe to run again.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in the order they run.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_resumes_table",
			SQL: `
				CREATE TABLE IF NOT EXISTS resumes (
					id UUID PRIMARY KEY,
					document JSONB NOT NULL DEFAULT '{}'::jsonb,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				);
			`,
		},
		{
			Name: "add_owner_id_to_resumes",
			SQL: `
				ALTER TABLE resumes
				ADD COLUMN IF NOT EXISTS owner_id TEXT NOT NULL DEFAULT '';
			`,
		},
		{
			Name: "index_resumes_owner",
			SQL: `
				CREATE INDEX IF NOT EXISTS resumes_owner_updated_idx
				ON resumes (owner_id, updated_at DESC);
			`,
		},
	}
}
