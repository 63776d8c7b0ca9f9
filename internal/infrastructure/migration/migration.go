package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range migrations() {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration. Statements must be idempotent;
// they run on every start.
type Migration struct {
	Name string
	SQL  string
}

func migrations() []Migration {
	return []Migration{
		{
			Name: "create_profiles",
			SQL: `
				CREATE TABLE IF NOT EXISTS profiles (
					user_id UUID PRIMARY KEY,
					data JSONB NOT NULL DEFAULT '{}'::jsonb,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				);`,
		},
		{
			Name: "create_resumes",
			SQL: `
				CREATE TABLE IF NOT EXISTS resumes (
					id UUID PRIMARY KEY,
					user_id UUID NOT NULL,
					title TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				);`,
		},
		{
			Name: "add_content_to_resumes",
			SQL: `
				ALTER TABLE resumes
				ADD COLUMN IF NOT EXISTS content JSONB NOT NULL DEFAULT '{}'::jsonb;`,
		},
		{
			Name: "add_template_to_resumes",
			SQL: `
				ALTER TABLE resumes
				ADD COLUMN IF NOT EXISTS template TEXT;`,
		},
		{
			Name: "create_resume_exports",
			SQL: `
				CREATE TABLE IF NOT EXISTS resume_exports (
					id UUID PRIMARY KEY,
					resume_id UUID,
					template TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL,
					html_path TEXT NOT NULL DEFAULT '',
					pdf_path TEXT NOT NULL DEFAULT '',
					error TEXT NOT NULL DEFAULT '',
					metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
					created_at TIMESTAMPTZ NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL
				);`,
		},
	}
}
