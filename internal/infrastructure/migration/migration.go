package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists every migration in application order. Each one is
// idempotent.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_personal_info", Up: execStatement(createPersonalInfo)},
		{Name: "create_experience", Up: execStatement(createExperience)},
		{Name: "create_education", Up: execStatement(createEducation)},
		{Name: "create_job_applications", Up: execStatement(createJobApplications)},
		{Name: "add_job_source_to_job_applications", Up: execStatement(addJobSource)},
	}
}

func execStatement(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}

const createPersonalInfo = `
	CREATE TABLE IF NOT EXISTS personal_info (
		id SERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		preferred_name TEXT,
		title TEXT,
		phone TEXT,
		email TEXT,
		location TEXT,
		willing_to_relocate TEXT,
		portfolio TEXT,
		behance_portfolio TEXT,
		github TEXT,
		linkedin TEXT,
		languages JSONB DEFAULT '[]'::jsonb,
		summary TEXT,
		design_philosophy TEXT,
		skills JSONB DEFAULT '{}'::jsonb,
		professional_attributes JSONB DEFAULT '[]'::jsonb,
		"references" TEXT
	);
`

const createExperience = `
	CREATE TABLE IF NOT EXISTS experience (
		id SERIAL PRIMARY KEY,
		sort_order INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT,
		period_start TEXT,
		period_end TEXT,
		responsibilities JSONB DEFAULT '[]'::jsonb,
		highlights JSONB DEFAULT '[]'::jsonb
	);
`

const createEducation = `
	CREATE TABLE IF NOT EXISTS education (
		id SERIAL PRIMARY KEY,
		sort_order INTEGER NOT NULL DEFAULT 0,
		degree TEXT NOT NULL,
		specialization TEXT,
		institution TEXT NOT NULL,
		location TEXT,
		period TEXT,
		highlights JSONB DEFAULT '[]'::jsonb
	);
`

const createJobApplications = `
	CREATE TABLE IF NOT EXISTS job_applications (
		id UUID PRIMARY KEY,
		company_name TEXT,
		position TEXT,
		job_description TEXT,
		cv_path TEXT,
		cover_letter_en_path TEXT,
		cover_letter_zh_path TEXT,
		merged_path TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// job_source was added after the first deployments of job_applications.
const addJobSource = `
	ALTER TABLE job_applications
	ADD COLUMN IF NOT EXISTS job_source TEXT DEFAULT 'unknown';
`
