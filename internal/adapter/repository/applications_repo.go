package repository

import (
	"context"

	"cv-generator/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ApplicationsRepo persists the history of generation runs. A nil pool
// turns Save into a no-op.
type ApplicationsRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationsRepo(pool *pgxpool.Pool) *ApplicationsRepo {
	return &ApplicationsRepo{pool: pool}
}

func (r *ApplicationsRepo) Save(ctx context.Context, a *domain.ApplicationRecord) error {
	if r == nil || r.pool == nil {
		return nil
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO job_applications (id, company_name, position, job_description, job_source, cv_path, cover_letter_en_path, cover_letter_zh_path, merged_path, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET company_name = EXCLUDED.company_name, position = EXCLUDED.position, cv_path = EXCLUDED.cv_path, cover_letter_en_path = EXCLUDED.cover_letter_en_path, cover_letter_zh_path = EXCLUDED.cover_letter_zh_path, merged_path = EXCLUDED.merged_path, status = EXCLUDED.status`,
		a.ID, a.CompanyName, a.Position, a.JobDescription, a.JobSource,
		nullIfEmpty(a.CVPath), nullIfEmpty(a.CoverLetterENPath), nullIfEmpty(a.CoverLetterZHPath), nullIfEmpty(a.MergedPath),
		a.Status, a.CreatedAt)
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
