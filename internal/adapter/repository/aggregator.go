package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cv-generator/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// queryJSON runs a SQL that returns a single json value and unmarshals it into dst.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, dst interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// ProfileRepo aggregates the personal_info, experience and education tables
// into one snapshot. It only reads.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) LoadProfile(ctx context.Context) (domain.ProfileSnapshot, error) {
	var snap domain.ProfileSnapshot

	err := queryJSON(ctx, r.pool, &snap.PersonalInfo, `SELECT to_jsonb(p) FROM personal_info p ORDER BY p.id LIMIT 1`)
	if errors.Is(err, pgx.ErrNoRows) {
		return snap, domain.ErrNoProfile
	}
	if err != nil {
		return snap, fmt.Errorf("load personal_info: %w", err)
	}

	if err := queryJSON(ctx, r.pool, &snap.Experience,
		`SELECT coalesce(json_agg(row_to_json(e) ORDER BY e.sort_order, e.id), '[]') FROM experience e`); err != nil {
		return snap, fmt.Errorf("load experience: %w", err)
	}
	if err := queryJSON(ctx, r.pool, &snap.Education,
		`SELECT coalesce(json_agg(row_to_json(ed) ORDER BY ed.sort_order, ed.id), '[]') FROM education ed`); err != nil {
		return snap, fmt.Errorf("load education: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return snap, err
	}
	return snap, nil
}
