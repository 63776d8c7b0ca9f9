package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-renderer/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SnapshotRepo reads stored resume snapshots. Content and profile are kept
// as JSONB documents shaped like the render request body.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// queryJSON runs a SQL that returns a single json value and unmarshals it.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, out interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (r *SnapshotRepo) LoadSnapshot(ctx context.Context, resumeID uuid.UUID) (*model.RenderRequest, error) {
	if r.pool == nil {
		return nil, errors.New("snapshot store not configured")
	}

	var req model.RenderRequest
	err := queryJSON(ctx, r.pool, &req, `SELECT jsonb_build_object(
			'content', r.content,
			'template', coalesce(r.template, ''),
			'profile', coalesce(p.data, '{}'::jsonb))
		FROM resumes r
		LEFT JOIN profiles p ON p.user_id = r.user_id
		WHERE r.id = $1
		LIMIT 1`, resumeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return &req, nil
}
