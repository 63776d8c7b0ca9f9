package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"resume-renderer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var ErrNotFound = errors.New("not found")

// ExportsRepo stores export jobs in resume_exports. Without a pool it keeps
// them in process memory, which is enough for a single-instance deployment.
type ExportsRepo struct {
	pool *pgxpool.Pool

	mu   sync.RWMutex
	jobs map[uuid.UUID]domain.ExportJob
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool, jobs: map[uuid.UUID]domain.ExportJob{}}
}

func (r *ExportsRepo) Save(ctx context.Context, j *domain.ExportJob) error {
	if r.pool == nil {
		r.mu.Lock()
		r.jobs[j.ID] = snapshotJob(j)
		r.mu.Unlock()
		return nil
	}

	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return fmt.Errorf("marshal export metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resume_exports (id, resume_id, template, status, html_path, pdf_path, error, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET template = EXCLUDED.template, status = EXCLUDED.status, html_path = EXCLUDED.html_path, pdf_path = EXCLUDED.pdf_path, error = EXCLUDED.error, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.ResumeID, j.Template, string(j.Status), j.HTMLPath, j.PDFPath, j.Error, metaB, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert export %s: %w", j.ID, err)
	}
	return nil
}

func (r *ExportsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	if r.pool == nil {
		r.mu.RLock()
		j, ok := r.jobs[id]
		r.mu.RUnlock()
		if !ok {
			return nil, ErrNotFound
		}
		return &j, nil
	}

	var (
		j      domain.ExportJob
		status string
		metaB  []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, resume_id, template, status, html_path, pdf_path, error, metadata, created_at, updated_at
		FROM resume_exports WHERE id = $1`, id).
		Scan(&j.ID, &j.ResumeID, &j.Template, &status, &j.HTMLPath, &j.PDFPath, &j.Error, &metaB, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get export %s: %w", id, err)
	}
	j.Status = domain.ExportStatus(status)
	if len(metaB) > 0 {
		if err := json.Unmarshal(metaB, &j.Metadata); err != nil {
			return nil, fmt.Errorf("decode export metadata: %w", err)
		}
	}
	return &j, nil
}

// snapshotJob copies the job so later mutation by the processor does not
// race with readers of the in-memory store.
func snapshotJob(j *domain.ExportJob) domain.ExportJob {
	c := *j
	c.Request = nil
	if j.Metadata != nil {
		c.Metadata = make(map[string]interface{}, len(j.Metadata))
		for k, v := range j.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
