package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

type JobRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026101801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS processing_jobs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL DEFAULT '',
	storage_path TEXT NOT NULL,
	thumbnail_path TEXT NOT NULL DEFAULT '',
	width INTEGER NOT NULL DEFAULT 0,
	height INTEGER NOT NULL DEFAULT 0,
	scale_factor DOUBLE PRECISION NOT NULL DEFAULT 1.0,
	smoothing INTEGER NOT NULL DEFAULT 3,
	elevation_range DOUBLE PRECISION NOT NULL DEFAULT 255.0,
	status TEXT NOT NULL DEFAULT 'pending',
	output_files JSONB NOT NULL DEFAULT '{}'::jsonb,
	processing_log TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_processing_jobs_status ON processing_jobs(status);
CREATE INDEX IF NOT EXISTS idx_processing_jobs_created_at ON processing_jobs(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	outputsJSON, err := marshalOutputs(job.Outputs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO processing_jobs (
	id, filename, mime_type, storage_path, thumbnail_path, width, height,
	scale_factor, smoothing, elevation_range, status, output_files, processing_log, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		job.ID, job.Filename, job.MimeType, job.StoragePath, job.ThumbnailPath, job.Width, job.Height,
		job.ScaleFactor, int(job.Smoothing), job.ElevationRange, string(job.Status), outputsJSON,
		job.ProcessingLog, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, thumbnail_path, width, height,
	scale_factor, smoothing, elevation_range, status, output_files, processing_log,
	created_at, updated_at, completed_at
FROM processing_jobs
WHERE id = $1
`, id)

	var job domain.Job
	var smoothing int
	var status string
	var outputsRaw []byte
	var completedAt sql.NullTime

	err := row.Scan(
		&job.ID, &job.Filename, &job.MimeType, &job.StoragePath, &job.ThumbnailPath, &job.Width, &job.Height,
		&job.ScaleFactor, &smoothing, &job.ElevationRange, &status, &outputsRaw, &job.ProcessingLog,
		&job.CreatedAt, &job.UpdatedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrJobNotFound, "get job", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}

	if len(outputsRaw) > 0 {
		if err := json.Unmarshal(outputsRaw, &job.Outputs); err != nil {
			return nil, fmt.Errorf("unmarshal output files: %w", err)
		}
	}
	job.Smoothing = domain.Smoothing(smoothing)
	job.Status = domain.JobStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	return &job, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, processingLog string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE processing_jobs
SET status = $2, processing_log = $3, updated_at = $4
WHERE id = $1
`, id, string(status), processingLog, r.now())
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return ensureAffected(res, "update job status", id)
}

// SaveResult marks the job completed with the generator's outputs.
func (r *JobRepository) SaveResult(ctx context.Context, id string, result domain.GenerationResult) error {
	outputsJSON, err := marshalOutputs(result.Outputs)
	if err != nil {
		return err
	}
	now := r.now()
	res, err := r.db.ExecContext(ctx, `
UPDATE processing_jobs
SET status = $2, output_files = $3, processing_log = $4, updated_at = $5, completed_at = $5
WHERE id = $1
`, id, string(domain.StatusCompleted), outputsJSON, result.Log, now)
	if err != nil {
		return fmt.Errorf("save job result: %w", err)
	}
	return ensureAffected(res, "save job result", id)
}

func ensureAffected(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrJobNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}

func marshalOutputs(outputs map[string]string) ([]byte, error) {
	if outputs == nil {
		outputs = map[string]string{}
	}
	raw, err := json.Marshal(outputs)
	if err != nil {
		return nil, fmt.Errorf("marshal output files: %w", err)
	}
	return raw, nil
}
