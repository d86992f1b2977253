package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

var jobColumns = []string{
	"id", "filename", "mime_type", "storage_path", "thumbnail_path", "width", "height",
	"scale_factor", "smoothing", "elevation_range", "status", "output_files", "processing_log",
	"created_at", "updated_at", "completed_at",
}

func newRepoWithMock(t *testing.T) (*JobRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return NewJobRepository(db), mock, func() { _ = db.Close() }
}

func TestCreateInsertsJob(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	job := &domain.Job{
		ID:             "job-1",
		Filename:       "moon.png",
		MimeType:       "image/png",
		StoragePath:    "job-1.png",
		ScaleFactor:    1.5,
		Smoothing:      domain.SmoothingHeavy,
		ElevationRange: 500,
		Status:         domain.StatusProcessing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectExec("INSERT INTO processing_jobs").
		WithArgs("job-1", "moon.png", "image/png", "job-1.png", "", 0, 0, 1.5, 5, 500.0,
			string(domain.StatusProcessing), []byte("{}"), "", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDScansJob(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	created := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	completed := created.Add(time.Minute)
	rows := sqlmock.NewRows(jobColumns).AddRow(
		"job-1", "moon.png", "image/png", "job-1.png", "job-1_thumb.png", 640, 480,
		1.0, 3, 255.0, "completed", []byte(`{"dem":"job-1_dem.tif"}`), "done",
		created, completed, completed,
	)
	mock.ExpectQuery("SELECT id, filename, mime_type, storage_path").
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := repo.GetByID(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if job.Status != domain.StatusCompleted || job.Smoothing != domain.SmoothingBalanced {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.Outputs["dem"] != "job-1_dem.tif" {
		t.Fatalf("expected outputs to be decoded, got %v", job.Outputs)
	}
	if job.CompletedAt == nil || !job.CompletedAt.Equal(completed) {
		t.Fatalf("expected completed_at %v, got %v", completed, job.CompletedAt)
	}
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, filename, mime_type, storage_path").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE processing_jobs").
		WithArgs("missing", string(domain.StatusProcessing), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusProcessing, "")
	if !domain.IsKind(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveResultMarksCompleted(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE processing_jobs").
		WithArgs("job-1", string(domain.StatusCompleted), []byte(`{"dem":"job-1_dem.tif"}`), "log", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveResult(context.Background(), "job-1", domain.GenerationResult{
		Outputs: map[string]string{"dem": "job-1_dem.tif"},
		Log:     "log",
	})
	if err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
