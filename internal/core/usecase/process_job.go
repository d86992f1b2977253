package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// ProcessJobUseCase hands a stored upload to the DEM generator and records
// the outcome.
type ProcessJobUseCase struct {
	repo      ports.JobRepository
	storage   ports.ObjectStorage
	generator ports.ElevationModelGenerator
}

func NewProcessJobUseCase(
	repo ports.JobRepository,
	storage ports.ObjectStorage,
	generator ports.ElevationModelGenerator,
) *ProcessJobUseCase {
	return &ProcessJobUseCase{
		repo:      repo,
		storage:   storage,
		generator: generator,
	}
}

func (uc *ProcessJobUseCase) ProcessByID(ctx context.Context, jobID string) error {
	job, err := uc.repo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("fetch job by id: %w", err)
	}
	if job.Status == domain.StatusCompleted {
		slog.Info("job_already_completed", "job_id", jobID)
		return nil
	}

	if err := uc.markStatus(ctx, jobID, domain.StatusProcessing, "Starting DEM processing..."); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.generate(ctx, job)
	if err != nil {
		if failErr := uc.markFailed(ctx, jobID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResult(ctx, jobID, result); err != nil {
		if failErr := uc.markFailed(ctx, jobID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save generation result: %w", err)
	}

	slog.Info("job_completed", "job_id", jobID, "outputs", len(result.Outputs))
	return nil
}

func (uc *ProcessJobUseCase) generate(ctx context.Context, job *domain.Job) (domain.GenerationResult, error) {
	image, err := uc.storage.Open(ctx, job.StoragePath)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("open stored image: %w", err)
	}
	defer image.Close()

	result, err := uc.generator.Generate(ctx, job, image)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate elevation model: %w", err)
	}
	return result, nil
}

func (uc *ProcessJobUseCase) markStatus(ctx context.Context, jobID string, status domain.JobStatus, processingLog string) error {
	return uc.repo.UpdateStatus(ctx, jobID, status, processingLog)
}

func (uc *ProcessJobUseCase) markFailed(ctx context.Context, jobID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	slog.Error("job_failed", "job_id", jobID, "error", processErr)
	return uc.markStatus(ctx, jobID, domain.StatusFailed, "Error: "+processErr.Error())
}
