package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// MsgUnreadableImage is shown when the upload passes the name and type rules
// but its content does not decode.
const MsgUnreadableImage = "Could not load image file. Please upload a valid PNG, JPEG, or TIFF image."

// SubmitJobUseCase accepts a posted upload form. It re-applies the page
// rules, because the page check is only advisory for a client that skips it.
type SubmitJobUseCase struct {
	repo      ports.JobRepository
	storage   ports.ObjectStorage
	queue     ports.MessageQueue
	inspector ports.ImageInspector
	now       func() time.Time
}

func NewSubmitJobUseCase(
	repo ports.JobRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	inspector ports.ImageInspector,
) *SubmitJobUseCase {
	return &SubmitJobUseCase{
		repo:      repo,
		storage:   storage,
		queue:     queue,
		inspector: inspector,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *SubmitJobUseCase) Submit(ctx context.Context, in ports.UploadSubmission) (*domain.Job, error) {
	if strings.TrimSpace(in.Filename) == "" || in.Body == nil {
		return nil, &domain.ValidationError{Kind: domain.ErrNoFileSelected, Field: domain.FieldFile, Message: domain.MsgNoFileSelected}
	}

	// The size is re-measured from the body below; the declared size only
	// lets oversized uploads fail before reading.
	sel := domain.FileSelection{Name: in.Filename, SizeBytes: in.SizeBytes, MimeType: in.MimeType}
	if err := domain.ValidateFile(sel); err != nil {
		return nil, err
	}
	params, err := domain.ValidateParameters(in.Parameters)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, domain.MaxFileSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}
	sel.SizeBytes = int64(len(data))
	if err := domain.ValidateFile(sel); err != nil {
		return nil, err
	}

	info, err := uc.inspector.Inspect(data)
	if err != nil {
		slog.Info("upload_undecodable", "filename", in.Filename, "error", err)
		return nil, &domain.ValidationError{Kind: domain.ErrUnsupportedFormat, Field: domain.FieldFile, Message: MsgUnreadableImage}
	}

	id := uuid.NewString()
	storageKey := id + "." + storageExtension(in.Filename, info.Format)
	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	thumbnailKey := id + "_thumb.png"
	if err := uc.saveThumbnail(ctx, thumbnailKey, data); err != nil {
		slog.Warn("thumbnail_failed", "job_id", id, "error", err)
		thumbnailKey = ""
	}

	now := uc.now()
	job := &domain.Job{
		ID:             id,
		Filename:       sanitizeFilename(in.Filename),
		MimeType:       in.MimeType,
		StoragePath:    storageKey,
		ThumbnailPath:  thumbnailKey,
		Width:          info.Width,
		Height:         info.Height,
		ScaleFactor:    params.ScaleFactor,
		Smoothing:      params.Smoothing,
		ElevationRange: params.MaxElevationMeters,
		Status:         domain.StatusProcessing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job record: %w", err)
	}

	if err := uc.queue.PublishJobSubmitted(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("publish job event: %w", err)
	}

	slog.Info("upload_accepted",
		"job_id", job.ID,
		"filename", job.Filename,
		"size", domain.FormatSize(sel.SizeBytes),
		"format", info.Format,
	)
	return job, nil
}

func (uc *SubmitJobUseCase) saveThumbnail(ctx context.Context, key string, data []byte) error {
	var buf bytes.Buffer
	if err := uc.inspector.Thumbnail(data, &buf); err != nil {
		return fmt.Errorf("render thumbnail: %w", err)
	}
	if err := uc.storage.Save(ctx, key, &buf); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}
	return nil
}

// storageExtension keeps the client's extension when it is one of the
// accepted ones and otherwise falls back to the decoded format.
func storageExtension(name, format string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "png", "jpg", "jpeg", "tif", "tiff":
		return ext
	}
	switch format {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	case "":
		return "bin"
	default:
		return format
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "image.bin"
	}
	return base
}
