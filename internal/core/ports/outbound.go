package ports

import (
	"context"
	"io"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

// JobRepository persists and reads job state.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, processingLog string) error
	SaveResult(ctx context.Context, id string, result domain.GenerationResult) error
}

// ObjectStorage stores uploaded images and thumbnails.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes job submission events.
type MessageQueue interface {
	PublishJobSubmitted(ctx context.Context, jobID string) error
	SubscribeJobSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// ImageInfo describes decoded image content.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// ImageInspector checks that uploaded bytes really are a supported image and
// renders its thumbnail.
type ImageInspector interface {
	Inspect(data []byte) (ImageInfo, error)
	Thumbnail(data []byte, w io.Writer) error
}

// ElevationModelGenerator is the external DEM generation service.
type ElevationModelGenerator interface {
	Generate(ctx context.Context, job *domain.Job, image io.Reader) (domain.GenerationResult, error)
}
