package ports

import (
	"context"
	"io"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

// UploadSubmission is one posted upload form.
type UploadSubmission struct {
	Filename   string
	MimeType   string
	SizeBytes  int64
	Body       io.Reader
	Parameters domain.RawParameters
}

// JobSubmitter is the inbound contract for the upload endpoint.
type JobSubmitter interface {
	Submit(ctx context.Context, in UploadSubmission) (*domain.Job, error)
}

// JobReader is the inbound read model for job state.
type JobReader interface {
	GetByID(ctx context.Context, id string) (*domain.Job, error)
}

// JobProcessor is the inbound contract for asynchronous job processing.
type JobProcessor interface {
	ProcessByID(ctx context.Context, jobID string) error
}
