package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

type jobRepoFake struct {
	created     *domain.Job
	job         *domain.Job
	createErr   error
	getErr      error
	saveErr     error
	failSaveErr error
	statusCalls []statusCall
	result      *domain.GenerationResult
}

type statusCall struct {
	status domain.JobStatus
	log    string
}

func (f *jobRepoFake) Create(_ context.Context, job *domain.Job) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyJob := *job
	f.created = &copyJob
	return nil
}

func (f *jobRepoFake) GetByID(context.Context, string) (*domain.Job, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyJob := *f.job
	return &copyJob, nil
}

func (f *jobRepoFake) UpdateStatus(_ context.Context, _ string, status domain.JobStatus, processingLog string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, log: processingLog})
	if status == domain.StatusFailed && f.failSaveErr != nil {
		return f.failSaveErr
	}
	return nil
}

func (f *jobRepoFake) SaveResult(_ context.Context, _ string, result domain.GenerationResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.result = &result
	return nil
}

type storageFake struct {
	saved map[string]string
	err   error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[key] = string(raw)
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.saved[key]
	if !ok {
		return nil, errors.New("missing object " + key)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type queueFake struct {
	jobID string
	err   error
}

func (f *queueFake) PublishJobSubmitted(_ context.Context, jobID string) error {
	if f.err != nil {
		return f.err
	}
	f.jobID = jobID
	return nil
}

func (f *queueFake) SubscribeJobSubmitted(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

type inspectorFake struct {
	info     ports.ImageInfo
	err      error
	thumbErr error
}

func (f inspectorFake) Inspect([]byte) (ports.ImageInfo, error) {
	if f.err != nil {
		return ports.ImageInfo{}, f.err
	}
	return f.info, nil
}

func (f inspectorFake) Thumbnail(_ []byte, w io.Writer) error {
	if f.thumbErr != nil {
		return f.thumbErr
	}
	_, err := w.Write([]byte("thumb"))
	return err
}

func validSubmission(name, mimeType, body string) ports.UploadSubmission {
	return ports.UploadSubmission{
		Filename:  name,
		MimeType:  mimeType,
		SizeBytes: int64(len(body)),
		Body:      bytes.NewBufferString(body),
		Parameters: domain.RawParameters{
			ScaleFactor:    "1.0",
			Smoothing:      "3",
			ElevationRange: "255",
		},
	}
}

func TestSubmitStoresAndQueuesJob(t *testing.T) {
	repo := &jobRepoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewSubmitJobUseCase(repo, storage, queue, inspectorFake{info: ports.ImageInfo{Format: "png", Width: 4, Height: 3}})

	job, err := uc.Submit(context.Background(), validSubmission("lunar surface.png", "image/png", "pixels"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if job.Status != domain.StatusProcessing {
		t.Fatalf("expected status processing, got %s", job.Status)
	}
	if job.Filename != "lunar_surface.png" {
		t.Fatalf("expected sanitized filename, got %q", job.Filename)
	}
	if !strings.HasSuffix(job.StoragePath, ".png") || storage.saved[job.StoragePath] != "pixels" {
		t.Fatalf("unexpected stored object %q: %v", job.StoragePath, storage.saved)
	}
	if storage.saved[job.ThumbnailPath] != "thumb" {
		t.Fatalf("expected thumbnail to be stored, got %v", storage.saved)
	}
	if repo.created == nil || repo.created.Width != 4 || repo.created.Smoothing != domain.SmoothingBalanced {
		t.Fatalf("unexpected job record: %+v", repo.created)
	}
	if queue.jobID != job.ID {
		t.Fatalf("expected queued job id %s, got %s", job.ID, queue.jobID)
	}
}

func TestSubmitRejectsWithPageRules(t *testing.T) {
	cases := []struct {
		name string
		in   ports.UploadSubmission
		kind error
	}{
		{"missing file", ports.UploadSubmission{}, domain.ErrNoFileSelected},
		{"bmp", validSubmission("photo.bmp", "image/bmp", "x"), domain.ErrUnsupportedFormat},
		{"declared too large", func() ports.UploadSubmission {
			in := validSubmission("big.png", "image/png", "x")
			in.SizeBytes = domain.MaxFileSizeBytes + 1
			return in
		}(), domain.ErrFileTooLarge},
		{"scale", func() ports.UploadSubmission {
			in := validSubmission("a.png", "image/png", "x")
			in.Parameters.ScaleFactor = "10.01"
			return in
		}(), domain.ErrScaleOutOfRange},
		{"elevation", func() ports.UploadSubmission {
			in := validSubmission("a.png", "image/png", "x")
			in.Parameters.ElevationRange = "9.99"
			return in
		}(), domain.ErrElevationOutOfRange},
		{"smoothing", func() ports.UploadSubmission {
			in := validSubmission("a.png", "image/png", "x")
			in.Parameters.Smoothing = "2"
			return in
		}(), domain.ErrSmoothingInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			queue := &queueFake{}
			uc := NewSubmitJobUseCase(&jobRepoFake{}, &storageFake{}, queue, inspectorFake{})
			_, err := uc.Submit(context.Background(), tc.in)
			if !domain.IsKind(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
			if queue.jobID != "" {
				t.Fatalf("rejected upload must not be queued")
			}
		})
	}
}

func TestSubmitMeasuresBodyInsteadOfTrustingDeclaredSize(t *testing.T) {
	in := validSubmission("big.tif", "image/tiff", "")
	in.Body = io.LimitReader(zeroReader{}, domain.MaxFileSizeBytes+10)
	in.SizeBytes = 1

	uc := NewSubmitJobUseCase(&jobRepoFake{}, &storageFake{}, &queueFake{}, inspectorFake{})
	_, err := uc.Submit(context.Background(), in)
	if !domain.IsKind(err, domain.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestSubmitRejectsUndecodableContent(t *testing.T) {
	uc := NewSubmitJobUseCase(&jobRepoFake{}, &storageFake{}, &queueFake{}, inspectorFake{err: errors.New("unknown format")})
	_, err := uc.Submit(context.Background(), validSubmission("fake.png", "image/png", "not an image"))
	verr, ok := domain.AsValidation(err)
	if !ok || verr.Message != MsgUnreadableImage {
		t.Fatalf("expected unreadable image rejection, got %v", err)
	}
}

func TestSubmitUsesDecodedFormatWhenNameHasNoExtension(t *testing.T) {
	storage := &storageFake{}
	uc := NewSubmitJobUseCase(&jobRepoFake{}, storage, &queueFake{}, inspectorFake{info: ports.ImageInfo{Format: "jpeg"}})
	job, err := uc.Submit(context.Background(), validSubmission("capture", "image/jpeg", "jpegdata"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !strings.HasSuffix(job.StoragePath, ".jpg") {
		t.Fatalf("expected .jpg storage key, got %q", job.StoragePath)
	}
}

func TestSubmitContinuesWithoutThumbnail(t *testing.T) {
	uc := NewSubmitJobUseCase(&jobRepoFake{}, &storageFake{}, &queueFake{}, inspectorFake{thumbErr: errors.New("decode")})
	job, err := uc.Submit(context.Background(), validSubmission("a.png", "image/png", "x"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if job.ThumbnailPath != "" {
		t.Fatalf("expected empty thumbnail path, got %q", job.ThumbnailPath)
	}
}

func TestSubmitQueueError(t *testing.T) {
	uc := NewSubmitJobUseCase(&jobRepoFake{}, &storageFake{}, &queueFake{err: errors.New("queue down")}, inspectorFake{})
	_, err := uc.Submit(context.Background(), validSubmission("a.png", "image/png", "x"))
	if err == nil || !strings.Contains(err.Error(), "publish job event") {
		t.Fatalf("expected publish error, got %v", err)
	}
}
