package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/planetary-dem/internal/config"
	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

type submitterFake struct {
	err  error
	got  ports.UploadSubmission
	body []byte
}

func (f *submitterFake) Submit(_ context.Context, in ports.UploadSubmission) (*domain.Job, error) {
	f.got = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Job{
		ID:             "job-1",
		Filename:       in.Filename,
		Status:         domain.StatusProcessing,
		ScaleFactor:    1,
		Smoothing:      domain.SmoothingBalanced,
		ElevationRange: 255,
	}, nil
}

type jobsFake struct {
	jobs map[string]*domain.Job
	err  error
}

func (f jobsFake) GetByID(_ context.Context, id string) (*domain.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrJobNotFound, "get job", errors.New("id="+id))
	}
	return job, nil
}

type storageFake map[string][]byte

func (s storageFake) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	s[key] = raw
	return err
}

func (s storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := s[key]
	if !ok {
		return nil, errors.New("missing object")
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func newTestHandler(t *testing.T, cfg config.Config, submitter ports.JobSubmitter, jobs ports.JobReader, storage ports.ObjectStorage) http.Handler {
	t.Helper()
	if submitter == nil {
		submitter = &submitterFake{}
	}
	if jobs == nil {
		jobs = jobsFake{}
	}
	if storage == nil {
		storage = storageFake{}
	}
	rt, err := NewRouter(cfg, submitter, jobs, storage)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	return rt.Handler()
}

func completedJob() *domain.Job {
	created := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	completed := created.Add(3 * time.Minute)
	return &domain.Job{
		ID:             "job-1",
		Filename:       "moon.png",
		ThumbnailPath:  "job-1_thumb.png",
		ScaleFactor:    1,
		Smoothing:      domain.SmoothingBalanced,
		ElevationRange: 255,
		Status:         domain.StatusCompleted,
		Outputs:        map[string]string{"heightmap": "/files/job-1_heightmap.png"},
		ProcessingLog:  "done",
		CreatedAt:      created,
		CompletedAt:    &completed,
	}
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestIndexRendersUploadPageWithBands(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if ct := res.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
	body := res.Body.String()
	for _, want := range []string{
		`action="/upload"`,
		"Elevation scaling multiplier - <strong>Balanced</strong>",
		"Maximum elevation value - <strong>Medium terrain</strong>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestIndexShowsSanitizedFlashAndFocusesField(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)

	cookieRes := httptest.NewRecorder()
	setFlash(cookieRes, flash{
		Severity: domain.SeverityError,
		Message:  `Scale factor must be between 0.1 and 10.0.<script>alert(1)</script>`,
		Field:    domain.FieldScaleFactor,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookieRes.Result().Cookies() {
		req.AddCookie(c)
	}
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	body := res.Body.String()
	if !strings.Contains(body, domain.MsgScaleOutOfRange) {
		t.Fatalf("expected flash message in page")
	}
	if strings.Contains(body, "alert(1)") {
		t.Fatalf("expected script to be stripped from flash")
	}
	if !strings.Contains(body, `id="scale_factor" name="scale_factor" value="1.0" min="0.1" max="10" step="0.1" autofocus=""`) {
		t.Fatalf("expected scale control to receive focus:\n%s", body)
	}

	cleared := false
	for _, c := range res.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected flash cookie to be cleared")
	}
}

func TestStatusEndpoint(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, jobsFake{jobs: map[string]*domain.Job{"job-1": completedJob()}}, nil)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/status/job-1", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "completed" || payload["log"] != "done" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload["completed_at"] != "2026-10-18T12:03:00Z" {
		t.Fatalf("unexpected completed_at: %v", payload["completed_at"])
	}
}

func TestStatusReturns404ForUnknownJob(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/status/missing", nil))

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestJobPageRendersJob(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, jobsFake{jobs: map[string]*domain.Job{"job-1": completedJob()}}, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/jobs/job-1", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	body := res.Body.String()
	if !strings.Contains(body, `data-status="completed"`) || !strings.Contains(body, `href="/files/job-1_heightmap.png"`) {
		t.Fatalf("unexpected job page:\n%s", body)
	}
}

func TestJobPageRedirectsUnknownJob(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/jobs/missing", nil))

	if res.Code != http.StatusSeeOther || res.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", res.Code, res.Header().Get("Location"))
	}
}

func TestThumbnailServesStoredPNG(t *testing.T) {
	storage := storageFake{"job-1_thumb.png": []byte("png-bytes")}
	handler := newTestHandler(t, config.Config{}, nil, jobsFake{jobs: map[string]*domain.Job{"job-1": completedJob()}}, storage)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/jobs/job-1/thumbnail", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Header().Get("Content-Type") != "image/png" || res.Body.String() != "png-bytes" {
		t.Fatalf("unexpected thumbnail response: %q %q", res.Header().Get("Content-Type"), res.Body.String())
	}
}

func TestOpenAPIDocumentIsServed(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "/upload:") {
		t.Fatalf("expected upload path in document")
	}
	if res.Header().Get("X-API-Version") != "1.0.0" {
		t.Fatalf("expected api version header, got %q", res.Header().Get("X-API-Version"))
	}
}

func TestStaticAssetsAreServed(t *testing.T) {
	handler := newTestHandler(t, config.Config{}, nil, nil, nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "drag-active") {
		t.Fatalf("unexpected stylesheet")
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Kind: domain.ErrFileTooLarge}, http.StatusRequestEntityTooLarge},
		{&domain.ValidationError{Kind: domain.ErrUnsupportedFormat}, http.StatusUnsupportedMediaType},
		{&domain.ValidationError{Kind: domain.ErrScaleOutOfRange}, http.StatusBadRequest},
		{domain.WrapError(domain.ErrJobNotFound, "get", errors.New("x")), http.StatusNotFound},
		{domain.WrapError(domain.ErrTemporary, "publish", errors.New("x")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Fatalf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
