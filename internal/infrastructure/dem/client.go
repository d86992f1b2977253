package dem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/resilience"
)

const generatePath = "/v1/dem"

// maxImageBytes bounds how much of a stored image is buffered for retries.
const maxImageBytes = domain.MaxFileSizeBytes + 1

// Client calls the external DEM generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL string) *Client {
	return NewWithOptions(baseURL, Options{})
}

func NewWithOptions(baseURL string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

// Generate uploads the image with the job parameters and decodes the
// generator's report. The image is buffered so retries can resend it.
func (c *Client) Generate(ctx context.Context, job *domain.Job, image io.Reader) (domain.GenerationResult, error) {
	if job == nil {
		return domain.GenerationResult{}, fmt.Errorf("dem generate: nil job")
	}
	data, err := io.ReadAll(io.LimitReader(image, maxImageBytes))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("read stored image: %w", err)
	}
	if int64(len(data)) > domain.MaxFileSizeBytes {
		return domain.GenerationResult{}, domain.WrapError(domain.ErrFileTooLarge, "dem generate", fmt.Errorf("job=%s", job.ID))
	}

	var result domain.GenerationResult
	call := func(callCtx context.Context) error {
		result = domain.GenerationResult{}
		return c.postMultipart(callCtx, job, data, &result)
	}

	if c.executor != nil {
		err = c.executor.Execute(ctx, "dem.generate", call, classifyDEMError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.GenerationResult{}, wrapTemporaryIfNeeded("dem generate", err)
	}
	if result.Outputs == nil {
		result.Outputs = map[string]string{}
	}
	return result, nil
}

func (c *Client) postMultipart(ctx context.Context, job *domain.Job, image []byte, out *domain.GenerationResult) error {
	body, contentType, err := encodeRequest(job, image)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, body)
	if err != nil {
		return fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Job-Id", job.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dem generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  "generate",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode generate response: %w", err)
	}
	return nil
}

func encodeRequest(job *domain.Job, image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"job_id", job.ID},
		{"scale_factor", strconv.FormatFloat(job.ScaleFactor, 'f', -1, 64)},
		{"smoothing", strconv.Itoa(int(job.Smoothing))},
		{"elevation_range", strconv.FormatFloat(job.ElevationRange, 'f', -1, 64)},
	}
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field[0], err)
		}
	}

	name := filepath.Base(job.StoragePath)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
