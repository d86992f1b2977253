package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/kirillkom/planetary-dem/internal/config"
	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
	"github.com/kirillkom/planetary-dem/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg       config.Config
	submitter ports.JobSubmitter
	jobs      ports.JobReader
	storage   ports.ObjectStorage
	metrics   *metrics.HTTPServerMetrics
	api       *openapi3.T
}

type Option func(*Router)

func WithMetrics(m *metrics.HTTPServerMetrics) Option {
	return func(rt *Router) {
		rt.metrics = m
	}
}

// NewRouter validates the embedded API description before serving anything.
func NewRouter(
	cfg config.Config,
	submitter ports.JobSubmitter,
	jobs ports.JobReader,
	storage ports.ObjectStorage,
	opts ...Option,
) (*Router, error) {
	api, err := loadOpenAPI(context.Background())
	if err != nil {
		return nil, err
	}
	rt := &Router{
		cfg:       cfg,
		submitter: submitter,
		jobs:      jobs,
		storage:   storage,
		api:       api,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt, nil
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", rt.index)
	mux.HandleFunc("POST /upload", rt.upload)
	mux.HandleFunc("GET /jobs/{id}", rt.jobPage)
	mux.HandleFunc("GET /jobs/{id}/thumbnail", rt.thumbnail)
	mux.HandleFunc("GET /status/{id}", rt.status)
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /openapi.yaml", rt.openAPIDocument)
	mux.Handle("GET /static/", http.StripPrefix("/static/", rt.staticHandler()))
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIBackpressureMaxInFlight, time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Status      domain.JobStatus `json:"status"`
	Log         string           `json:"log"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at"`
}

func (rt *Router) status(w http.ResponseWriter, r *http.Request) {
	job, err := rt.jobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:      job.Status,
		Log:         job.ProcessingLog,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
	})
}

func (rt *Router) thumbnail(w http.ResponseWriter, r *http.Request) {
	job, err := rt.jobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if job.ThumbnailPath == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "thumbnail not available"})
		return
	}
	rc, err := rt.storage.Open(r.Context(), job.ThumbnailPath)
	if err != nil {
		writeError(w, r, fmt.Errorf("open thumbnail: %w", err))
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("thumbnail_write_failed", "job_id", job.ID, "error", err)
	}
}

func (rt *Router) staticHandler() http.Handler {
	embedded := http.FileServerFS(staticFS())
	dir := strings.TrimSpace(rt.cfg.StaticDir)
	if dir == "" {
		return embedded
	}
	// Build artifacts (webui.wasm, wasm_exec.js) live on disk under build/.
	disk := http.StripPrefix("build/", http.FileServerFS(os.DirFS(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "build/") {
			disk.ServeHTTP(w, r)
			return
		}
		embedded.ServeHTTP(w, r)
	})
}

func staticFS() fs.FS {
	sub, err := fs.Sub(staticAssets, "static")
	if err != nil {
		panic(fmt.Sprintf("static assets: %v", err))
	}
	return sub
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	message := err.Error()
	if verr, ok := domain.AsValidation(err); ok {
		message = verr.Message
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request_failed", "request_id", requestIDFromContext(r.Context()), "path", r.URL.Path, "error", err)
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
	}
	writeJSON(w, status, map[string]string{"error": message})
}
