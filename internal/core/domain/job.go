package domain

import "time"

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one submitted image through the external DEM generator.
type Job struct {
	ID             string            `json:"id"`
	Filename       string            `json:"filename"`
	MimeType       string            `json:"mime_type"`
	StoragePath    string            `json:"storage_path"`
	ThumbnailPath  string            `json:"thumbnail_path,omitempty"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	ScaleFactor    float64           `json:"scale_factor"`
	Smoothing      Smoothing         `json:"smoothing"`
	ElevationRange float64           `json:"elevation_range"`
	Status         JobStatus         `json:"status"`
	Outputs        map[string]string `json:"outputs,omitempty"`
	ProcessingLog  string            `json:"processing_log,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}

// GenerationResult is what the DEM generator reports for a finished job.
type GenerationResult struct {
	Outputs map[string]string `json:"output_files"`
	Log     string            `json:"log"`
}
