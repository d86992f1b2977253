package htmldoc

import (
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

func TestShowJobFillsPage(t *testing.T) {
	doc, err := JobPage()
	if err != nil {
		t.Fatalf("JobPage() error = %v", err)
	}
	completed := time.Date(2026, 10, 18, 12, 5, 0, 0, time.UTC)
	job := domain.Job{
		ID:             "job-1",
		Filename:       "<moon>.png",
		ThumbnailPath:  "job-1_thumb.png",
		ScaleFactor:    1.5,
		Smoothing:      domain.SmoothingMinimal,
		ElevationRange: 800,
		Status:         domain.StatusCompleted,
		Outputs: map[string]string{
			"heightmap": "https://dem.example/job-1_heightmap.png",
			"dem":       "/files/job-1_dem.tif",
			"evil":      "javascript:alert(1)",
		},
		ProcessingLog: "done",
		CreatedAt:     completed.Add(-5 * time.Minute),
		CompletedAt:   &completed,
	}
	if err := doc.ShowJob(job); err != nil {
		t.Fatalf("ShowJob() error = %v", err)
	}

	page := doc.String()
	for _, want := range []string{
		"&lt;moon&gt;.png",
		`data-status="completed"`,
		"scale 1.5, smoothing 1, max elevation 800 m",
		"2026-10-18T12:05:00Z",
		`src="/jobs/job-1/thumbnail"`,
		`href="/files/job-1_dem.tif"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}
	if strings.Contains(page, "javascript:") {
		t.Fatalf("expected unsafe output link to be dropped")
	}
	if strings.Index(page, ">dem<") > strings.Index(page, ">heightmap<") {
		t.Fatalf("expected outputs sorted by name")
	}
}

func TestShowJobWithoutOutputs(t *testing.T) {
	doc, err := JobPage()
	if err != nil {
		t.Fatalf("JobPage() error = %v", err)
	}
	if err := doc.ShowJob(domain.Job{ID: "job-2", Status: domain.StatusProcessing}); err != nil {
		t.Fatalf("ShowJob() error = %v", err)
	}
	page := doc.String()
	if !strings.Contains(page, "No outputs yet.") {
		t.Fatalf("expected empty outputs placeholder")
	}
	if !strings.Contains(page, "hidden") {
		t.Fatalf("expected thumbnail to stay hidden")
	}
}
