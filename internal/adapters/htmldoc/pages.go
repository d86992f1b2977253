package htmldoc

import (
	"embed"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/net/html/atom"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

//go:embed pages/*.html
var pages embed.FS

const (
	uploadPage = "pages/upload.html"
	jobPage    = "pages/job.html"
)

// UploadPage returns a fresh copy of the upload page.
func UploadPage() (*Document, error) {
	return load(uploadPage)
}

// JobPage returns a fresh copy of the job page.
func JobPage() (*Document, error) {
	return load(jobPage)
}

func load(name string) (*Document, error) {
	f, err := pages.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open page %s: %w", name, err)
	}
	defer f.Close()
	return Parse(f)
}

// ShowJob fills the job page with job state.
func (d *Document) ShowJob(job domain.Job) error {
	fields := map[string]string{
		"job-id":       job.ID,
		"job-filename": job.Filename,
		"job-status":   string(job.Status),
		"job-parameters": fmt.Sprintf("scale %s, smoothing %d, max elevation %s m",
			strconv.FormatFloat(job.ScaleFactor, 'f', -1, 64),
			int(job.Smoothing),
			strconv.FormatFloat(job.ElevationRange, 'f', -1, 64)),
		"job-created": job.CreatedAt.UTC().Format(time.RFC3339),
		"job-log":     job.ProcessingLog,
	}
	if job.CompletedAt != nil {
		fields["job-completed"] = job.CompletedAt.UTC().Format(time.RFC3339)
	}
	for id, text := range fields {
		if err := d.SetText(id, text); err != nil {
			return fmt.Errorf("job page: %w", err)
		}
	}
	if err := d.SetAttr("job-status", "data-status", string(job.Status)); err != nil {
		return fmt.Errorf("job page: %w", err)
	}

	if job.ThumbnailPath != "" {
		thumb := d.ByID("job-thumbnail")
		if thumb == nil {
			return fmt.Errorf("job page: element #job-thumbnail not found")
		}
		setAttr(thumb, "src", "/jobs/"+url.PathEscape(job.ID)+"/thumbnail")
		removeAttr(thumb, "hidden")
	}

	list := d.ByID("job-outputs")
	if list == nil {
		return fmt.Errorf("job page: element #job-outputs not found")
	}
	clearChildren(list)
	names := make([]string, 0, len(job.Outputs))
	for name := range job.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		href, ok := safeHref(job.Outputs[name])
		if !ok {
			continue
		}
		link := appendChildren(element(atom.A, "href", href, "class", "download-item"), textNode(name))
		list.AppendChild(appendChildren(element(atom.Li), link))
	}
	if list.FirstChild == nil {
		list.AppendChild(appendChildren(element(atom.Li, "class", "text-muted"), textNode("No outputs yet.")))
	}
	return nil
}

// safeHref admits relative and http(s) links reported by the generator.
func safeHref(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return "", false
	}
	switch u.Scheme {
	case "", "http", "https":
		return u.String(), true
	default:
		return "", false
	}
}
