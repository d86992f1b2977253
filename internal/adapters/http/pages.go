package httpadapter

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/kirillkom/planetary-dem/internal/adapters/htmldoc"
	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
	"github.com/kirillkom/planetary-dem/internal/core/usecase"
)

const msgJobNotFound = "Job not found."

// index renders the upload page with help bands for the default values and
// any pending flash alert.
func (rt *Router) index(w http.ResponseWriter, r *http.Request) {
	doc, err := htmldoc.UploadPage()
	if err != nil {
		rt.pageFailed(w, r, err)
		return
	}
	controls, err := doc.UploadControls()
	if err != nil {
		rt.pageFailed(w, r, err)
		return
	}
	usecase.NewParameterFeedback(controls).Refresh()

	if f, ok := popFlash(w, r); ok {
		controls.Alerts.ShowAlert(f.alert())
		focusField(controls, f.Field)
	}
	renderHTML(w, r, http.StatusOK, doc)
}

func (rt *Router) jobPage(w http.ResponseWriter, r *http.Request) {
	job, err := rt.jobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if domain.IsKind(err, domain.ErrJobNotFound) {
			setFlash(w, flash{Severity: domain.SeverityError, Message: msgJobNotFound})
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		rt.pageFailed(w, r, err)
		return
	}

	doc, err := htmldoc.JobPage()
	if err != nil {
		rt.pageFailed(w, r, err)
		return
	}
	if err := doc.ShowJob(*job); err != nil {
		rt.pageFailed(w, r, err)
		return
	}
	if f, ok := popFlash(w, r); ok {
		doc.Alerts().ShowAlert(f.alert())
	}
	renderHTML(w, r, http.StatusOK, doc)
}

func focusField(controls ports.UploadControls, field domain.Field) {
	switch field {
	case domain.FieldFile:
		controls.File.Focus()
	case domain.FieldScaleFactor:
		controls.Scale.Focus()
	case domain.FieldSmoothing:
		controls.Smoothing.Focus()
	case domain.FieldElevationRange:
		controls.Elevation.Focus()
	}
}

func (rt *Router) pageFailed(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("page_render_failed", "request_id", requestIDFromContext(r.Context()), "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func renderHTML(w http.ResponseWriter, r *http.Request, status int, doc *htmldoc.Document) {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		slog.Error("page_render_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
