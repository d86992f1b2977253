package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

const (
	// formOverheadBytes leaves room for the parameter fields and multipart framing.
	formOverheadBytes = 1 << 20
	multipartMemory   = 8 << 20

	msgRequestTooLarge = "File is too large. Maximum size is 16MB."
	msgUploadAccepted  = "Image uploaded. DEM processing has started."
	msgServiceBusy     = "The processing service is temporarily unavailable. Please try again shortly."
	msgUploadFailed    = "Upload failed. Please try again."
)

func (rt *Router) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxFileSizeBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && isBodyTooLarge(err) {
		rt.rejectUpload(w, r, &domain.ValidationError{
			Kind:    domain.ErrFileTooLarge,
			Field:   domain.FieldFile,
			Message: msgRequestTooLarge,
		}, 0)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	in := ports.UploadSubmission{
		Parameters: domain.RawParameters{
			ScaleFactor:    r.FormValue(string(domain.FieldScaleFactor)),
			Smoothing:      r.FormValue(string(domain.FieldSmoothing)),
			ElevationRange: r.FormValue(string(domain.FieldElevationRange)),
		},
	}
	if file, header, err := r.FormFile(string(domain.FieldFile)); err == nil {
		defer file.Close()
		in.Filename = header.Filename
		in.MimeType = header.Header.Get("Content-Type")
		in.SizeBytes = header.Size
		in.Body = file
	}

	job, err := rt.submitter.Submit(r.Context(), in)
	if err != nil {
		rt.rejectUpload(w, r, err, in.SizeBytes)
		return
	}
	rt.recordUpload(nil, in.SizeBytes)

	if wantsJSON(r) {
		writeJSON(w, http.StatusAccepted, job)
		return
	}
	setFlash(w, flash{Severity: domain.SeveritySuccess, Message: msgUploadAccepted})
	http.Redirect(w, r, "/jobs/"+url.PathEscape(job.ID), http.StatusSeeOther)
}

func (rt *Router) rejectUpload(w http.ResponseWriter, r *http.Request, err error, sizeBytes int64) {
	rt.recordUpload(err, sizeBytes)
	slog.Info("upload_rejected",
		"request_id", requestIDFromContext(r.Context()),
		"outcome", uploadOutcome(err),
		"error", err,
	)

	if wantsJSON(r) {
		writeError(w, r, err)
		return
	}

	f := flash{Severity: domain.SeverityError}
	switch verr, ok := domain.AsValidation(err); {
	case ok:
		f.Message = verr.Message
		f.Field = verr.Field
	case domain.IsKind(err, domain.ErrTemporary):
		f.Message = msgServiceBusy
	default:
		slog.Error("upload_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		f.Message = msgUploadFailed
	}
	setFlash(w, f)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (rt *Router) recordUpload(err error, sizeBytes int64) {
	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, uploadOutcome(err), sizeBytes)
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
