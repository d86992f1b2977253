package httpadapter

import (
	"net/http"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// uploadOutcome labels an upload result for metrics and logs.
func uploadOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case domain.IsKind(err, domain.ErrFileTooLarge):
		return "file_too_large"
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return "unsupported_format"
	case domain.IsKind(err, domain.ErrNoFileSelected):
		return "no_file_selected"
	case domain.IsKind(err, domain.ErrScaleOutOfRange):
		return "scale_out_of_range"
	case domain.IsKind(err, domain.ErrElevationOutOfRange):
		return "elevation_out_of_range"
	case domain.IsKind(err, domain.ErrSmoothingInvalid):
		return "smoothing_invalid"
	case domain.IsKind(err, domain.ErrTemporary):
		return "unavailable"
	default:
		return "error"
	}
}
