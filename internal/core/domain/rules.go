package domain

import "strings"

// User-facing messages for each rejection.
const (
	MsgFileTooLarge        = "File size exceeds 16MB limit. Please choose a smaller image."
	MsgUnsupportedFormat   = "Invalid file format. Please upload PNG, JPEG, or TIFF images only."
	MsgNoFileSelected      = "Please select an image file to process."
	MsgScaleOutOfRange     = "Scale factor must be between 0.1 and 10.0."
	MsgElevationOutOfRange = "Maximum elevation must be between 10 and 10,000 meters."
	MsgSmoothingInvalid    = "Smoothing must be 1, 3 or 5."
	MsgUnexpectedFault     = "An unexpected error occurred. Please refresh the page and try again."
)

var acceptedMimeTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/tiff": {},
	"image/tif":  {},
}

var acceptedExtensions = []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}

// FileRule pairs a predicate over a selection with its rejection.
type FileRule struct {
	Name    string
	Kind    error
	Message string
	Accept  func(FileSelection) bool
}

// FileRules is the ordered rule set; the first failing rule wins.
var FileRules = []FileRule{
	{
		Name:    "size",
		Kind:    ErrFileTooLarge,
		Message: MsgFileTooLarge,
		Accept: func(sel FileSelection) bool {
			return sel.SizeBytes <= MaxFileSizeBytes
		},
	},
	{
		Name:    "type",
		Kind:    ErrUnsupportedFormat,
		Message: MsgUnsupportedFormat,
		Accept: func(sel FileSelection) bool {
			return AcceptedMimeType(sel.MimeType) || AcceptedExtension(sel.Name)
		},
	},
}

// ValidateFile applies FileRules in order.
func ValidateFile(sel FileSelection) error {
	for _, rule := range FileRules {
		if !rule.Accept(sel) {
			return &ValidationError{Kind: rule.Kind, Field: FieldFile, Message: rule.Message}
		}
	}
	return nil
}

func AcceptedMimeType(mimeType string) bool {
	_, ok := acceptedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}

func AcceptedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range acceptedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// RawParameters holds the parameter controls' current text values.
type RawParameters struct {
	ScaleFactor    string
	Smoothing      string
	ElevationRange string
}

// ValidateScale returns the parsed scale factor or ScaleOutOfRange.
func ValidateScale(raw string) (float64, error) {
	v, ok := ParseNumber(raw)
	if !ok || v < MinScaleFactor || v > MaxScaleFactor {
		return 0, &ValidationError{Kind: ErrScaleOutOfRange, Field: FieldScaleFactor, Message: MsgScaleOutOfRange}
	}
	return v, nil
}

// ValidateElevation returns the parsed elevation or ElevationOutOfRange.
func ValidateElevation(raw string) (float64, error) {
	v, ok := ParseNumber(raw)
	if !ok || v < MinElevationMeters || v > MaxElevationMeters {
		return 0, &ValidationError{Kind: ErrElevationOutOfRange, Field: FieldElevationRange, Message: MsgElevationOutOfRange}
	}
	return v, nil
}

// ValidateParameters checks scale then elevation, and smoothing when it is
// present. The page only offers the three smoothing values, so the browser
// gate never fails on it; the upload endpoint does.
func ValidateParameters(raw RawParameters) (FormParameters, error) {
	scale, err := ValidateScale(raw.ScaleFactor)
	if err != nil {
		return FormParameters{}, err
	}
	elevation, err := ValidateElevation(raw.ElevationRange)
	if err != nil {
		return FormParameters{}, err
	}

	smoothing := DefaultSmoothing
	if strings.TrimSpace(raw.Smoothing) != "" {
		s, ok := ParseSmoothing(raw.Smoothing)
		if !ok {
			return FormParameters{}, &ValidationError{Kind: ErrSmoothingInvalid, Field: FieldSmoothing, Message: MsgSmoothingInvalid}
		}
		smoothing = s
	}

	return FormParameters{
		ScaleFactor:        scale,
		Smoothing:          smoothing,
		MaxElevationMeters: elevation,
	}, nil
}
