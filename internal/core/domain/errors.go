package domain

import (
	"errors"
	"fmt"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrTemporary    = errors.New("temporary failure")
)

// Validation kinds surfaced to the user. All are recoverable by correcting
// the input.
var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFormat   = errors.New("unsupported format")
	ErrNoFileSelected      = errors.New("no file selected")
	ErrScaleOutOfRange     = errors.New("scale factor out of range")
	ErrElevationOutOfRange = errors.New("elevation out of range")
	ErrSmoothingInvalid    = errors.New("smoothing invalid")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ValidationError is a rejected rule: the kind, the control that caused it
// and the message shown in the alert banner.
type ValidationError struct {
	Kind    error
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Kind, ErrInvalidInput}
}

// AsValidation extracts the first ValidationError in err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
