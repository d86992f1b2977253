package usecase

import (
	"log/slog"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// BusyLabel replaces the submit button text while the server works.
const BusyLabel = "Processing DEM..."

// FormSubmissionGate decides, synchronously, whether the native form
// submission may proceed.
type FormSubmissionGate struct {
	controls   ports.UploadControls
	controller *UploadController
	effects    ports.Effects
}

func NewFormSubmissionGate(controls ports.UploadControls, controller *UploadController, effects ports.Effects) *FormSubmissionGate {
	if effects == nil {
		effects = NopEffects{}
	}
	return &FormSubmissionGate{
		controls:   controls,
		controller: controller,
		effects:    effects,
	}
}

// OnSubmit returns nil when the submission may proceed. Otherwise the
// returned error is a *domain.ValidationError, the offending control has
// focus and the caller must cancel the submission.
func (g *FormSubmissionGate) OnSubmit() error {
	params, err := g.validate()
	if err != nil {
		verr, _ := domain.AsValidation(err)
		g.focus(verr.Field)
		g.controls.Alerts.ShowAlert(domain.ErrorAlert(domain.CategoryValidation, verr.Message))
		slog.Info("submission_blocked", "field", string(verr.Field), "error", err)
		return err
	}

	g.controller.enterSubmitting()
	g.controls.Submit.SetBusy(BusyLabel)
	g.controls.Status.InsertProcessingPanel()
	g.effects.SubmissionStarted()
	slog.Info("submission_started",
		"scale_factor", params.ScaleFactor,
		"smoothing", int(params.Smoothing),
		"elevation_range", params.MaxElevationMeters,
	)
	return nil
}

func (g *FormSubmissionGate) validate() (domain.FormParameters, error) {
	if len(g.controls.File.Files()) == 0 {
		return domain.FormParameters{}, &domain.ValidationError{
			Kind:    domain.ErrNoFileSelected,
			Field:   domain.FieldFile,
			Message: domain.MsgNoFileSelected,
		}
	}

	scale, err := domain.ValidateScale(g.controls.Scale.Value())
	if err != nil {
		return domain.FormParameters{}, err
	}
	elevation, err := domain.ValidateElevation(g.controls.Elevation.Value())
	if err != nil {
		return domain.FormParameters{}, err
	}

	smoothing := domain.DefaultSmoothing
	if g.controls.Smoothing != nil {
		if s, ok := domain.ParseSmoothing(g.controls.Smoothing.Value()); ok {
			smoothing = s
		}
	}

	return domain.FormParameters{
		ScaleFactor:        scale,
		Smoothing:          smoothing,
		MaxElevationMeters: elevation,
	}, nil
}

func (g *FormSubmissionGate) focus(field domain.Field) {
	switch field {
	case domain.FieldFile:
		g.controls.File.Focus()
	case domain.FieldScaleFactor:
		g.controls.Scale.Focus()
	case domain.FieldElevationRange:
		g.controls.Elevation.Focus()
	case domain.FieldSmoothing:
		if g.controls.Smoothing != nil {
			g.controls.Smoothing.Focus()
		}
	}
}
