package usecase

import (
	"github.com/kirillkom/planetary-dem/internal/core/domain"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

// ParameterFeedback keeps the advisory help text in step with the parameter
// controls. It never blocks and never reports errors.
type ParameterFeedback struct {
	controls ports.UploadControls
}

func NewParameterFeedback(controls ports.UploadControls) *ParameterFeedback {
	return &ParameterFeedback{controls: controls}
}

func (f *ParameterFeedback) OnScaleInput() {
	if f.controls.Scale == nil || f.controls.ScaleHelp == nil {
		return
	}
	f.controls.ScaleHelp.SetBand(domain.ScaleBand(f.controls.Scale.Value()))
}

func (f *ParameterFeedback) OnSmoothingChange() {
	if f.controls.Smoothing == nil || f.controls.SmoothingHelp == nil {
		return
	}
	f.controls.SmoothingHelp.SetBand(domain.SmoothingBand(f.controls.Smoothing.Value()))
}

func (f *ParameterFeedback) OnElevationInput() {
	if f.controls.Elevation == nil || f.controls.ElevationHelp == nil {
		return
	}
	f.controls.ElevationHelp.SetBand(domain.ElevationBand(f.controls.Elevation.Value()))
}

// Refresh classifies all three controls' current values, as on page load.
func (f *ParameterFeedback) Refresh() {
	f.OnScaleInput()
	f.OnSmoothingChange()
	f.OnElevationInput()
}
