package usecase

import "testing"

func TestParameterFeedbackRefresh(t *testing.T) {
	page := newPageFake()
	page.scale.value = "0.2"
	page.smoothing.value = "5"
	page.elevation.value = "5000"

	NewParameterFeedback(page.controls()).Refresh()

	if page.scaleHelp.band.Name != "Conservative" {
		t.Fatalf("expected Conservative, got %q", page.scaleHelp.band.Name)
	}
	if page.smoothingHelp.band.Name != "Heavy" {
		t.Fatalf("expected Heavy, got %q", page.smoothingHelp.band.Name)
	}
	if page.elevationHelp.band.Name != "Large terrain" {
		t.Fatalf("expected Large terrain, got %q", page.elevationHelp.band.Name)
	}
}

func TestParameterFeedbackToleratesMissingControls(t *testing.T) {
	page := newPageFake()
	controls := page.controls()
	controls.SmoothingHelp = nil
	controls.Elevation = nil

	feedback := NewParameterFeedback(controls)
	feedback.OnSmoothingChange()
	feedback.OnElevationInput()
	feedback.OnScaleInput()

	if page.scaleHelp.band.Name != "Balanced" {
		t.Fatalf("expected Balanced for default scale, got %q", page.scaleHelp.band.Name)
	}
}
