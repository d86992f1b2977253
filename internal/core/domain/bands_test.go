package domain

import "testing"

func TestParameterBands(t *testing.T) {
	cases := []struct {
		name string
		band Band
		want string
	}{
		{"scale conservative", ScaleBand("0.49"), "Conservative"},
		{"scale balanced low edge", ScaleBand("0.5"), "Balanced"},
		{"scale balanced high edge", ScaleBand("1.5"), "Balanced"},
		{"scale enhanced", ScaleBand("1.51"), "Enhanced"},
		{"scale unparseable", ScaleBand("x"), ""},
		{"smoothing minimal", SmoothingBand("1"), "Minimal"},
		{"smoothing balanced", SmoothingBand("3"), "Balanced"},
		{"smoothing heavy", SmoothingBand("5"), "Heavy"},
		{"smoothing other", SmoothingBand("2"), ""},
		{"elevation small", ElevationBand("100"), "Small features"},
		{"elevation medium", ElevationBand("1000"), "Medium terrain"},
		{"elevation large", ElevationBand("1000.5"), "Large terrain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.band.Name != tc.want {
				t.Fatalf("expected band %q, got %q", tc.want, tc.band.Name)
			}
		})
	}
}

func TestBandTextFallsBackToLabel(t *testing.T) {
	if got := SmoothingBand("7").Text(); got != "Noise reduction strength" {
		t.Fatalf("unexpected generic text: %q", got)
	}
	want := "Maximum elevation value - Small features (rocks, craters)"
	if got := ElevationBand("50").Text(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
