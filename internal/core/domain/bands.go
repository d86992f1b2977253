package domain

// Band is the advisory classification shown next to a parameter control.
// An empty Name means the value is outside every band and only the
// generic label is shown.
type Band struct {
	Label  string
	Name   string
	Detail string
}

const (
	scaleLabel     = "Elevation scaling multiplier"
	smoothingLabel = "Noise reduction strength"
	elevationLabel = "Maximum elevation value"
)

func (b Band) Text() string {
	if b.Name == "" {
		return b.Label
	}
	return b.Label + " - " + b.Name + " (" + b.Detail + ")"
}

// ScaleBand classifies a scale factor: <0.5 Conservative, <=1.5 Balanced,
// else Enhanced.
func ScaleBand(raw string) Band {
	v, ok := ParseNumber(raw)
	switch {
	case !ok:
		return Band{Label: scaleLabel}
	case v < 0.5:
		return Band{Label: scaleLabel, Name: "Conservative", Detail: "reduces apparent elevation"}
	case v <= 1.5:
		return Band{Label: scaleLabel, Name: "Balanced", Detail: "natural elevation range"}
	default:
		return Band{Label: scaleLabel, Name: "Enhanced", Detail: "amplifies elevation differences"}
	}
}

func SmoothingBand(raw string) Band {
	s, ok := ParseSmoothing(raw)
	if !ok {
		return Band{Label: smoothingLabel}
	}
	switch s {
	case SmoothingMinimal:
		return Band{Label: smoothingLabel, Name: "Minimal", Detail: "preserves fine details"}
	case SmoothingBalanced:
		return Band{Label: smoothingLabel, Name: "Balanced", Detail: "good for most images"}
	default:
		return Band{Label: smoothingLabel, Name: "Heavy", Detail: "removes noise but may blur details"}
	}
}

// ElevationBand classifies a maximum elevation: <=100 Small features,
// <=1000 Medium terrain, else Large terrain.
func ElevationBand(raw string) Band {
	v, ok := ParseNumber(raw)
	switch {
	case !ok:
		return Band{Label: elevationLabel}
	case v <= 100:
		return Band{Label: elevationLabel, Name: "Small features", Detail: "rocks, craters"}
	case v <= 1000:
		return Band{Label: elevationLabel, Name: "Medium terrain", Detail: "hills, valleys"}
	default:
		return Band{Label: elevationLabel, Name: "Large terrain", Detail: "mountains, major features"}
	}
}
