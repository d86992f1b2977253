package domain

import (
	"math"
	"strconv"
	"strings"
)

// Field names the form controls, matching the posted field names.
type Field string

const (
	FieldFile           Field = "file"
	FieldScaleFactor    Field = "scale_factor"
	FieldSmoothing      Field = "smoothing"
	FieldElevationRange Field = "elevation_range"
)

const (
	MaxFileSizeBytes int64 = 16 * 1024 * 1024

	MinScaleFactor = 0.1
	MaxScaleFactor = 10.0

	MinElevationMeters = 10.0
	MaxElevationMeters = 10000.0

	DefaultScaleFactor    = 1.0
	DefaultSmoothing      = SmoothingBalanced
	DefaultElevationRange = 255.0
)

// Smoothing is the noise-reduction kernel size offered by the form.
type Smoothing int

const (
	SmoothingMinimal  Smoothing = 1
	SmoothingBalanced Smoothing = 3
	SmoothingHeavy    Smoothing = 5
)

func (s Smoothing) Valid() bool {
	switch s {
	case SmoothingMinimal, SmoothingBalanced, SmoothingHeavy:
		return true
	default:
		return false
	}
}

// FormParameters is the processing parameter set posted with the image.
type FormParameters struct {
	ScaleFactor        float64   `json:"scale_factor"`
	Smoothing          Smoothing `json:"smoothing"`
	MaxElevationMeters float64   `json:"elevation_range"`
}

// ParseNumber accepts a finite decimal number surrounded by optional
// whitespace.
func ParseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseSmoothing returns the smoothing level and whether it is one of the
// offered values.
func ParseSmoothing(raw string) (Smoothing, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	s := Smoothing(n)
	return s, s.Valid()
}
