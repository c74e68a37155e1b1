package profile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// lapTimeEpsilon guards the lap-time division on degenerate profiles.
const lapTimeEpsilon = 1e-9

// TrackMetadata summarises a finished trajectory. It is a pure reduction
// over the sample sequence with no lifecycle of its own.
type TrackMetadata struct {
	TotalLength   float64 `json:"total_length_m"`
	AverageSpeed  float64 `json:"average_speed_mps"`
	LapTime       float64 `json:"lap_time_s"`
	PeakLateralG  float64 `json:"peak_lateral_g"`
	PeakLongG     float64 `json:"peak_long_g"`
	MinLongG      float64 `json:"min_long_g"`
	SampleCount   int     `json:"sample_count"`
}

// Summarize reduces a trajectory to its aggregate scalars. An empty input
// yields a zeroed result rather than an error.
func Summarize(pts []PathPoint, cfg VehicleConfig) TrackMetadata {
	if len(pts) == 0 {
		return TrackMetadata{}
	}

	velocities := make([]float64, len(pts))
	lateralG := make([]float64, len(pts))
	longG := make([]float64, len(pts))
	for i, p := range pts {
		velocities[i] = p.Velocity
		lateralG[i] = p.Velocity * p.Velocity * p.Curvature / cfg.Gravity
		longG[i] = p.Acceleration / cfg.Gravity
	}

	total := pts[len(pts)-1].Distance
	avg := stat.Mean(velocities, nil)

	return TrackMetadata{
		TotalLength:  total,
		AverageSpeed: avg,
		LapTime:      total / (avg + lapTimeEpsilon),
		PeakLateralG: floats.Max(lateralG),
		PeakLongG:    floats.Max(longG),
		MinLongG:     floats.Min(longG),
		SampleCount:  len(pts),
	}
}
