// Package pipeline wires the trajectory stages end to end: marker text in,
// speed-profiled trajectory out. Every run recomputes from scratch; there
// is no shared state between invocations, so independent runs may execute
// concurrently.
package pipeline

import (
	"github.com/Alecbossard/PathPlanning/internal/config"
	"github.com/Alecbossard/PathPlanning/internal/monitoring"
	"github.com/Alecbossard/PathPlanning/internal/optimize"
	"github.com/Alecbossard/PathPlanning/internal/profile"
	"github.com/Alecbossard/PathPlanning/internal/track"
)

// Result bundles the outputs of one full pipeline run.
type Result struct {
	Markers       []track.BoundaryMarker  `json:"markers"`
	Centerline    []track.CenterlinePoint `json:"centerline"`
	ControlPoints []track.CenterlinePoint `json:"control_points"`
	Points        []profile.PathPoint     `json:"points"`
	Metadata      profile.TrackMetadata   `json:"metadata"`
	Optimizer     string                  `json:"optimizer"`
}

// Runner holds the configuration shared by every stage.
type Runner struct {
	Centerline track.CenterlineConfig
	Vehicle    profile.VehicleConfig
}

// NewRunner builds a Runner from tuning config. A nil config uses
// production defaults.
func NewRunner(tc *config.TuningConfig) *Runner {
	if tc == nil {
		tc = config.EmptyTuningConfig()
	}
	return &Runner{
		Centerline: track.CenterlineConfigFromTuning(tc),
		Vehicle:    profile.VehicleConfigFromTuning(tc),
	}
}

// Run executes the full pipeline over raw marker text. A nil optimizer
// profiles the raw centerline. Degenerate input degrades to an empty
// result rather than an error; the caller decides whether that is worth
// reporting.
func (r *Runner) Run(source string, opt optimize.Optimizer) *Result {
	res := &Result{Optimizer: "centerline"}
	res.Markers = track.ParseMarkers(source)
	res.Centerline = track.BuildCenterline(res.Markers, r.Centerline)

	res.ControlPoints = res.Centerline
	if opt != nil {
		res.Optimizer = opt.Name()
		res.ControlPoints = opt.Optimize(res.Centerline)
	}

	res.Points = profile.Sample(res.ControlPoints, r.Vehicle)
	res.Metadata = profile.Summarize(res.Points, r.Vehicle)

	monitoring.Logf("pipeline: %d markers -> %d centerline -> %d samples (%s)",
		len(res.Markers), len(res.Centerline), len(res.Points), res.Optimizer)
	return res
}
