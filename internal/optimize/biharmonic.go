package optimize

import "github.com/Alecbossard/PathPlanning/internal/track"

// Biharmonic minimises curvature by pulling every point toward a 4-point
// quartic interpolant of its loop neighbours. Unlike the Laplacian it
// prefers smooth wide arcs over short chords.
type Biharmonic struct {
	Iterations int
	Rate       float64
}

// NewBiharmonic returns a biharmonic smoother with production defaults.
func NewBiharmonic() *Biharmonic {
	return &Biharmonic{Iterations: 200, Rate: 0.1}
}

func (b *Biharmonic) Name() string { return "biharmonic" }

// Optimize smooths the centerline itself.
func (b *Biharmonic) Optimize(line []track.CenterlinePoint) []track.CenterlinePoint {
	return b.OptimizeFrom(line, nil)
}

// OptimizeFrom smooths starting from an initial guess while still
// measuring the width constraint against the true centerline. This lets a
// shortcut path warm-start the smoother without loosening the bound on
// deviation from real track geometry. A nil or length-mismatched guess
// falls back to the centerline.
func (b *Biharmonic) OptimizeFrom(centerline, initial []track.CenterlinePoint) []track.CenterlinePoint {
	var pts []track.CenterlinePoint
	if len(initial) == len(centerline) && initial != nil {
		pts = clone(initial)
	} else {
		pts = clone(centerline)
	}
	if len(pts) < 3 {
		return pts
	}
	iterateAndConstrain(pts, centerline, b.Iterations, b.Rate, ContainmentFraction, quarticTarget)
	return pts
}
