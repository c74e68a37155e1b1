package optimize

import "github.com/Alecbossard/PathPlanning/internal/track"

// Hybrid blends the Laplacian (shortest-path) and biharmonic
// (minimum-curvature) targets, trading a little extra length for a
// rounder line than either produces alone.
type Hybrid struct {
	Iterations      int
	Rate            float64
	LaplacianWeight float64
}

// NewHybrid returns a hybrid smoother with production defaults.
func NewHybrid() *Hybrid {
	return &Hybrid{Iterations: 100, Rate: 0.15, LaplacianWeight: 0.4}
}

func (h *Hybrid) Name() string { return "hybrid" }

// Optimize runs the blended smoothing loop.
func (h *Hybrid) Optimize(line []track.CenterlinePoint) []track.CenterlinePoint {
	pts := clone(line)
	if len(pts) < 3 {
		return pts
	}
	w := h.LaplacianWeight
	blend := func(pts []track.CenterlinePoint, i int) (float64, float64) {
		lx, ly := neighborAverage(pts, i)
		qx, qy := quarticTarget(pts, i)
		return w*lx + (1-w)*qx, w*ly + (1-w)*qy
	}
	iterateAndConstrain(pts, line, h.Iterations, h.Rate, ContainmentFraction, blend)
	return pts
}
