package optimize

import "github.com/Alecbossard/PathPlanning/internal/track"

// Laplacian shortens the loop by pulling every point toward the average
// of its neighbours. It produces the shortest-path-biased line and tends
// to cut corners as tightly as the width limit allows.
type Laplacian struct {
	Iterations int
	Rate       float64
}

// NewLaplacian returns a Laplacian smoother with production defaults.
func NewLaplacian() *Laplacian {
	return &Laplacian{Iterations: 20, Rate: 0.3}
}

func (l *Laplacian) Name() string { return "laplacian" }

// Optimize runs the fixed-budget neighbour-averaging smoother.
func (l *Laplacian) Optimize(line []track.CenterlinePoint) []track.CenterlinePoint {
	pts := clone(line)
	if len(pts) < 3 {
		return pts
	}
	iterateAndConstrain(pts, line, l.Iterations, l.Rate, ContainmentFraction, neighborAverage)
	return pts
}
