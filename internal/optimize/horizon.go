package optimize

import (
	"math"

	"github.com/Alecbossard/PathPlanning/internal/track"
)

// HorizonPlanner simulates a sensor-limited online planner. It smooths a
// short lookahead window, commits only the window's second point, then
// advances and replans. The resulting line is deliberately myopic: it
// cannot set up for corners beyond its horizon.
type HorizonPlanner struct {
	Lookahead        int     // window size beyond the committed point
	Iterations       int     // smoothing iterations per window
	Rate             float64 // smoothing rate per iteration
	Fraction         float64 // tighter width bound than the offline optimizers
	CloseLoopSnapDst float64 // final-to-first snap distance for loop closure
}

// NewHorizonPlanner returns a local planner with production defaults.
func NewHorizonPlanner() *HorizonPlanner {
	return &HorizonPlanner{
		Lookahead:        5,
		Iterations:       15,
		Rate:             0.3,
		Fraction:         0.85,
		CloseLoopSnapDst: 5.0,
	}
}

func (h *HorizonPlanner) Name() string { return "horizon" }

// Optimize walks the centerline committing one point per replanning
// cycle. Requires at least Lookahead+1 control points.
func (h *HorizonPlanner) Optimize(line []track.CenterlinePoint) []track.CenterlinePoint {
	n := len(line)
	if n < h.Lookahead+1 {
		return clone(line)
	}

	result := make([]track.CenterlinePoint, 0, n)
	result = append(result, line[0])

	for step := 1; step < n; step++ {
		// Window: where the car already is, plus the next Lookahead
		// centerline points (wrapping past the finish line).
		win := make([]track.CenterlinePoint, 0, h.Lookahead+1)
		refs := make([]track.CenterlinePoint, 0, h.Lookahead+1)
		win = append(win, result[step-1])
		refs = append(refs, line[step-1])
		for k := 0; k < h.Lookahead; k++ {
			idx := wrap(step+k, n)
			win = append(win, line[idx])
			refs = append(refs, line[idx])
		}

		h.smoothWindow(win, refs)

		// Commit only the immediate next point; the rest of the locally
		// optimized window is discarded and replanned next cycle.
		result = append(result, win[1])
	}

	// Snap-close the loop when the planner ends near where it started.
	first, last := result[0], result[len(result)-1]
	if math.Hypot(last.X-first.X, last.Y-first.Y) < h.CloseLoopSnapDst {
		result[len(result)-1].X = first.X
		result[len(result)-1].Y = first.Y
	}
	return result
}

// smoothWindow runs neighbour-averaging smoothing over the window
// interior. The first point is pinned (the car is already there); the
// last has no forward neighbour and stays put.
func (h *HorizonPlanner) smoothWindow(win, refs []track.CenterlinePoint) {
	for it := 0; it < h.Iterations; it++ {
		for i := 1; i < len(win)-1; i++ {
			tx := (win[i-1].X + win[i+1].X) / 2
			ty := (win[i-1].Y + win[i+1].Y) / 2
			win[i].X += (tx - win[i].X) * h.Rate
			win[i].Y += (ty - win[i].Y) * h.Rate
			constrainToTrack(&win[i], refs[i], h.Fraction)
		}
	}
}
