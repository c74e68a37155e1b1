// Package optimize refines an ordered closed centerline into a racing
// line. Each optimizer transforms a control-point loop into a new loop
// that stays within a fixed fraction of each point's local half-width.
package optimize

import (
	"math"
	"math/rand"

	"github.com/Alecbossard/PathPlanning/internal/track"
)

// ContainmentFraction is the share of the local half-width an optimized
// point may stray from its centerline reference.
const ContainmentFraction = 0.9

// Optimizer transforms an ordered closed control-point loop into a refined
// loop. Implementations never mutate their input and return it (copied)
// unchanged when it is shorter than the algorithm's minimum viable size.
type Optimizer interface {
	Name() string
	Optimize(line []track.CenterlinePoint) []track.CenterlinePoint
}

// All returns every available optimizer, seeded from rng where an
// algorithm is stochastic. A nil rng leaves seeding to the optimizer.
func All(rng *rand.Rand) []Optimizer {
	return []Optimizer{
		NewLaplacian(),
		NewShortcutter(rng),
		NewBiharmonic(),
		NewHybrid(),
		NewSearchRefine(rng),
		NewHorizonPlanner(),
	}
}

// ByName returns the optimizer registered under name, or false.
func ByName(name string, rng *rand.Rand) (Optimizer, bool) {
	for _, o := range All(rng) {
		if o.Name() == name {
			return o, true
		}
	}
	return nil, false
}

// clone returns an independent copy of a control-point loop. Optimizers
// work on copies so callers keep an unmodified centerline for constraint
// reference and re-runs.
func clone(line []track.CenterlinePoint) []track.CenterlinePoint {
	out := make([]track.CenterlinePoint, len(line))
	copy(out, line)
	return out
}

// constrainToTrack projects p back onto the fraction×half-width disc
// around its centerline reference. The squared-distance comparison defers
// the square root to the projection case.
func constrainToTrack(p *track.CenterlinePoint, ref track.CenterlinePoint, fraction float64) {
	limit := ref.HalfWidth * fraction
	dx := p.X - ref.X
	dy := p.Y - ref.Y
	dSq := dx*dx + dy*dy
	if dSq <= limit*limit {
		return
	}
	d := math.Sqrt(dSq)
	p.X = ref.X + dx/d*limit
	p.Y = ref.Y + dy/d*limit
}

// targetFunc computes the position a point is pulled toward on one
// iteration. The six optimizers differ only in this formula and in their
// iteration/rate constants.
type targetFunc func(pts []track.CenterlinePoint, i int) (x, y float64)

// iterateAndConstrain runs the generic smoothing loop: move every point
// rate of the way toward its target, then project it back inside the
// width limit measured against ref at the same index. Neighbour lookups
// inside targets wrap, so pts is treated as a closed loop.
func iterateAndConstrain(pts, ref []track.CenterlinePoint, iterations int, rate, fraction float64, target targetFunc) {
	for it := 0; it < iterations; it++ {
		for i := range pts {
			tx, ty := target(pts, i)
			pts[i].X += (tx - pts[i].X) * rate
			pts[i].Y += (ty - pts[i].Y) * rate
			constrainToTrack(&pts[i], ref[i], fraction)
		}
	}
}

// wrap maps any index onto [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// neighborAverage is the Laplacian target: the mean of the two loop
// neighbours.
func neighborAverage(pts []track.CenterlinePoint, i int) (float64, float64) {
	n := len(pts)
	prev := pts[wrap(i-1, n)]
	next := pts[wrap(i+1, n)]
	return (prev.X + next.X) / 2, (prev.Y + next.Y) / 2
}

// quarticTarget is the biharmonic target: a 4-point finite-difference
// estimate of a smooth quartic interpolant through the loop neighbours.
func quarticTarget(pts []track.CenterlinePoint, i int) (float64, float64) {
	n := len(pts)
	p2m := pts[wrap(i-2, n)]
	p1m := pts[wrap(i-1, n)]
	p1p := pts[wrap(i+1, n)]
	p2p := pts[wrap(i+2, n)]
	x := (-p2m.X + 4*p1m.X + 4*p1p.X - p2p.X) / 6
	y := (-p2m.Y + 4*p1m.Y + 4*p1p.Y - p2p.Y) / 6
	return x, y
}
