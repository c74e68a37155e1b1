package track

import (
	"math"
	"sort"

	"github.com/Alecbossard/PathPlanning/internal/config"
)

// CenterlinePoint is the midpoint between a paired left/right cone, tagged
// with half the pairing distance as the local drivable half-width.
type CenterlinePoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	HalfWidth float64 `json:"half_width"`
}

// CenterlineConfig holds parameters for centerline construction.
type CenterlineConfig struct {
	MaxTrackWidth   float64 // maximum accepted left/right pairing distance (meters)
	MinPointSpacing float64 // minimum distance between accepted midpoints (meters)
}

// DefaultCenterlineConfig returns production-default centerline parameters.
func DefaultCenterlineConfig() CenterlineConfig {
	return CenterlineConfig{
		MaxTrackWidth:   config.DefaultMaxTrackWidth,
		MinPointSpacing: config.DefaultMinPointSpacing,
	}
}

// CenterlineConfigFromTuning derives centerline config from a TuningConfig.
func CenterlineConfigFromTuning(tc *config.TuningConfig) CenterlineConfig {
	return CenterlineConfig{
		MaxTrackWidth:   tc.GetMaxTrackWidth(),
		MinPointSpacing: tc.GetMinPointSpacing(),
	}
}

// candidate is a paired midpoint before overlap filtering.
type candidate struct {
	x, y     float64
	pairDist float64
}

func distSq(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// BuildCenterline pairs right-boundary markers with their nearest
// left-boundary marker, filters overlapping midpoints, and orders the
// survivors into a driving-direction loop. Returns nil when either
// boundary colour is entirely absent or fewer than three midpoints
// survive filtering; downstream stages treat an empty centerline as
// "nothing to compute", never as an error.
func BuildCenterline(markers []BoundaryMarker, cfg CenterlineConfig) []CenterlinePoint {
	var left, right []BoundaryMarker
	var start *BoundaryMarker
	for i := range markers {
		switch markers[i].Class {
		case LeftBoundary:
			left = append(left, markers[i])
		case RightBoundary:
			right = append(right, markers[i])
		case StartPosition:
			if start == nil {
				start = &markers[i]
			}
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	// Pairing: nearest blue cone for every yellow cone. Pairs wider than
	// the track-width threshold bridge a cone gap or a hairpin's far side
	// and are rejected outright.
	maxWidthSq := cfg.MaxTrackWidth * cfg.MaxTrackWidth
	candidates := make([]candidate, 0, len(right))
	for _, r := range right {
		bestIdx := -1
		bestSq := math.MaxFloat64
		for i := range left {
			if d := distSq(r.X, r.Y, left[i].X, left[i].Y); d < bestSq {
				bestSq = d
				bestIdx = i
			}
		}
		if bestIdx < 0 || bestSq > maxWidthSq {
			continue
		}
		candidates = append(candidates, candidate{
			x:        (r.X + left[bestIdx].X) / 2,
			y:        (r.Y + left[bestIdx].Y) / 2,
			pairDist: math.Sqrt(bestSq),
		})
	}

	// Overlap filtering: tightly-paired midpoints (tight corners, clean
	// sections) are better defined than wide ambiguous ones, so accept in
	// ascending pairing-distance order and drop anything inside the
	// spacing radius of an accepted point. Duplicated midpoints would
	// otherwise knot the ordered loop.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].pairDist < candidates[j].pairDist
	})
	minSpacingSq := cfg.MinPointSpacing * cfg.MinPointSpacing
	accepted := make([]CenterlinePoint, 0, len(candidates))
	for _, c := range candidates {
		ok := true
		for _, a := range accepted {
			if distSq(c.x, c.y, a.X, a.Y) < minSpacingSq {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, CenterlinePoint{X: c.x, Y: c.y, HalfWidth: c.pairDist / 2})
		}
	}
	if len(accepted) < 3 {
		return nil
	}

	return orderLoop(accepted, start, cfg.MaxTrackWidth)
}

// orderLoop walks the accepted midpoints into driving order using a greedy
// nearest-neighbour selection biased toward the current heading. The bias
// keeps the walk from zig-zagging across the track on non-convex layouts.
// The walk stops early when no remaining point is within the track-width
// threshold; the partial loop built so far is returned.
func orderLoop(points []CenterlinePoint, start *BoundaryMarker, maxStep float64) []CenterlinePoint {
	var sx, sy float64
	if start != nil {
		sx, sy = start.X, start.Y
	}

	remaining := make([]CenterlinePoint, len(points))
	copy(remaining, points)

	// Begin at the midpoint nearest the start marker (or the origin).
	first := 0
	firstSq := math.MaxFloat64
	for i, p := range remaining {
		if d := distSq(p.X, p.Y, sx, sy); d < firstSq {
			firstSq = d
			first = i
		}
	}

	ordered := make([]CenterlinePoint, 0, len(remaining))
	ordered = append(ordered, remaining[first])
	remaining = append(remaining[:first], remaining[first+1:]...)

	for len(remaining) > 0 {
		cur := ordered[len(ordered)-1]

		// Established heading from the two most recent accepted points.
		var hx, hy float64
		hasHeading := false
		if len(ordered) >= 2 {
			prev := ordered[len(ordered)-2]
			hx, hy = cur.X-prev.X, cur.Y-prev.Y
			if h := math.Hypot(hx, hy); h > 0 {
				hx, hy = hx/h, hy/h
				hasHeading = true
			}
		}

		bestIdx := -1
		bestCost := math.MaxFloat64
		bestDist := 0.0
		for i, p := range remaining {
			d := math.Sqrt(distSq(p.X, p.Y, cur.X, cur.Y))
			penalty := 1.0
			if hasHeading && d > 0 {
				// 1 at dead ahead, 5 at a full reversal.
				cos := (hx*(p.X-cur.X) + hy*(p.Y-cur.Y)) / d
				penalty = 1 + 2*(1-cos)
			}
			if cost := d * penalty; cost < bestCost {
				bestCost = cost
				bestIdx = i
				bestDist = d
			}
		}

		// Unreachable next point: the loop is incomplete, keep what we have.
		if bestDist > maxStep {
			break
		}

		ordered = append(ordered, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}
