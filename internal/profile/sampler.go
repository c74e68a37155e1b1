// Package profile converts a control-point loop into a densely sampled
// trajectory with a physically consistent speed profile.
package profile

import (
	"math"

	"github.com/Alecbossard/PathPlanning/internal/config"
	"github.com/Alecbossard/PathPlanning/internal/track"
)

// curvatureEpsilon keeps the discrete curvature estimator finite on
// perfectly straight sections.
const curvatureEpsilon = 1e-9

// minSampleCount is the floor on resampled trajectory density.
const minSampleCount = 200

// samplesPerControlPoint scales trajectory density with track detail.
const samplesPerControlPoint = 8

// PathPoint is one densely resampled trajectory sample. A full lap is a
// closed sequence of these; the final sample is loop-adjacent to the
// first.
type PathPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	Yaw   float64 `json:"yaw"`   // heading from the outgoing tangent (radians)
	Slope float64 `json:"slope"` // pitch from the outgoing tangent (radians)

	Curvature float64 `json:"curvature"` // discrete turn angle over arc length (1/m)
	Distance  float64 `json:"dist"`      // cumulative planar arc length from sample 0 (m)
	HalfWidth float64 `json:"half_width"`

	MaxSpeed     float64 `json:"max_speed"` // curvature-limited speed ceiling (m/s)
	Velocity     float64 `json:"velocity"`  // solved speed (m/s)
	Acceleration float64 `json:"acceleration"`

	Color Color `json:"color"`
}

// Color is a display colour derived from acceleration sign and magnitude,
// consumed by external renderers.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// VehicleConfig holds the point-mass friction-circle vehicle model.
type VehicleConfig struct {
	Gravity             float64 // m/s²
	FrictionCoefficient float64
	MaxVelocity         float64 // m/s
	MaxAcceleration     float64 // m/s², traction limit
	MaxBraking          float64 // m/s², braking limit
	SolverIterations    int     // outer friction-circle passes
}

// DefaultVehicleConfig returns production-default vehicle parameters.
func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		Gravity:             config.DefaultGravity,
		FrictionCoefficient: config.DefaultFrictionCoefficient,
		MaxVelocity:         config.DefaultMaxVelocity,
		MaxAcceleration:     config.DefaultMaxAcceleration,
		MaxBraking:          config.DefaultMaxBraking,
		SolverIterations:    config.DefaultSolverIterations,
	}
}

// VehicleConfigFromTuning derives vehicle config from a TuningConfig.
func VehicleConfigFromTuning(tc *config.TuningConfig) VehicleConfig {
	return VehicleConfig{
		Gravity:             tc.GetGravity(),
		FrictionCoefficient: tc.GetFrictionCoefficient(),
		MaxVelocity:         tc.GetMaxVelocity(),
		MaxAcceleration:     tc.GetMaxAcceleration(),
		MaxBraking:          tc.GetMaxBraking(),
		SolverIterations:    tc.GetSolverIterations(),
	}
}

// Sample fits a closed interpolating curve through the control points,
// resamples it at uniform arc length, computes per-sample geometry, and
// solves the friction-circle speed profile. Fewer than three control
// points yield an empty trajectory.
func Sample(line []track.CenterlinePoint, cfg VehicleConfig) []PathPoint {
	if len(line) < 3 {
		return nil
	}

	count := minSampleCount
	if c := samplesPerControlPoint * len(line); c > count {
		count = c
	}

	pts := resampleClosedCurve(line, count)
	computeGeometry(pts)
	solveSpeedProfile(pts, cfg)
	deriveAcceleration(pts, cfg)
	return pts
}

// catmullRom evaluates the uniform Catmull-Rom basis (tension 0.5) for one
// scalar channel. The same basis serves position and the auxiliary
// half-width channel, so every output sample inherits an interpolated
// local track width.
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// curveSample is one oversampled curve evaluation before arc-length
// normalisation.
type curveSample struct {
	x, y, halfWidth float64
}

// resampleClosedCurve oversamples the periodic Catmull-Rom spline through
// the loop, then picks count points at uniform arc-length spacing.
func resampleClosedCurve(line []track.CenterlinePoint, count int) []PathPoint {
	n := len(line)

	// Oversample well past the output density so the arc-length walk
	// interpolates between near-adjacent curve evaluations.
	over := 4 * count
	raw := make([]curveSample, over)
	for k := 0; k < over; k++ {
		u := float64(k) / float64(over) * float64(n) // curve parameter in [0, n)
		seg := int(u)
		t := u - float64(seg)
		p0 := line[wrapIdx(seg-1, n)]
		p1 := line[wrapIdx(seg, n)]
		p2 := line[wrapIdx(seg+1, n)]
		p3 := line[wrapIdx(seg+2, n)]
		raw[k] = curveSample{
			x:         catmullRom(p0.X, p1.X, p2.X, p3.X, t),
			y:         catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, t),
			halfWidth: catmullRom(p0.HalfWidth, p1.HalfWidth, p2.HalfWidth, p3.HalfWidth, t),
		}
	}

	// Cumulative arc length over the oversampled loop, including the
	// closing segment back to raw[0].
	cum := make([]float64, over+1)
	for k := 1; k <= over; k++ {
		prev := raw[k-1]
		cur := raw[k%over]
		cum[k] = cum[k-1] + math.Hypot(cur.x-prev.x, cur.y-prev.y)
	}
	total := cum[over]
	if total <= 0 {
		return nil
	}

	// Walk the table picking uniformly spaced arc-length targets.
	out := make([]PathPoint, count)
	seg := 0
	for i := 0; i < count; i++ {
		target := float64(i) / float64(count) * total
		for seg < over-1 && cum[seg+1] < target {
			seg++
		}
		segLen := cum[seg+1] - cum[seg]
		t := 0.0
		if segLen > 0 {
			t = (target - cum[seg]) / segLen
		}
		a := raw[seg]
		b := raw[(seg+1)%over]
		out[i] = PathPoint{
			X:         a.x + (b.x-a.x)*t,
			Y:         a.y + (b.y-a.y)*t,
			HalfWidth: a.halfWidth + (b.halfWidth-a.halfWidth)*t,
		}
	}
	return out
}

func wrapIdx(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// computeGeometry fills cumulative distance, curvature, yaw and slope for
// every sample. Tangent lookups wrap at the loop boundary.
func computeGeometry(pts []PathPoint) {
	n := len(pts)
	for i := 0; i < n; i++ {
		prev := pts[wrapIdx(i-1, n)]
		next := pts[wrapIdx(i+1, n)]

		inX, inY := pts[i].X-prev.X, pts[i].Y-prev.Y
		outX, outY := next.X-pts[i].X, next.Y-pts[i].Y
		inLen := math.Hypot(inX, inY)
		outLen := math.Hypot(outX, outY)

		turn := 0.0
		if inLen > 0 && outLen > 0 {
			cos := (inX*outX + inY*outY) / (inLen * outLen)
			cos = math.Max(-1, math.Min(1, cos))
			turn = math.Acos(cos)
		}
		pts[i].Curvature = turn / (0.5*(inLen+outLen) + curvatureEpsilon)
		pts[i].Yaw = math.Atan2(outY, outX)
		if outLen > 0 {
			pts[i].Slope = math.Atan2(next.Z-pts[i].Z, outLen)
		}

		if i > 0 {
			pts[i].Distance = pts[i-1].Distance + inLen
		}
	}
}
