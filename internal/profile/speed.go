package profile

import "math"

// accelNoiseFloor snaps near-zero derived accelerations to exactly zero.
const accelNoiseFloor = 0.1

// coastBand is the acceleration band treated as coasting for display.
const coastBand = 0.5

// solveSpeedProfile assigns every sample a velocity consistent with the
// friction-circle vehicle model. The ceiling is the cornering speed the
// local curvature allows; repeated backward (braking) and forward
// (traction) passes then propagate longitudinal limits around the closed
// loop. Each pass only ever lowers velocities, so the iteration is a
// monotone fixed-point refinement under the ceiling.
func solveSpeedProfile(pts []PathPoint, cfg VehicleConfig) {
	n := len(pts)
	if n < 2 {
		return
	}

	maxGrip := cfg.FrictionCoefficient * cfg.Gravity

	// Curvature-limited ceiling. Near-zero curvature means a huge radius:
	// effectively uncapped by cornering, bounded by the global maximum.
	for i := range pts {
		v := cfg.MaxVelocity
		if pts[i].Curvature > curvatureEpsilon {
			if c := math.Sqrt(maxGrip / pts[i].Curvature); c < v {
				v = c
			}
		}
		pts[i].MaxSpeed = v
		pts[i].Velocity = v
	}

	gap := func(i int) float64 {
		return pts[i+1].Distance - pts[i].Distance
	}

	// Loop closure: start and finish share a speed. Equalizing to the
	// lower side keeps the passes monotone; raising either side would undo
	// a braking or traction cap.
	closeSeam := func() {
		if pts[0].Velocity < pts[n-1].Velocity {
			pts[n-1].Velocity = pts[0].Velocity
		} else {
			pts[0].Velocity = pts[n-1].Velocity
		}
	}

	for iter := 0; iter < cfg.SolverIterations; iter++ {
		closeSeam()

		// Backward pass: walking upstream, cap each sample at the fastest
		// speed from which the car can still brake down to the next
		// sample's speed within the friction circle.
		for i := n - 2; i >= 0; i-- {
			vNext := pts[i+1].Velocity
			brake := remainingAccel(vNext, pts[i+1].Curvature, maxGrip, cfg.MaxBraking)
			vMax := math.Sqrt(vNext*vNext + 2*brake*gap(i))
			if vMax < pts[i].Velocity {
				pts[i].Velocity = vMax
			}
		}

		closeSeam()

		// Forward pass: symmetric walk downstream under the traction limit.
		for i := 1; i < n; i++ {
			vPrev := pts[i-1].Velocity
			accel := remainingAccel(vPrev, pts[i-1].Curvature, maxGrip, cfg.MaxAcceleration)
			vMax := math.Sqrt(vPrev*vPrev + 2*accel*gap(i-1))
			if vMax < pts[i].Velocity {
				pts[i].Velocity = vMax
			}
		}

		closeSeam()
	}
}

// remainingAccel subtracts the lateral acceleration spent cornering at v
// from the friction-circle budget (in quadrature) and caps the remainder
// at the vehicle's longitudinal limit.
func remainingAccel(v, curvature, maxGrip, longLimit float64) float64 {
	lat := v * v * curvature
	if lat >= maxGrip {
		return 0
	}
	avail := math.Sqrt(maxGrip*maxGrip - lat*lat)
	if avail > longLimit {
		return longLimit
	}
	return avail
}

// deriveAcceleration computes per-sample longitudinal acceleration from
// consecutive velocities and assigns the display colour. The last sample
// copies the first so the closed loop stays continuous.
func deriveAcceleration(pts []PathPoint, cfg VehicleConfig) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n-1; i++ {
		d := pts[i+1].Distance - pts[i].Distance
		a := 0.0
		if d > 0 {
			v1 := pts[i].Velocity
			v2 := pts[i+1].Velocity
			a = (v2*v2 - v1*v1) / (2 * d)
		}
		if math.Abs(a) < accelNoiseFloor {
			a = 0
		}
		pts[i].Acceleration = a
		pts[i].Color = accelColor(a, cfg)
	}
	pts[n-1].Acceleration = pts[0].Acceleration
	pts[n-1].Color = pts[0].Color
}

// accelColor buckets a sample as braking, accelerating or coasting, with
// intensity scaled against the respective longitudinal limit.
func accelColor(a float64, cfg VehicleConfig) Color {
	switch {
	case a < -coastBand:
		t := math.Min(1, -a/cfg.MaxBraking)
		return Color{R: 0.5 + 0.5*t, G: 0.1, B: 0.1}
	case a > coastBand:
		t := math.Min(1, a/cfg.MaxAcceleration)
		return Color{R: 0.1, G: 0.5 + 0.5*t, B: 0.1}
	default:
		return Color{R: 0.85, G: 0.85, B: 0.3}
	}
}
