package optimize

import (
	"math/rand"
	"time"

	"github.com/Alecbossard/PathPlanning/internal/track"
)

// Shortcutter searches for straight chords that stay on track. Each trial
// picks a random anchor and a random forward jump, validates the chord
// against every intermediate point's width limit, and on success
// overwrites the intermediates with their positions along the chord. A
// final smoothing pass rounds off the polygonal corners the cuts leave.
//
// The random source is injected so a fixed seed reproduces the same line.
type Shortcutter struct {
	Trials           int
	MinJump, MaxJump int // forward jump range in control-point indices, inclusive
	SmoothIterations int
	SmoothRate       float64

	rng *rand.Rand
}

// NewShortcutter returns a shortcutter with production defaults. A nil
// rng is replaced with a time-seeded source.
func NewShortcutter(rng *rand.Rand) *Shortcutter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shortcutter{
		Trials:           6000,
		MinJump:          2,
		MaxJump:          51,
		SmoothIterations: 60,
		SmoothRate:       0.3,
		rng:              rng,
	}
}

func (s *Shortcutter) Name() string { return "shortcut" }

// Optimize runs the stochastic chord search followed by smoothing.
func (s *Shortcutter) Optimize(line []track.CenterlinePoint) []track.CenterlinePoint {
	pts := clone(line)
	n := len(pts)
	if n < 3 {
		return pts
	}

	for trial := 0; trial < s.Trials; trial++ {
		a := s.rng.Intn(n)
		jump := s.MinJump + s.rng.Intn(s.MaxJump-s.MinJump+1)
		if jump >= n {
			continue
		}
		b := wrap(a+jump, n)

		if !s.chordOnTrack(pts, line, a, b, jump) {
			continue
		}

		// Commit: every intermediate moves to its linear position on the chord.
		for k := 1; k < jump; k++ {
			t := float64(k) / float64(jump)
			i := wrap(a+k, n)
			pts[i].X = pts[a].X + (pts[b].X-pts[a].X)*t
			pts[i].Y = pts[a].Y + (pts[b].Y-pts[a].Y)*t
		}
	}

	iterateAndConstrain(pts, line, s.SmoothIterations, s.SmoothRate, ContainmentFraction, neighborAverage)
	return pts
}

// chordOnTrack samples the straight chord from pts[a] to pts[b] at every
// intermediate control-point index and checks the sample against that
// index's width limit around the centerline reference.
func (s *Shortcutter) chordOnTrack(pts, ref []track.CenterlinePoint, a, b, jump int) bool {
	n := len(pts)
	ax, ay := pts[a].X, pts[a].Y
	bx, by := pts[b].X, pts[b].Y
	for k := 1; k < jump; k++ {
		t := float64(k) / float64(jump)
		x := ax + (bx-ax)*t
		y := ay + (by-ay)*t
		r := ref[wrap(a+k, n)]
		limit := r.HalfWidth * ContainmentFraction
		dx := x - r.X
		dy := y - r.Y
		if dx*dx+dy*dy > limit*limit {
			return false
		}
	}
	return true
}
