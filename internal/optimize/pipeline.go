package optimize

import (
	"math/rand"

	"github.com/Alecbossard/PathPlanning/internal/track"
)

// SearchRefine chains the stochastic shortcutter into the biharmonic
// smoother: the shortcut pass finds the topological racing line, the
// biharmonic pass rounds it into a minimum-curvature one. Constraints
// remain measured against the true centerline throughout. This is the
// highest-quality and most expensive optimizer.
type SearchRefine struct {
	Search *Shortcutter
	Refine *Biharmonic
}

// NewSearchRefine returns the composite pipeline with production
// defaults, seeding the search stage from rng.
func NewSearchRefine(rng *rand.Rand) *SearchRefine {
	return &SearchRefine{
		Search: NewShortcutter(rng),
		Refine: NewBiharmonic(),
	}
}

func (p *SearchRefine) Name() string { return "search-refine" }

// Optimize runs search then refine.
func (p *SearchRefine) Optimize(line []track.CenterlinePoint) []track.CenterlinePoint {
	if len(line) < 3 {
		return clone(line)
	}
	rough := p.Search.Optimize(line)
	return p.Refine.OptimizeFrom(line, rough)
}
