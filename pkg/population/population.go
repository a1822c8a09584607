package population

import (
	"math/rand"

	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

// Params carries the knobs shared by initialization and breeding.
type Params struct {
	Gen              *tree.GenParams
	TournamentSize   int
	PointReplaceProb float64
}

// Population is one generation of programs in insertion order. It is
// replaced wholesale at each generation boundary.
type Population struct {
	Programs   []*Program
	Generation int
}

// NewRandom builds the initial population with ramped half-and-half
// construction, consuming rng draws in program-index order.
func NewRandom(rng *rand.Rand, size int, p *Params) *Population {
	pop := &Population{Programs: make([]*Program, size)}
	for i := range pop.Programs {
		pop.Programs[i] = NewProgram(tree.Generate(rng, p.Gen), 0)
	}
	return pop
}

// Tournament draws size programs uniformly with replacement and returns
// the one with the lowest fitness. Ties go to the first-encountered
// contestant, which keeps selection deterministic for a fixed rng
// sequence.
func (pop *Population) Tournament(rng *rand.Rand, size int) *Program {
	best := pop.Programs[rng.Intn(len(pop.Programs))]
	for i := 1; i < size; i++ {
		c := pop.Programs[rng.Intn(len(pop.Programs))]
		if c.Fitness < best.Fitness {
			best = c
		}
	}
	return best
}
