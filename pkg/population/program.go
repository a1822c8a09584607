// Package population holds one generation of candidate formulas and the
// stochastic machinery that produces the next one: ramped random
// initialization, tournament selection, and the genetic operators.
// Every operator works on deep clones, so the previous generation's
// programs (including the best-so-far record held by the driver) are
// never aliased by their offspring.
package population

import (
	"math"

	"github.com/google/uuid"

	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

// Program is one candidate formula plus its cached evaluation results.
// A Program is immutable once scored; an invalid program (non-finite
// predictions after protection) carries +Inf fitness so selection never
// favors it.
type Program struct {
	ID         string
	Root       *tree.Node
	Generation int

	RawError  float64
	Fitness   float64
	NodeCount int
	Scored    bool
}

// NewProgram wraps a freshly built tree. Fitness fields stay unset
// until the evaluator scores the program.
func NewProgram(root *tree.Node, generation int) *Program {
	return &Program{
		ID:         uuid.New().String(),
		Root:       root,
		Generation: generation,
		NodeCount:  root.Count(),
		RawError:   math.Inf(1),
		Fitness:    math.Inf(1),
	}
}

// Clone returns an unscored deep copy for the next generation.
func (p *Program) Clone(generation int) *Program {
	return NewProgram(p.Root.Clone(), generation)
}

// Valid reports whether the program evaluated to a finite fitness.
func (p *Program) Valid() bool {
	return p.Scored && !math.IsInf(p.Fitness, 1) && !math.IsNaN(p.Fitness)
}
