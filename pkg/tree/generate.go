package tree

import (
	"math/rand"
)

// GenParams bounds randomized tree construction. The terminal pool is
// the feature variables plus, when ConstEnabled, an ephemeral constant
// drawn uniformly from [ConstLow, ConstHigh).
type GenParams struct {
	Funcs        []Opcode
	NumFeatures  int
	ConstEnabled bool
	ConstLow     float64
	ConstHigh    float64
	MinDepth     int
	MaxDepth     int
}

func (p *GenParams) numTerminals() int {
	if p.ConstEnabled {
		return p.NumFeatures + 1
	}
	return p.NumFeatures
}

func (p *GenParams) randomTerminal(rng *rand.Rand) *Node {
	i := rng.Intn(p.numTerminals())
	if i < p.NumFeatures {
		return NewVariable(i)
	}
	return NewConstant(p.ConstLow + rng.Float64()*(p.ConstHigh-p.ConstLow))
}

// RandomTerminal picks a terminal uniformly from the variable/constant
// pool.
func (p *GenParams) RandomTerminal(rng *rand.Rand) *Node {
	return p.randomTerminal(rng)
}

// Generate builds one random tree by ramped half-and-half: the depth
// bound is drawn uniformly from [MinDepth, MaxDepth] and the full and
// grow methods are used with equal probability, so the initial
// population mixes bushy and sparse shapes instead of converging on
// trivial formulas.
func Generate(rng *rand.Rand, p *GenParams) *Node {
	depth := p.MinDepth
	if p.MaxDepth > p.MinDepth {
		depth += rng.Intn(p.MaxDepth - p.MinDepth + 1)
	}
	full := rng.Float64() < 0.5
	return grow(rng, p, depth, 0, full)
}

// GenerateSubtree builds a replacement subtree for subtree mutation,
// using the same depth-bounding rule as initialization.
func GenerateSubtree(rng *rand.Rand, p *GenParams) *Node {
	return Generate(rng, p)
}

func grow(rng *rand.Rand, p *GenParams, maxDepth, depth int, full bool) *Node {
	if depth >= maxDepth {
		return p.randomTerminal(rng)
	}
	if depth > 0 && !full {
		// The grow method stops early with probability proportional to
		// the terminal share of the primitive pool; the root is always
		// an operator.
		terminalProb := float64(p.numTerminals()) / float64(p.numTerminals()+len(p.Funcs))
		if rng.Float64() < terminalProb {
			return p.randomTerminal(rng)
		}
	}
	op := p.Funcs[rng.Intn(len(p.Funcs))]
	children := make([]*Node, op.Arity())
	for i := range children {
		children[i] = grow(rng, p, maxDepth, depth+1, full)
	}
	return NewOp(op, children...)
}
