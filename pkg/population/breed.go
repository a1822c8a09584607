package population

import (
	"math/rand"

	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

// Crossover clones the parent and splices a clone of a random subtree
// of the donor over a random node of the parent. Splice points are
// uniform over all nodes, operators and terminals alike.
func Crossover(rng *rand.Rand, parent, donor *Program, generation int) *Program {
	i := rng.Intn(parent.NodeCount)
	j := rng.Intn(donor.NodeCount)
	root := parent.Root.ReplaceAt(i, donor.Root.At(j).Clone())
	return NewProgram(root, generation)
}

// SubtreeMutation replaces a random subtree of the parent with a fresh
// random tree built under the same depth-bounding rule as
// initialization.
func SubtreeMutation(rng *rand.Rand, parent *Program, p *Params, generation int) *Program {
	i := rng.Intn(parent.NodeCount)
	root := parent.Root.ReplaceAt(i, tree.GenerateSubtree(rng, p.Gen))
	return NewProgram(root, generation)
}

// HoistMutation replaces the whole tree with a clone of one of its own
// subtrees, shrinking the formula.
func HoistMutation(rng *rand.Rand, parent *Program, generation int) *Program {
	i := rng.Intn(parent.NodeCount)
	return NewProgram(parent.Root.At(i).Clone(), generation)
}

// PointMutation clones the parent and independently, per node with
// probability p.PointReplaceProb, swaps a terminal for another terminal
// of the variable/constant pool or an operator for another operator of
// identical arity, leaving children in place.
func PointMutation(rng *rand.Rand, parent *Program, p *Params, generation int) *Program {
	root := parent.Root.Clone()
	for _, n := range root.Nodes() {
		if rng.Float64() >= p.PointReplaceProb {
			continue
		}
		switch n.Kind {
		case tree.Operator:
			op := sameArityOp(rng, p.Gen, n.Op.Arity())
			n.Op = op
		default:
			repl := p.Gen.RandomTerminal(rng)
			n.Kind = repl.Kind
			n.Index = repl.Index
			n.Value = repl.Value
		}
	}
	return NewProgram(root, generation)
}

// Reproduction carries a clone of the parent into the next generation
// unchanged.
func Reproduction(parent *Program, generation int) *Program {
	return parent.Clone(generation)
}

func sameArityOp(rng *rand.Rand, g *tree.GenParams, arity int) tree.Opcode {
	candidates := make([]tree.Opcode, 0, len(g.Funcs))
	for _, op := range g.Funcs {
		if op.Arity() == arity {
			candidates = append(candidates, op)
		}
	}
	return candidates[rng.Intn(len(candidates))]
}
