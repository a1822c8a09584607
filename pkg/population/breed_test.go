package population

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

// checkShape asserts the arity invariant over the whole tree.
func checkShape(t *testing.T, n *tree.Node) {
	t.Helper()
	for _, node := range n.Nodes() {
		if node.Kind == tree.Operator {
			require.Len(t, node.Children, node.Op.Arity())
		} else {
			require.Empty(t, node.Children)
		}
	}
}

func breedingParents(t *testing.T, rng *rand.Rand, p *Params) (*Program, *Program) {
	t.Helper()
	a := NewProgram(tree.Generate(rng, p.Gen), 0)
	b := NewProgram(tree.Generate(rng, p.Gen), 0)
	return a, b
}

func TestCrossover(t *testing.T) {
	p := testParams(t)
	rng := rand.New(rand.NewSource(21))

	for i := 0; i < 200; i++ {
		parent, donor := breedingParents(t, rng, p)
		parentBefore := parent.Root.Format(nil)
		donorBefore := donor.Root.Format(nil)

		child := Crossover(rng, parent, donor, 1)
		checkShape(t, child.Root)
		assert.Equal(t, child.Root.Count(), child.NodeCount)
		assert.Equal(t, 1, child.Generation)

		// parents are never mutated in place
		assert.Equal(t, parentBefore, parent.Root.Format(nil))
		assert.Equal(t, donorBefore, donor.Root.Format(nil))
	}
}

func TestSubtreeMutation(t *testing.T) {
	p := testParams(t)
	rng := rand.New(rand.NewSource(22))

	for i := 0; i < 200; i++ {
		parent, _ := breedingParents(t, rng, p)
		before := parent.Root.Format(nil)

		child := SubtreeMutation(rng, parent, p, 1)
		checkShape(t, child.Root)
		assert.Equal(t, before, parent.Root.Format(nil))
	}
}

func TestHoistMutationShrinksOrKeeps(t *testing.T) {
	p := testParams(t)
	rng := rand.New(rand.NewSource(23))

	for i := 0; i < 200; i++ {
		parent, _ := breedingParents(t, rng, p)
		child := HoistMutation(rng, parent, 1)
		checkShape(t, child.Root)
		assert.LessOrEqual(t, child.NodeCount, parent.NodeCount)
	}
}

func TestPointMutationPreservesShape(t *testing.T) {
	p := testParams(t)
	p.PointReplaceProb = 1.0 // force every node to be replaced
	rng := rand.New(rand.NewSource(24))

	for i := 0; i < 200; i++ {
		parent, _ := breedingParents(t, rng, p)
		before := parent.Root.Format(nil)

		child := PointMutation(rng, parent, p, 1)
		checkShape(t, child.Root)
		// swapping terminals and same-arity operators keeps the shape
		assert.Equal(t, parent.NodeCount, child.NodeCount)
		assert.Equal(t, parent.Root.Depth(), child.Root.Depth())
		assert.Equal(t, before, parent.Root.Format(nil))
	}
}

func TestPointMutationZeroProbIsIdentity(t *testing.T) {
	p := testParams(t)
	p.PointReplaceProb = 0.0
	rng := rand.New(rand.NewSource(25))

	parent, _ := breedingParents(t, rng, p)
	child := PointMutation(rng, parent, p, 1)
	assert.Equal(t, parent.Root.Format(nil), child.Root.Format(nil))
}

func TestReproductionIsDeepClone(t *testing.T) {
	p := testParams(t)
	rng := rand.New(rand.NewSource(26))

	parent, _ := breedingParents(t, rng, p)
	child := Reproduction(parent, 1)
	assert.Equal(t, parent.Root.Format(nil), child.Root.Format(nil))
	assert.NotSame(t, parent.Root, child.Root)
	assert.False(t, child.Scored)

	// altering the child leaves the parent intact
	child.Root.Children[0] = tree.NewConstant(42)
	assert.NotEqual(t, parent.Root.Format(nil), child.Root.Format(nil))
}

func TestBreedingDeterministicForSeed(t *testing.T) {
	p := testParams(t)

	offspring := func(seed int64) []string {
		rng := rand.New(rand.NewSource(seed))
		parent, donor := breedingParents(t, rng, p)
		out := make([]string, 0, 40)
		for i := 0; i < 10; i++ {
			out = append(out,
				Crossover(rng, parent, donor, 1).Root.Format(nil),
				SubtreeMutation(rng, parent, p, 1).Root.Format(nil),
				HoistMutation(rng, parent, 1).Root.Format(nil),
				PointMutation(rng, parent, p, 1).Root.Format(nil),
			)
		}
		return out
	}

	assert.Equal(t, offspring(31), offspring(31))
}
