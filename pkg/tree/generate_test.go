package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genParams(t *testing.T) *GenParams {
	t.Helper()
	funcs, err := ParseFunctionSet([]string{"add", "sub", "mul", "div", "neg"})
	require.NoError(t, err)
	return &GenParams{
		Funcs:       funcs,
		NumFeatures: 3,
		MinDepth:    2,
		MaxDepth:    6,
	}
}

// checkArity walks the tree asserting every operator node owns exactly
// arity children and every terminal owns none. The walk visiting
// exactly Count nodes doubles as an acyclicity check.
func checkArity(t *testing.T, n *Node) {
	t.Helper()
	visited := 0
	var walk func(*Node)
	walk = func(node *Node) {
		visited++
		require.LessOrEqual(t, visited, n.Count(), "traversal exceeded node count")
		switch node.Kind {
		case Operator:
			require.Len(t, node.Children, node.Op.Arity())
			for _, c := range node.Children {
				walk(c)
			}
		default:
			require.Empty(t, node.Children)
		}
	}
	walk(n)
	require.Equal(t, n.Count(), visited)
}

func TestGenerateRespectsArityAndDepth(t *testing.T) {
	p := genParams(t)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		n := Generate(rng, p)
		checkArity(t, n)
		assert.LessOrEqual(t, n.Depth(), p.MaxDepth)
		// root is always an operator
		assert.Equal(t, Operator, n.Kind)
	}
}

func TestGenerateRampedProducesShallowAndDeep(t *testing.T) {
	p := genParams(t)
	rng := rand.New(rand.NewSource(7))
	depths := make(map[int]int)
	for i := 0; i < 2000; i++ {
		depths[Generate(rng, p).Depth()]++
	}
	// a ramped strategy must cover both ends of the depth range
	assert.Greater(t, depths[2], 0, "no shallow trees generated")
	deep := 0
	for d, c := range depths {
		if d >= 5 {
			deep += c
		}
	}
	assert.Greater(t, deep, 0, "no deep trees generated")
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	p := genParams(t)
	names := []string{"a", "b", "c"}

	render := func(seed int64) []string {
		rng := rand.New(rand.NewSource(seed))
		out := make([]string, 50)
		for i := range out {
			out[i] = Generate(rng, p).Format(names)
		}
		return out
	}

	assert.Equal(t, render(42), render(42))
	assert.NotEqual(t, render(42), render(43))
}

func TestGenerateConstantsOnlyWhenEnabled(t *testing.T) {
	p := genParams(t)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		for _, n := range Generate(rng, p).Nodes() {
			assert.NotEqual(t, Constant, n.Kind, "constants disabled but one was generated")
		}
	}

	p.ConstEnabled = true
	p.ConstLow = -1
	p.ConstHigh = 1
	sawConst := false
	for i := 0; i < 200 && !sawConst; i++ {
		for _, n := range Generate(rng, p).Nodes() {
			if n.Kind == Constant {
				sawConst = true
				assert.GreaterOrEqual(t, n.Value, -1.0)
				assert.Less(t, n.Value, 1.0)
			}
		}
	}
	assert.True(t, sawConst, "const_range enabled but no constant generated")
}
