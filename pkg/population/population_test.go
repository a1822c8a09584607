package population

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

func testParams(t *testing.T) *Params {
	t.Helper()
	funcs, err := tree.ParseFunctionSet([]string{"add", "sub", "mul", "div", "neg"})
	require.NoError(t, err)
	return &Params{
		Gen: &tree.GenParams{
			Funcs:       funcs,
			NumFeatures: 2,
			MinDepth:    2,
			MaxDepth:    5,
		},
		TournamentSize:   5,
		PointReplaceProb: 0.2,
	}
}

func TestNewProgram(t *testing.T) {
	root := tree.NewOp(tree.Add, tree.NewVariable(0), tree.NewVariable(1))
	p := NewProgram(root, 3)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 3, p.Generation)
	assert.Equal(t, 3, p.NodeCount)
	assert.False(t, p.Scored)
	assert.True(t, math.IsInf(p.Fitness, 1))
	assert.False(t, p.Valid())
}

func TestProgramCloneIsDeep(t *testing.T) {
	root := tree.NewOp(tree.Add, tree.NewVariable(0), tree.NewVariable(1))
	p := NewProgram(root, 0)
	p.Fitness = 1.5
	p.Scored = true

	c := p.Clone(1)
	assert.NotEqual(t, p.ID, c.ID)
	assert.Equal(t, 1, c.Generation)
	assert.False(t, c.Scored, "clone must be rescored")
	assert.NotSame(t, p.Root, c.Root)

	c.Root.Children[0].Index = 1
	assert.Equal(t, 0, p.Root.Children[0].Index)
}

func TestNewRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pop := NewRandom(rng, 50, testParams(t))

	assert.Len(t, pop.Programs, 50)
	assert.Equal(t, 0, pop.Generation)
	for _, p := range pop.Programs {
		assert.NotNil(t, p.Root)
		assert.Equal(t, p.Root.Count(), p.NodeCount)
		assert.LessOrEqual(t, p.Root.Depth(), 5)
	}
}

func TestTournamentPrefersLowestFitness(t *testing.T) {
	pop := &Population{}
	for i := 0; i < 20; i++ {
		p := NewProgram(tree.NewVariable(0), 0)
		p.Fitness = float64(20 - i) // later programs are fitter
		p.Scored = true
		pop.Programs = append(pop.Programs, p)
	}

	rng := rand.New(rand.NewSource(5))
	// a tournament over the whole population must find the minimum
	winner := pop.Tournament(rng, 200)
	assert.Equal(t, 1.0, winner.Fitness)
}

func TestTournamentTieGoesToFirstEncountered(t *testing.T) {
	pop := &Population{}
	for i := 0; i < 4; i++ {
		p := NewProgram(tree.NewVariable(0), 0)
		p.Fitness = 1.0
		p.Scored = true
		pop.Programs = append(pop.Programs, p)
	}

	rng := rand.New(rand.NewSource(9))
	first := pop.Programs[rng.Intn(len(pop.Programs))]

	rng = rand.New(rand.NewSource(9))
	winner := pop.Tournament(rng, 4)
	assert.Same(t, first, winner)
}

func TestTournamentNeverSelectsInfiniteOverFinite(t *testing.T) {
	pop := &Population{}
	for i := 0; i < 30; i++ {
		p := NewProgram(tree.NewVariable(0), 0)
		if i == 17 {
			p.Fitness = 0.5
		} else {
			p.Fitness = math.Inf(1)
		}
		p.Scored = true
		pop.Programs = append(pop.Programs, p)
	}

	rng := rand.New(rand.NewSource(2))
	winner := pop.Tournament(rng, 100)
	assert.Equal(t, 0.5, winner.Fitness)
}
