// Package engine runs the generation loop of a symbolic regression
// search: initialize, evaluate, select, vary, replace, until the best
// formula is good enough or the generation budget runs out.
package engine

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yugcodes-bit/updated-evo/internal/types"
	"github.com/yugcodes-bit/updated-evo/pkg/config"
	"github.com/yugcodes-bit/updated-evo/pkg/dataset"
	"github.com/yugcodes-bit/updated-evo/pkg/fitness"
	"github.com/yugcodes-bit/updated-evo/pkg/population"
	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

// Engine drives one evolutionary run. Each run owns its population,
// dataset reference and random generator; concurrent runs share
// nothing, so two engines with the same seed, config and dataset
// produce identical output.
type Engine struct {
	config *types.Config
	ds     *dataset.Dataset
	rng    *rand.Rand
	logger *logrus.Logger
	eval   *fitness.Evaluator
	params *population.Params

	best    *population.Program
	history []types.GenerationStats
	stats   types.EvolutionStats
}

// New validates the configuration and builds an engine. A ConfigError
// is returned before any population exists.
func New(ds *dataset.Dataset, cfg *types.Config) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	funcs, err := tree.ParseFunctionSet(cfg.FunctionSet)
	if err != nil {
		return nil, &types.ConfigError{Field: "function_set", Reason: err.Error()}
	}

	logger := logrus.New()
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	gen := &tree.GenParams{
		Funcs:       funcs,
		NumFeatures: ds.NumFeatures(),
		MinDepth:    cfg.MinInitialDepth,
		MaxDepth:    cfg.MaxInitialDepth,
	}
	if len(cfg.ConstRange) == 2 {
		gen.ConstEnabled = true
		gen.ConstLow = cfg.ConstRange[0]
		gen.ConstHigh = cfg.ConstRange[1]
	}

	workers := cfg.ParallelWorkers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return &Engine{
		config: cfg,
		ds:     ds,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logger,
		eval:   fitness.New(ds, cfg.ParsimonyCoefficient, workers, logger),
		params: &population.Params{
			Gen:              gen,
			TournamentSize:   cfg.TournamentSize,
			PointReplaceProb: cfg.PointReplaceProb,
		},
	}, nil
}

// Run builds an engine for the dataset and configuration and runs it to
// completion.
func Run(ds *dataset.Dataset, cfg *types.Config) (*types.FitOutcome, error) {
	e, err := New(ds, cfg)
	if err != nil {
		return nil, err
	}
	return e.Run()
}

// Run executes the generation loop and reports the best program seen.
func (e *Engine) Run() (*types.FitOutcome, error) {
	e.stats.StartTime = time.Now()
	e.logger.WithFields(logrus.Fields{
		"population":  e.config.PopulationSize,
		"generations": e.config.Generations,
		"functions":   e.config.FunctionSet,
		"features":    e.ds.NumFeatures(),
		"rows":        e.ds.Rows(),
		"seed":        e.config.Seed,
	}).Info("Starting evolution")

	pop := population.NewRandom(e.rng, e.config.PopulationSize, e.params)
	generation := 0

	for {
		start := time.Now()
		evaluated, invalid := e.eval.ScoreAll(pop)
		e.stats.TotalEvaluations += int64(evaluated)
		e.stats.FailedEvals += int64(invalid)
		e.updateBest(pop)

		gs := types.GenerationStats{
			Generation:    generation,
			BestFitness:   e.best.Fitness,
			BestRawError:  e.best.RawError,
			BestNodeCount: e.best.NodeCount,
			AvgFitness:    e.eval.MeanFitness(pop),
			Evaluated:     evaluated,
			Invalid:       invalid,
			Duration:      time.Since(start),
		}
		e.history = append(e.history, gs)
		e.logger.WithFields(logrus.Fields{
			"generation":     gs.Generation,
			"best_fitness":   gs.BestFitness,
			"best_raw_error": gs.BestRawError,
			"best_nodes":     gs.BestNodeCount,
			"avg_fitness":    gs.AvgFitness,
			"invalid":        gs.Invalid,
			"duration":       gs.Duration,
		}).Info("Generation completed")

		generation++
		if e.best.RawError <= e.config.StoppingCriteria {
			e.logger.WithField("raw_error", e.best.RawError).Info("Stopping criteria reached")
			break
		}
		if generation >= e.config.Generations {
			break
		}

		pop = e.vary(pop, generation)
	}

	e.stats.BestFitness = e.best.Fitness
	e.stats.LastUpdate = time.Now()
	e.stats.Duration = time.Since(e.stats.StartTime)

	outcome := &types.FitOutcome{
		Formula:      e.best.Root.Format(e.ds.FeatureNames()),
		RawError:     e.best.RawError,
		Accuracy:     e.eval.RSquared(e.best),
		FeatureNames: e.ds.FeatureNames(),
		NodeCount:    e.best.NodeCount,
		Generations:  generation,
		Degenerate:   !e.best.Valid(),
		Stats:        e.stats,
	}
	if outcome.Degenerate {
		e.logger.WithField("formula", outcome.Formula).
			Warn("Search ended degenerate; returning least-bad program")
	}
	return outcome, nil
}

// History returns the per-generation statistics recorded so far.
func (e *Engine) History() []types.GenerationStats {
	return e.history
}

// Best returns the best-so-far program.
func (e *Engine) Best() *population.Program {
	return e.best
}

// updateBest folds a freshly scored generation into the best-so-far
// record. The incumbent is replaced only by a challenger with strictly
// lower combined fitness and raw error no worse, so both the reported
// fitness and the reported raw error are monotone non-increasing across
// generations.
func (e *Engine) updateBest(pop *population.Population) {
	for _, p := range pop.Programs {
		if e.best == nil {
			e.best = p
			continue
		}
		if p.Fitness < e.best.Fitness && p.RawError <= e.best.RawError {
			e.best = p
		}
	}
}

// vary builds the next generation by weighted random choice of genetic
// operator per offspring. All randomness is drawn from the engine's
// single generator in offspring-index order; the previous population is
// replaced wholesale and only the best-so-far record survives outside
// it.
func (e *Engine) vary(pop *population.Population, generation int) *population.Population {
	cfg := e.config
	next := &population.Population{
		Programs:   make([]*population.Program, 0, cfg.PopulationSize),
		Generation: generation,
	}

	crossover := cfg.CrossoverProb
	subtree := crossover + cfg.SubtreeMutationProb
	hoist := subtree + cfg.HoistMutationProb
	point := hoist + cfg.PointMutationProb

	for i := 0; i < cfg.PopulationSize; i++ {
		var child *population.Program
		r := e.rng.Float64()
		switch {
		case r < crossover:
			parent := pop.Tournament(e.rng, e.params.TournamentSize)
			donor := pop.Tournament(e.rng, e.params.TournamentSize)
			child = population.Crossover(e.rng, parent, donor, generation)
		case r < subtree:
			parent := pop.Tournament(e.rng, e.params.TournamentSize)
			child = population.SubtreeMutation(e.rng, parent, e.params, generation)
		case r < hoist:
			parent := pop.Tournament(e.rng, e.params.TournamentSize)
			child = population.HoistMutation(e.rng, parent, generation)
		case r < point:
			parent := pop.Tournament(e.rng, e.params.TournamentSize)
			child = population.PointMutation(e.rng, parent, e.params, generation)
		default:
			parent := pop.Tournament(e.rng, e.params.TournamentSize)
			child = population.Reproduction(parent, generation)
		}
		next.Programs = append(next.Programs, child)
	}
	return next
}
