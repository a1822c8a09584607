// Package fitness scores candidate formulas against a shared read-only
// dataset. Raw error is mean absolute error; combined fitness adds a
// parsimony penalty per node. Lower is better everywhere.
package fitness

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/yugcodes-bit/updated-evo/pkg/dataset"
	"github.com/yugcodes-bit/updated-evo/pkg/population"
)

// Evaluator assigns fitness to programs. It is safe for concurrent use
// on disjoint programs: the dataset is read-only and each program's
// fitness fields are written exactly once.
type Evaluator struct {
	ds        *dataset.Dataset
	parsimony float64
	workers   int
	logger    *logrus.Logger
}

// New creates an evaluator. workers bounds the parallelism of ScoreAll.
func New(ds *dataset.Dataset, parsimony float64, workers int, logger *logrus.Logger) *Evaluator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Evaluator{ds: ds, parsimony: parsimony, workers: workers, logger: logger}
}

// Predict evaluates the program's tree over the full dataset.
func (e *Evaluator) Predict(p *population.Program) []float64 {
	return p.Root.Eval(e.ds.Features(), e.ds.Rows())
}

// Score computes and caches the program's raw error and combined
// fitness. Numeric trouble never escapes: any non-finite prediction
// maps the whole program to +Inf fitness instead of propagating.
func (e *Evaluator) Score(p *population.Program) {
	if p.Scored {
		return
	}

	preds := e.Predict(p)
	target := e.ds.Target()

	raw := 0.0
	for i, pred := range preds {
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			raw = math.Inf(1)
			break
		}
		raw += math.Abs(target[i] - pred)
	}
	if !math.IsInf(raw, 1) {
		raw /= float64(len(preds))
	}

	p.RawError = raw
	if math.IsInf(raw, 1) || math.IsNaN(raw) {
		p.RawError = math.Inf(1)
		p.Fitness = math.Inf(1)
	} else {
		p.Fitness = raw + e.parsimony*float64(p.NodeCount)
	}
	p.Scored = true
}

// ScoreAll scores every unscored program in the population, fanning the
// work out across the evaluator's worker budget. Scoring consumes no
// randomness, so the worker count cannot perturb a seeded run. Returns
// the number of programs evaluated and how many came back non-finite.
func (e *Evaluator) ScoreAll(pop *population.Population) (evaluated, invalid int) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.workers)

	for _, p := range pop.Programs {
		if p.Scored {
			continue
		}
		evaluated++
		wg.Add(1)
		go func(p *population.Program) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			e.Score(p)
		}(p)
	}
	wg.Wait()

	for _, p := range pop.Programs {
		if !p.Valid() {
			invalid++
		}
	}
	if invalid == len(pop.Programs) {
		e.logger.WithFields(logrus.Fields{
			"generation": pop.Generation,
			"programs":   len(pop.Programs),
		}).Warn("Every program in generation evaluated non-finite")
	}
	return evaluated, invalid
}

// RSquared returns the coefficient of determination between the
// program's predictions and the target over the full dataset. Reporting
// only; selection never sees it.
func (e *Evaluator) RSquared(p *population.Program) float64 {
	preds := e.Predict(p)
	for _, pred := range preds {
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return math.NaN()
		}
	}
	return stat.RSquaredFrom(preds, e.ds.Target(), nil)
}

// MeanFitness returns the mean combined fitness of the population's
// valid programs, or +Inf when none are valid.
func (e *Evaluator) MeanFitness(pop *population.Population) float64 {
	vals := make([]float64, 0, len(pop.Programs))
	for _, p := range pop.Programs {
		if p.Valid() {
			vals = append(vals, p.Fitness)
		}
	}
	if len(vals) == 0 {
		return math.Inf(1)
	}
	return stat.Mean(vals, nil)
}
