package types

import (
	"fmt"
	"time"
)

// Config holds every knob of a symbolic regression run
type Config struct {
	PopulationSize int `yaml:"population_size" json:"population_size"`
	Generations    int `yaml:"generations" json:"generations"`
	TournamentSize int `yaml:"tournament_size" json:"tournament_size"`

	FunctionSet []string `yaml:"function_set" json:"function_set"`

	ParsimonyCoefficient float64 `yaml:"parsimony_coefficient" json:"parsimony_coefficient"`
	StoppingCriteria     float64 `yaml:"stopping_criteria" json:"stopping_criteria"`

	CrossoverProb       float64 `yaml:"crossover_prob" json:"crossover_prob"`
	SubtreeMutationProb float64 `yaml:"subtree_mutation_prob" json:"subtree_mutation_prob"`
	HoistMutationProb   float64 `yaml:"hoist_mutation_prob" json:"hoist_mutation_prob"`
	PointMutationProb   float64 `yaml:"point_mutation_prob" json:"point_mutation_prob"`
	PointReplaceProb    float64 `yaml:"point_replace_prob" json:"point_replace_prob"`

	MinInitialDepth int `yaml:"min_initial_depth" json:"min_initial_depth"`
	MaxInitialDepth int `yaml:"max_initial_depth" json:"max_initial_depth"`

	// ConstRange enables ephemeral constant terminals when it holds
	// [low, high]; an empty slice disables constants entirely so that
	// numeric values can only enter a formula through feature columns.
	ConstRange []float64 `yaml:"const_range" json:"const_range"`

	ParallelWorkers int   `yaml:"parallel_workers" json:"parallel_workers"`
	Seed            int64 `yaml:"seed" json:"seed"`
	Verbose         bool  `yaml:"verbose" json:"verbose"`
}

// ReproductionProb returns the implicit probability of the reproduction
// operator, the remainder after the four explicit operators.
func (c *Config) ReproductionProb() float64 {
	return 1.0 - c.CrossoverProb - c.SubtreeMutationProb - c.HoistMutationProb - c.PointMutationProb
}

// FitOutcome is the result of a completed run
type FitOutcome struct {
	Formula      string         `json:"formula"`
	RawError     float64        `json:"raw_error"`
	Accuracy     float64        `json:"accuracy"`
	FeatureNames []string       `json:"feature_names"`
	NodeCount    int            `json:"node_count"`
	Generations  int            `json:"generations"`
	Degenerate   bool           `json:"degenerate,omitempty"`
	Stats        EvolutionStats `json:"stats"`
}

// GenerationStats is a per-generation snapshot of the search
type GenerationStats struct {
	Generation    int           `json:"generation"`
	BestFitness   float64       `json:"best_fitness"`
	BestRawError  float64       `json:"best_raw_error"`
	BestNodeCount int           `json:"best_node_count"`
	AvgFitness    float64       `json:"avg_fitness"`
	Evaluated     int           `json:"evaluated"`
	Invalid       int           `json:"invalid"`
	Duration      time.Duration `json:"duration"`
}

// EvolutionStats tracks statistics about the whole run
type EvolutionStats struct {
	TotalEvaluations int64         `json:"total_evaluations"`
	FailedEvals      int64         `json:"failed_evals"`
	BestFitness      float64       `json:"best_score"`
	Duration         time.Duration `json:"duration"`
	StartTime        time.Time     `json:"start_time"`
	LastUpdate       time.Time     `json:"last_update"`
}

// ConfigError reports an invalid Config field. It is returned before any
// evolution starts and is never silently corrected.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// DatasetError reports a structurally unusable dataset.
type DatasetError struct {
	Reason string
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("invalid dataset: %s", e.Reason)
}
