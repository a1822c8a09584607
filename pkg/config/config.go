package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yugcodes-bit/updated-evo/internal/constants"
	"github.com/yugcodes-bit/updated-evo/internal/types"
	"github.com/yugcodes-bit/updated-evo/pkg/tree"
)

// Manager handles configuration loading and validation
type Manager struct {
	config *types.Config
	path   string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: Default(),
	}
}

// Load loads configuration from a file
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	// Validate configuration
	if err := Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	m.path = path
	return nil
}

// Save saves configuration to a file
func (m *Manager) Save(path string) error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *types.Config {
	return m.config
}

// SetConfig updates the configuration
func (m *Manager) SetConfig(config *types.Config) {
	m.config = config
}

// GetPath returns the configuration file path
func (m *Manager) GetPath() string {
	return m.path
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(config *types.Config) error {
	if popSize := os.Getenv("POPULATION_SIZE"); popSize != "" {
		var n int
		if _, err := fmt.Sscanf(popSize, "%d", &n); err == nil {
			config.PopulationSize = n
		}
	}
	if generations := os.Getenv("GENERATIONS"); generations != "" {
		var n int
		if _, err := fmt.Sscanf(generations, "%d", &n); err == nil {
			config.Generations = n
		}
	}
	if seed := os.Getenv("SEED"); seed != "" {
		var n int64
		if _, err := fmt.Sscanf(seed, "%d", &n); err == nil {
			config.Seed = n
		}
	}
	if workers := os.Getenv("PARALLEL_WORKERS"); workers != "" {
		var n int
		if _, err := fmt.Sscanf(workers, "%d", &n); err == nil {
			config.ParallelWorkers = n
		}
	}
	if verbose := os.Getenv("VERBOSE"); verbose != "" {
		config.Verbose = strings.ToLower(verbose) == "true"
	}

	return nil
}

// Validate checks a configuration before any evolution starts. Invalid
// values are reported, never silently corrected.
func Validate(config *types.Config) error {
	if config.PopulationSize <= 0 {
		return &types.ConfigError{Field: "population_size", Reason: "must be positive"}
	}
	if config.Generations <= 0 {
		return &types.ConfigError{Field: "generations", Reason: "must be positive"}
	}
	if config.TournamentSize <= 0 {
		return &types.ConfigError{Field: "tournament_size", Reason: "must be positive"}
	}

	if _, err := tree.ParseFunctionSet(config.FunctionSet); err != nil {
		return &types.ConfigError{Field: "function_set", Reason: err.Error()}
	}

	if config.ParsimonyCoefficient < 0 {
		return &types.ConfigError{Field: "parsimony_coefficient", Reason: "must be non-negative"}
	}
	if config.StoppingCriteria < 0 {
		return &types.ConfigError{Field: "stopping_criteria", Reason: "must be non-negative"}
	}

	probs := []struct {
		field string
		value float64
	}{
		{"crossover_prob", config.CrossoverProb},
		{"subtree_mutation_prob", config.SubtreeMutationProb},
		{"hoist_mutation_prob", config.HoistMutationProb},
		{"point_mutation_prob", config.PointMutationProb},
		{"point_replace_prob", config.PointReplaceProb},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 {
			return &types.ConfigError{Field: p.field, Reason: "must be in [0, 1]"}
		}
	}
	sum := config.CrossoverProb + config.SubtreeMutationProb +
		config.HoistMutationProb + config.PointMutationProb
	if sum > 1 {
		return &types.ConfigError{
			Field:  "crossover_prob",
			Reason: fmt.Sprintf("operator probabilities sum to %g, must not exceed 1", sum),
		}
	}

	if config.MaxInitialDepth <= 0 {
		return &types.ConfigError{Field: "max_initial_depth", Reason: "must be positive"}
	}
	if config.MinInitialDepth <= 0 {
		return &types.ConfigError{Field: "min_initial_depth", Reason: "must be positive"}
	}
	if config.MinInitialDepth > config.MaxInitialDepth {
		return &types.ConfigError{Field: "min_initial_depth", Reason: "must not exceed max_initial_depth"}
	}

	switch len(config.ConstRange) {
	case 0:
		// Constants disabled; numeric values enter only as feature columns.
	case 2:
		if config.ConstRange[0] > config.ConstRange[1] {
			return &types.ConfigError{Field: "const_range", Reason: "lower bound exceeds upper bound"}
		}
	default:
		return &types.ConfigError{Field: "const_range", Reason: "must be empty or [low, high]"}
	}

	if config.ParallelWorkers < 0 {
		return &types.ConfigError{Field: "parallel_workers", Reason: "must be non-negative"}
	}

	return nil
}

// Default returns the default configuration
func Default() *types.Config {
	return &types.Config{
		PopulationSize:       constants.DefaultPopulationSize,
		Generations:          constants.DefaultGenerations,
		TournamentSize:       constants.DefaultTournamentSize,
		FunctionSet:          append([]string(nil), constants.DefaultFunctionSet...),
		ParsimonyCoefficient: constants.DefaultParsimonyCoefficient,
		StoppingCriteria:     constants.DefaultStoppingCriteria,
		CrossoverProb:        constants.DefaultCrossoverProb,
		SubtreeMutationProb:  constants.DefaultSubtreeMutationProb,
		HoistMutationProb:    constants.DefaultHoistMutationProb,
		PointMutationProb:    constants.DefaultPointMutationProb,
		PointReplaceProb:     constants.DefaultPointReplaceProb,
		MinInitialDepth:      constants.DefaultMinInitialDepth,
		MaxInitialDepth:      constants.DefaultMaxInitialDepth,
		ParallelWorkers:      constants.DefaultParallelWorkers,
		Seed:                 constants.DefaultSeed,
	}
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig(path string) error {
	manager := NewManager()
	return manager.Save(path)
}
