package constants

// Application constants
const (
	Name        = "updated-evo"
	Version     = "1.0.0"
	Description = "Genetic-programming symbolic regression engine"

	// Default evolution parameters
	DefaultPopulationSize = 500
	DefaultGenerations    = 20
	DefaultTournamentSize = 20

	// Default genetic-operator probabilities; reproduction takes the
	// remainder (0.05 with these values)
	DefaultCrossoverProb       = 0.70
	DefaultSubtreeMutationProb = 0.10
	DefaultHoistMutationProb   = 0.05
	DefaultPointMutationProb   = 0.10
	DefaultPointReplaceProb    = 0.05

	// Default fitness parameters
	DefaultParsimonyCoefficient = 0.001
	DefaultStoppingCriteria     = 0.01

	// Default tree construction bounds (ramped half-and-half)
	DefaultMinInitialDepth = 2
	DefaultMaxInitialDepth = 6

	DefaultParallelWorkers = 4
	DefaultSeed            = 42

	// Protected operator thresholds
	ProtectedEpsilon = 1e-3
	ExpCap           = 10.0

	// Exit codes
	ExitSuccess = 0
	ExitError   = 1
)

// DefaultFunctionSet is the operator set used when a Config leaves
// function_set empty.
var DefaultFunctionSet = []string{"add", "sub", "mul", "div"}
