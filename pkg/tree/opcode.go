package tree

import (
	"fmt"
	"math"

	"github.com/yugcodes-bit/updated-evo/internal/constants"
)

// Opcode identifies an operator of the function set. The set is closed:
// arity and the protected evaluation routine are fixed at compile time
// and a Config's function_set is resolved to Opcodes exactly once.
type Opcode int

const (
	Add Opcode = iota
	Sub
	Mul
	Div
	Sqrt
	Log
	Abs
	Neg
	Inv
	Sin
	Cos
	Tan
	Exp
	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	Add:  "add",
	Sub:  "sub",
	Mul:  "mul",
	Div:  "div",
	Sqrt: "sqrt",
	Log:  "log",
	Abs:  "abs",
	Neg:  "neg",
	Inv:  "inv",
	Sin:  "sin",
	Cos:  "cos",
	Tan:  "tan",
	Exp:  "exp",
}

var opcodeArity = [numOpcodes]int{
	Add:  2,
	Sub:  2,
	Mul:  2,
	Div:  2,
	Sqrt: 1,
	Log:  1,
	Abs:  1,
	Neg:  1,
	Inv:  1,
	Sin:  1,
	Cos:  1,
	Tan:  1,
	Exp:  1,
}

// String returns the canonical lowercase name of the operator.
func (op Opcode) String() string {
	if op < 0 || op >= numOpcodes {
		return fmt.Sprintf("opcode(%d)", int(op))
	}
	return opcodeNames[op]
}

// Arity returns the number of operands the operator consumes.
func (op Opcode) Arity() int {
	return opcodeArity[op]
}

// ParseOpcode resolves an operator name from a Config function_set.
func ParseOpcode(name string) (Opcode, error) {
	for op, n := range opcodeNames {
		if n == name {
			return Opcode(op), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", name)
}

// ParseFunctionSet resolves a list of operator names, rejecting unknown
// names and duplicates.
func ParseFunctionSet(names []string) ([]Opcode, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("function set is empty")
	}
	seen := make(map[Opcode]bool, len(names))
	ops := make([]Opcode, 0, len(names))
	for _, name := range names {
		op, err := ParseOpcode(name)
		if err != nil {
			return nil, err
		}
		if seen[op] {
			return nil, fmt.Errorf("duplicate operator %q", name)
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, nil
}

// Apply evaluates the operator elementwise over its operand vectors,
// writing results into a and returning it. b is ignored for unary
// operators. Protected operators (div, sqrt, log, inv, exp) are total
// over finite inputs; the unprotected remainder may yield NaN or Inf,
// which the fitness evaluator detects downstream.
func (op Opcode) Apply(a, b []float64) []float64 {
	switch op {
	case Add:
		for i := range a {
			a[i] += b[i]
		}
	case Sub:
		for i := range a {
			a[i] -= b[i]
		}
	case Mul:
		for i := range a {
			a[i] *= b[i]
		}
	case Div:
		for i := range a {
			if math.Abs(b[i]) > constants.ProtectedEpsilon {
				a[i] /= b[i]
			} else {
				a[i] = 1.0
			}
		}
	case Sqrt:
		for i := range a {
			a[i] = math.Sqrt(math.Abs(a[i]))
		}
	case Log:
		for i := range a {
			if math.Abs(a[i]) > constants.ProtectedEpsilon {
				a[i] = math.Log(math.Abs(a[i]))
			} else {
				a[i] = 0.0
			}
		}
	case Abs:
		for i := range a {
			a[i] = math.Abs(a[i])
		}
	case Neg:
		for i := range a {
			a[i] = -a[i]
		}
	case Inv:
		for i := range a {
			if math.Abs(a[i]) > constants.ProtectedEpsilon {
				a[i] = 1.0 / a[i]
			} else {
				a[i] = 0.0
			}
		}
	case Sin:
		for i := range a {
			a[i] = math.Sin(a[i])
		}
	case Cos:
		for i := range a {
			a[i] = math.Cos(a[i])
		}
	case Tan:
		for i := range a {
			a[i] = math.Tan(a[i])
		}
	case Exp:
		for i := range a {
			if a[i] < constants.ExpCap {
				a[i] = math.Exp(a[i])
			} else {
				a[i] = math.Exp(constants.ExpCap)
			}
		}
	}
	return a
}
