package tree

import (
	"strconv"
	"strings"
)

// Kind discriminates the node union.
type Kind int

const (
	// Operator nodes own exactly Arity() children.
	Operator Kind = iota
	// Variable nodes reference a feature column by index.
	Variable
	// Constant nodes broadcast a numeric literal.
	Constant
)

// Node is one node of an expression tree. A node exclusively owns its
// subtree: trees are acyclic single-owner structures, and every genetic
// operation works on deep clones, never on live aliases.
type Node struct {
	Kind     Kind
	Op       Opcode
	Children []*Node
	Index    int
	Value    float64
}

// NewOp builds an operator node. The caller supplies exactly Arity()
// children; construction is the only place the arity invariant can be
// established, so a mismatch is a programming error and panics.
func NewOp(op Opcode, children ...*Node) *Node {
	if len(children) != op.Arity() {
		panic("tree: operator " + op.String() + " given " + strconv.Itoa(len(children)) + " children")
	}
	return &Node{Kind: Operator, Op: op, Children: children}
}

// NewVariable builds a terminal referencing feature column index.
func NewVariable(index int) *Node {
	return &Node{Kind: Variable, Index: index}
}

// NewConstant builds a terminal holding a numeric literal.
func NewConstant(value float64) *Node {
	return &Node{Kind: Constant, Value: value}
}

// Clone returns a deep copy sharing no nodes with the receiver.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Op: n.Op, Index: n.Index, Value: n.Value}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	count := 1
	for _, child := range n.Children {
		count += child.Count()
	}
	return count
}

// Depth returns the height of the subtree; a terminal has depth 0.
func (n *Node) Depth() int {
	depth := 0
	for _, child := range n.Children {
		if d := child.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Nodes returns the subtree flattened in preorder. Index i of the
// result is the node addressed by At(i) and ReplaceAt(i).
func (n *Node) Nodes() []*Node {
	out := make([]*Node, 0, 8)
	var walk func(*Node)
	walk = func(node *Node) {
		out = append(out, node)
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// At returns the i-th node in preorder.
func (n *Node) At(i int) *Node {
	return n.Nodes()[i]
}

// ReplaceAt returns a new tree equal to the receiver except that the
// subtree rooted at preorder index i is replaced by repl. The receiver
// is left untouched; repl is spliced in as-is, so the caller passes a
// clone when repl is still owned by another tree.
func (n *Node) ReplaceAt(i int, repl *Node) *Node {
	pos := 0
	var rebuild func(*Node) *Node
	rebuild = func(node *Node) *Node {
		if pos == i {
			pos += node.Count()
			return repl
		}
		pos++
		c := &Node{Kind: node.Kind, Op: node.Op, Index: node.Index, Value: node.Value}
		if len(node.Children) > 0 {
			c.Children = make([]*Node, len(node.Children))
			for j, child := range node.Children {
				c.Children[j] = rebuild(child)
			}
		}
		return c
	}
	return rebuild(n)
}

// Eval evaluates the tree over a batch of rows. features holds one
// column per feature variable, each of length rows. Evaluation never
// raises: protected operators are total over finite inputs, and any
// NaN/Inf from unprotected operators flows through as an ordinary value.
func (n *Node) Eval(features [][]float64, rows int) []float64 {
	switch n.Kind {
	case Variable:
		out := make([]float64, rows)
		copy(out, features[n.Index])
		return out
	case Constant:
		out := make([]float64, rows)
		for i := range out {
			out[i] = n.Value
		}
		return out
	}
	a := n.Children[0].Eval(features, rows)
	if n.Op.Arity() == 2 {
		b := n.Children[1].Eval(features, rows)
		return n.Op.Apply(a, b)
	}
	return n.Op.Apply(a, nil)
}

// Format renders the tree in canonical function-call notation, e.g.
// mul(two, exp(neg(Time))), using names for variable terminals.
func (n *Node) Format(names []string) string {
	var sb strings.Builder
	n.format(&sb, names)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder, names []string) {
	switch n.Kind {
	case Variable:
		if n.Index >= 0 && n.Index < len(names) {
			sb.WriteString(names[n.Index])
		} else {
			sb.WriteString("X" + strconv.Itoa(n.Index))
		}
	case Constant:
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case Operator:
		sb.WriteString(n.Op.String())
		sb.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.format(sb, names)
		}
		sb.WriteByte(')')
	}
}
