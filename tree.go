package arith

import (
	"io"
	"math"
	"strings"
)

// Expr is a rebalanced expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the operation tree.
	n *node
}

// node is a node in the operation tree: a literal leaf, or an operator
// applied to an optional left subtree and a right subtree.
type node struct {
	// op is the operator table row, or nil for a literal leaf.
	op *Op
	// name is the literal text or the operator symbol.
	name string
	pos  int

	left  *node
	right *node
}

// Parse tokenizes an expression and rebalances the flat token sequence into
// an operation tree. The given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if p.ops == nil {
		p.ops = builtinOps
	}
	toks, err := tokenize(src, p.ops, p.stop)
	if err != nil {
		return nil, err
	}
	n, err := build(toks, &p, 1)
	if err != nil {
		return nil, err
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// build recursively converts a token sequence into an operation tree. The
// split point of each sequence is the rightmost operator among those at the
// highest rank present, so equal-rank operators group left and the loosest
// binding operator becomes the root. col is the rune column of the start of
// the sequence, used when the sequence is empty.
func build(toks []token, p *parsectx, col int) (*node, error) {
	// Collapse redundant parentheses: ((3)) -> 3.
	for len(toks) == 1 && toks[0].kind == tokenGroup {
		col = toks[0].pos
		toks = toks[0].group
	}
	// Fold a leading unary minus into the literal that follows it.
	if len(toks) >= 2 && toks[0].kind == tokenSym && toks[0].text == "-" && toks[1].kind == tokenNum {
		lit := token{kind: tokenNum, text: "-" + toks[1].text, pos: toks[0].pos}
		toks = append([]token{lit}, toks[2:]...)
	}
	switch {
	case len(toks) == 0:
		return nil, &EmptyExpressionError{Col: col}
	case len(toks) == 1 && toks[0].kind == tokenNum:
		return &node{name: toks[0].text, pos: toks[0].pos}, nil
	}
	split := -1
	best := math.MinInt
	for i, t := range toks {
		if t.kind != tokenSym {
			continue
		}
		if r := p.lookup(t.text).Rank; r >= best {
			split, best = i, r
		}
	}
	if split < 0 {
		return nil, &MissingOperatorError{Col: toks[0].pos}
	}
	sym := toks[split]
	op := p.lookup(sym.text)
	if split == len(toks)-1 {
		return nil, &MissingOperandError{Col: sym.pos, Operator: sym.text, Right: true}
	}
	right, err := build(toks[split+1:], p, sym.pos)
	if err != nil {
		return nil, err
	}
	n := &node{op: &op, name: sym.text, pos: sym.pos, right: right}
	if split == 0 {
		if op.Left > 0 {
			return nil, &MissingOperandError{Col: sym.pos, Operator: sym.text}
		}
		return n, nil
	}
	n.left, err = build(toks[:split], p, toks[0].pos)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// String renders the fully parenthesized form of the rebalanced tree, e.g.
// ((1) + ((2) * (3))) for 1+2*3.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch {
	case n.op == nil:
		b.WriteString(n.name)
	case n.left == nil:
		b.WriteString(n.name)
		n.right.fmt(b)
	default:
		n.left.fmt(b)
		b.WriteString(" " + n.name + " ")
		n.right.fmt(b)
	}
}
