package arith

import (
	"math/big"
	"strconv"
	"unicode"

	"github.com/zephyrtronium/bigfloat"
)

// Op describes one operator symbol: its split rank, its operand presence
// requirements, and its application.
type Op struct {
	// Rank orders split selection during rebalancing. Higher ranks bind
	// more loosely and are chosen as split points first: + and - are rank
	// 2, * and / rank 1, ^ and ** rank 0.
	Rank int
	// Left and Right are operand presence requirements, not counts. A
	// value > 0 means an operand on that side is mandatory; a value <= 0
	// permits prefix use with no left operand.
	Left  int
	Right int
	// Eval applies the operation, setting z to the result. x is nil for a
	// prefix application; z may alias x or y. A nil Eval marks the
	// call-by-name fallback row: the symbol resolves to a one-argument
	// function in the evaluation context.
	Eval func(z, x, y *big.Float) error
}

// builtinOps is the canonical operator table.
var builtinOps = map[string]Op{
	"*":  {Rank: 1, Left: 1, Right: 1, Eval: evalMul},
	"/":  {Rank: 1, Left: 1, Right: 1, Eval: evalDiv},
	"+":  {Rank: 2, Left: 1, Right: 1, Eval: evalAdd},
	"-":  {Rank: 2, Left: -1, Right: 1, Eval: evalSub},
	"^":  {Rank: 0, Left: 1, Right: 1, Eval: evalPow},
	"**": {Rank: 0, Left: 1, Right: 1, Eval: evalPow},
}

// callOp is the fallback row. Lookups are total: any symbol without a
// registered row is a prefix call of the function with that name.
var callOp = Op{Rank: 0, Left: -1, Right: 1}

func evalAdd(z, x, y *big.Float) error {
	z.Add(x, y)
	return nil
}

func evalSub(z, x, y *big.Float) error {
	if x == nil {
		z.Neg(y)
		return nil
	}
	z.Sub(x, y)
	return nil
}

func evalMul(z, x, y *big.Float) error {
	z.Mul(x, y)
	return nil
}

func evalDiv(z, x, y *big.Float) error {
	// Guard against invalid divisions, 0/0 or inf/inf.
	if x.Sign() == 0 && y.Sign() == 0 || x.IsInf() && y.IsInf() {
		return &DomainError{X: new(big.Float).Copy(y), Op: "/"}
	}
	z.Quo(x, y)
	return nil
}

func evalPow(z, x, y *big.Float) error {
	// Guard against invalid exponentiations, i.e. negative base.
	if x.Signbit() {
		return &DomainError{X: new(big.Float).Copy(x), Op: "^"}
	}
	bigfloat.Pow(z, x, y)
	return nil
}

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// ops is the operator table for this parse. Nil means builtinOps.
	ops map[string]Op
	// stop is a string containing the whitespace runes that end the
	// expression at nesting depth zero.
	stop string
}

type (
	opopt struct {
		name string
		op   Op
	}
	opsopt  map[string]Op
	stopopt string
)

// ParseOp registers an operator symbol for parsing, overriding any builtin
// row with the same symbol. Registration happens per parse, before any
// token is scanned; the builtin table itself is never mutated.
func ParseOp(name string, op Op) ParseOption {
	return &opopt{name, op}
}

func (o *opopt) parseOption(p parsectx) parsectx {
	p.ops = growops(p.ops, 1)
	p.ops[o.name] = o.op
	return p
}

// ParseOps registers a group of operator symbols for parsing.
func ParseOps(ops map[string]Op) ParseOption {
	return opsopt(ops)
}

func (o opsopt) parseOption(p parsectx) parsectx {
	p.ops = growops(p.ops, len(o))
	for k, v := range o {
		p.ops[k] = v
	}
	return p
}

// growops copies the builtin table on first extension.
func growops(ops map[string]Op, n int) map[string]Op {
	if ops != nil {
		return ops
	}
	ops = make(map[string]Op, len(builtinOps)+n)
	for k, v := range builtinOps {
		ops[k] = v
	}
	return ops
}

// StopOn tells the parser to treat a list of whitespace runes as ending the
// expression. A stop rune inside an open group is an ordinary separator.
// With no arguments, StopOn restores the default behavior, which is to
// parse to EOF.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("arith: cannot stop on " + strconv.QuoteRune(r))
		}
		v = append(v, r)
	}
	return stopopt(v)
}

func (o stopopt) parseOption(p parsectx) parsectx {
	p.stop = string(o)
	return p
}

// lookup returns the table row for a symbol. The table is total: a symbol
// with no registered row yields the call-by-name fallback row.
func (p *parsectx) lookup(sym string) Op {
	if op, ok := p.ops[sym]; ok {
		return op
	}
	return callOp
}
