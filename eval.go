package arith

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions. It carries the working
// precision, the default rounding for Format, and the function set that
// resolves call-by-name symbols. It is not safe to use a Context
// concurrently; use Clone to evaluate on several goroutines.
type Context struct {
	stack  []*big.Float
	nums   map[string]*big.Float
	funcs  map[string]Func
	prec   uint
	digits int
	err    error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	precopt  uint
	roundopt int
)

func (funcopt) ctxOption()  {}
func (funcsopt) ctxOption() {}
func (precopt) ctxOption()  {}
func (roundopt) ctxOption() {}

// SetFunc sets the function a symbol resolves to in the context. A nil fn
// removes the function, making the symbol unresolvable.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs sets any number of functions in the context.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Round sets the default number of decimal places used by Format.
func Round(digits int) ContextOption {
	return roundopt(digits)
}

// NewContext creates a new evaluation context. If no precision is given,
// the default is 64 bits; if no rounding is given, the default is
// DefaultRound. The function set starts as the package default built on
// bigfloat (exp, ln, log, sqrt, abs, neg).
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{funcs: defaultFuncs, prec: 64, digits: DefaultRound}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The
// returned context has no Result and is safe to use to evaluate an
// expression concurrently with the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack:  make([]*big.Float, 0, cap(ctx.stack)),
		funcs:  make(map[string]Func, len(ctx.funcs)),
		prec:   ctx.prec,
		digits: ctx.digits,
	}
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// The literal cache is keyed by text at a single precision; share it
	// only when the precision is unchanged.
	if n.prec == ctx.prec && ctx.nums != nil {
		n.nums = make(map[string]*big.Float, len(ctx.nums))
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	} else {
		n.nums = make(map[string]*big.Float)
	}
	for name, fn := range ctx.funcs {
		n.funcs[name] = fn
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case funcopt:
			if opt.fn == nil {
				delete(n.funcs, opt.name)
			} else {
				n.funcs[opt.name] = opt.fn
			}
		case funcsopt:
			for k, v := range opt {
				if v == nil {
					delete(n.funcs, k)
				} else {
					n.funcs[k] = v
				}
			}
		case precopt:
			// Already done. Do nothing.
		case roundopt:
			n.digits = int(opt)
		default:
			panic("arith: unknown option type")
		}
	}
	return &n
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. an unresolvable function name or an operand outside an operator's
// domain, then the result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("arith: Eval during Eval")
	}
	ctx.err = e.n.eval(ctx)
	if ctx.err != nil {
		// Drop whatever the failed walk left behind so the context can be
		// reused.
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Eval evaluates the expression with ctx. It is shorthand for ctx.Eval(e).
func (e *Expr) Eval(ctx *Context) *big.Float {
	return ctx.Eval(e)
}

// Result returns the result obtained after evaluating an expression.
// Panics if ctx has not been used to evaluate an expression. Returns nil if
// an error occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("arith: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("arith: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad tree?)")
	}
}

// Err returns the first error that occurred while evaluating an expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may
// be modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached literal value from its text. The tokenizer
// validates literals, so parsing here cannot fail.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		panic("arith: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch {
	case n.op == nil:
		ctx.push().Set(ctx.num(n.name))
	case n.op.Eval == nil:
		return n.call(ctx)
	case n.left == nil:
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		return n.op.Eval(v, nil, v)
	default:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		return n.op.Eval(l, l, r)
	}
	return nil
}

// call resolves a call-by-name node through the context's function set and
// applies the function to the evaluated operand.
func (n *node) call(ctx *Context) error {
	if n.left != nil {
		return &UnknownFuncError{Name: n.name, Binary: true}
	}
	fn := ctx.funcs[n.name]
	if fn == nil {
		return &UnknownFuncError{Name: n.name}
	}
	if err := n.right.eval(ctx); err != nil {
		return err
	}
	v := ctx.top()
	return fn(v, v)
}

// Eval is a shortcut to parse an expression and return its result using the
// builtin operator table and the default function set.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}
