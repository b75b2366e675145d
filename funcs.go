package arith

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a one-argument function that a bare symbol can resolve to at
// evaluation time. It must set z to its result computed from x; z may alias
// x. An argument outside the function's domain is reported by returning an
// error, usually a *DomainError.
type Func func(z, x *big.Float) error

// defaultFuncs is the function set a new context starts with.
var defaultFuncs = map[string]Func{
	"exp": Monadic("exp", bigfloat.Exp),
	"ln":  Monadic("ln", bigfloat.Log),
	"log": Monadic("log", func(z, x *big.Float) *big.Float {
		bigfloat.Log(z, x)
		d := new(big.Float).SetPrec(z.Prec())
		bigfloat.Log(d, big.NewFloat(10).SetPrec(z.Prec()))
		return z.Quo(z, d)
	}),
	"sqrt": Monadic("sqrt", (*big.Float).Sqrt),
	"abs":  Monadic("abs", (*big.Float).Abs),
	"neg":  Monadic("neg", (*big.Float).Neg),
}

// DefaultFuncs returns a copy of the default function set, suitable as a
// starting point for SetFuncs.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(defaultFuncs))
	for k, v := range defaultFuncs {
		m[k] = v
	}
	return m
}

// Monadic wraps a function in the math/big in-place style into a Func. f
// must set z to its result; its return value is ignored. If f is called on
// an argument outside its domain, it should panic with big.ErrNaN, as the
// big and bigfloat functions do; the wrapper converts such panics into a
// *DomainError naming name.
func Monadic(name string, f func(z, x *big.Float) *big.Float) Func {
	return func(z, x *big.Float) (err error) {
		arg := new(big.Float).Copy(x)
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			e, ok := r.(error)
			if !ok || !errors.As(e, new(big.ErrNaN)) {
				panic(r)
			}
			err = &DomainError{X: arg, Op: name}
		}()
		// Apply to the copy so that f need not be alias-safe.
		f(z, arg)
		return nil
	}
}
