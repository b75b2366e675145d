package arith_test

import (
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/ranksplit/arith"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"real", "1.5", 1.5},
		{"neg-literal", "-5+2", -3},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "10-2-3", 5},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5", 0.8},
		{"div-real", "1/2", 0.5},
		{"precedence", "1+2*3", 7},
		{"group", "(1+2)*3", 9},
		{"redundant-parens", "((4))", 4},
		{"pow", "2+3^2", 11},
		{"pow-stars", "2**3", 8},
		{"pow-large", "2^10", 1024},
		{"pow-left-assoc", "4^3^2", 4096},
		{"neg-group", "-(5+2)", -7},
		{"sqrt", "sqrt(4)", 2},
		{"sqrt-bare", "sqrt 4", 2},
		{"exp", "exp 1", math.E},
		{"log", "log 1000", 3},
		{"abs", "abs(2-5)", 3},
		{"neg-fn", "neg(4)", -4},
		{"frac", ".5+.25", 0.75},
	}
	ctx := arith.NewContext(arith.Prec(64))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := arith.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			ctx := ctx.Clone()
			r := a.Eval(ctx)
			if ctx.Err() != nil {
				t.Error("evaluation error:", ctx.Err())
			}
			if r == nil {
				t.Fatal("nil result")
			}
			if q := ctx.Result(); r.Cmp(q) != 0 {
				t.Errorf("different results: Eval returned %g, Result returned %g", r, q)
			}
			if f, _ := r.Float64(); f != c.r {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestEvalString(t *testing.T) {
	r, err := arith.EvalString("1+2*3")
	if err != nil {
		t.Fatal("evaluation error:", err)
	}
	if f, _ := r.Float64(); f != 7 {
		t.Errorf("wrong result: want 7, got %g", r)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"unmatched-open", "(1+2", &arith.BracketError{}},
		{"unmatched-close", "1+2)", &arith.BracketError{}},
		{"adjacent-nums", "1 2", &arith.MissingOperatorError{}},
		{"no-rhs", "1+", &arith.MissingOperandError{}},
		{"no-lhs", "*2", &arith.MissingOperandError{}},
		{"two-dots", "1.2.3", &arith.LexError{}},
		{"empty", "", &arith.EmptyExpressionError{}},
		{"unknown-fn", "nosuch(1)", &arith.UnknownFuncError{}},
		{"unknown-binary", "2 e3 4", &arith.UnknownFuncError{}},
		{"div-zero", "0/0", &arith.DomainError{}},
		{"div-inf-ish", "1/0/(1/0)", &arith.DomainError{}},
		{"pow-neg-base", "(0-1)^0.5", &arith.DomainError{}},
		{"sqrt-neg", "sqrt(0-1)", &arith.DomainError{}},
		{"ln-neg", "ln(0-1)", &arith.DomainError{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := arith.EvalString(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave no error (result %g)", c.src, r)
			}
			if r != nil {
				t.Errorf("evaluating %q gave non-nil result %g with error %v", c.src, r, err)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.want) {
				t.Errorf("evaluating %q: want error type %T, got %#v", c.src, c.want, err)
			}
		})
	}
}

func TestContextReuse(t *testing.T) {
	ctx := arith.NewContext()
	a, err := arith.ParseString("1+1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := arith.ParseString("0/0")
	if err != nil {
		t.Fatal(err)
	}
	if r := a.Eval(ctx); r == nil {
		t.Fatal("first evaluation failed:", ctx.Err())
	}
	if r := b.Eval(ctx); r != nil {
		t.Fatalf("error expression gave result %g", r)
	}
	if ctx.Err() == nil {
		t.Fatal("error expression left no error")
	}
	// An errored evaluation must not poison the context.
	r := a.Eval(ctx)
	if ctx.Err() != nil {
		t.Fatal("reused context kept error:", ctx.Err())
	}
	if f, _ := r.Float64(); f != 2 {
		t.Errorf("wrong result after reuse: want 2, got %g", r)
	}
}

func TestSetFunc(t *testing.T) {
	double := func(z, x *big.Float) error {
		z.Add(x, x)
		return nil
	}
	ctx := arith.NewContext(arith.SetFunc("double", double))
	a, err := arith.ParseString("double 21")
	if err != nil {
		t.Fatal(err)
	}
	r := a.Eval(ctx)
	if ctx.Err() != nil {
		t.Fatal("evaluation error:", ctx.Err())
	}
	if f, _ := r.Float64(); f != 42 {
		t.Errorf("wrong result: want 42, got %g", r)
	}
	// Removing a default makes its name unresolvable.
	ctx = arith.NewContext(arith.SetFunc("sqrt", nil))
	a, err = arith.ParseString("sqrt 4")
	if err != nil {
		t.Fatal(err)
	}
	if r := a.Eval(ctx); r != nil {
		t.Fatalf("removed function gave result %g", r)
	}
	if _, ok := ctx.Err().(*arith.UnknownFuncError); !ok {
		t.Errorf("error %#v is not *UnknownFuncError", ctx.Err())
	}
}

func TestCustomOpEval(t *testing.T) {
	avg := arith.Op{Rank: 1, Left: 1, Right: 1, Eval: func(z, x, y *big.Float) error {
		z.Add(x, y)
		z.Quo(z, big.NewFloat(2))
		return nil
	}}
	a, err := arith.ParseString("1~3", arith.ParseOp("~", avg))
	if err != nil {
		t.Fatal(err)
	}
	ctx := arith.NewContext()
	r := a.Eval(ctx)
	if ctx.Err() != nil {
		t.Fatal("evaluation error:", ctx.Err())
	}
	if f, _ := r.Float64(); f != 2 {
		t.Errorf("wrong result: want 2, got %g", r)
	}
}

func TestStopOn(t *testing.T) {
	in := strings.NewReader("1+2\n3*4\n")
	var got []float64
	for in.Len() > 0 {
		a, err := arith.Parse(in, arith.StopOn('\n'))
		if err != nil {
			t.Fatal(err)
		}
		ctx := arith.NewContext()
		r := a.Eval(ctx)
		if ctx.Err() != nil {
			t.Fatal("evaluation error:", ctx.Err())
		}
		f, _ := r.Float64()
		got = append(got, f)
	}
	if !reflect.DeepEqual(got, []float64{3, 12}) {
		t.Errorf("wrong results: want [3 12], got %v", got)
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		ctx := arith.NewContext(arith.Prec(64))
		a, err := arith.ParseString("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(ctx)
		}
	})
	b.Run("tree", func(b *testing.B) {
		b.ReportAllocs()
		ctx := arith.NewContext(arith.Prec(64))
		a, err := arith.ParseString("1+2*(3-4/5)")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(ctx)
		}
	})
}
