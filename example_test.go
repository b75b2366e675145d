package arith_test

import (
	"fmt"
	"math/big"

	"github.com/ranksplit/arith"
)

func Example() {
	ctx := arith.NewContext()
	a, _ := arith.ParseString("1 + 2*(3 - 0.5)")
	fmt.Println(a)
	fmt.Println(ctx.Format(a.Eval(ctx)))

	// Output:
	// ((1) + ((2) * ((3) - (0.5))))
	// 6.00
}

func ExampleEvalString() {
	r, _ := arith.EvalString("2+3^2")
	fmt.Println(arith.FormatRounded(r, 0))

	// Output:
	// 11
}

func ExampleFormatRounded() {
	fmt.Println(arith.FormatRounded(big.NewFloat(3.14159), 2))
	fmt.Println(arith.FormatRounded(big.NewFloat(3.6), 0))

	// Output:
	// 3.14
	// 4
}

func ExampleParseOp() {
	rem := arith.Op{Rank: 1, Left: 1, Right: 1, Eval: func(z, x, y *big.Float) error {
		xi, _ := x.Int64()
		yi, _ := y.Int64()
		z.SetInt64(xi % yi)
		return nil
	}}
	a, _ := arith.ParseString("7%2+1", arith.ParseOp("%", rem))
	ctx := arith.NewContext(arith.Round(0))
	fmt.Println(ctx.Format(a.Eval(ctx)))

	// Output:
	// 2
}
