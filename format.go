package arith

import "math/big"

// DefaultRound is the number of decimal places a new context formats
// results with when no Round option is given.
const DefaultRound = 2

// FormatRounded formats x with the given number of decimal places, or as a
// rounded integer with no decimal point when digits <= 0.
func FormatRounded(x *big.Float, digits int) string {
	if digits < 0 {
		digits = 0
	}
	return x.Text('f', digits)
}

// Format formats x with the context's default rounding precision.
func (ctx *Context) Format(x *big.Float) string {
	return FormatRounded(x, ctx.digits)
}
