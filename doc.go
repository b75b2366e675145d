// Package arith evaluates flat arithmetic expressions.
//
// An expression is a sequence of numbers, operator symbols, and parenthesized
// groups, like "1 + 2*(3 - 0.5)". Rather than parsing with a grammar, the
// package tokenizes the input into a flat sequence and then rebalances it
// into an operation tree by repeatedly splitting at the rightmost
// loosest-binding operator, so "1+2*3" becomes (1)+((2)*(3)) and "10-2-3"
// becomes ((10)-(2))-(3).
//
// The operator table is open: any symbol without a registered table row is
// treated as the name of a one-argument function, so "sqrt(2)" and "sqrt 2"
// both call sqrt. Function names resolve through the evaluation context,
// which carries a default set built on bigfloat.
//
// Arithmetic runs on big.Float values at the context's precision. Division
// is always real division; 4/5 is 0.8.
package arith
