package arith_test

import (
	"math/big"
	"testing"

	"github.com/ranksplit/arith"
)

func TestFormatRounded(t *testing.T) {
	cases := []struct {
		x      float64
		digits int
		want   string
	}{
		{3.14159, 2, "3.14"},
		{3.14159, 4, "3.1416"},
		{3.6, 0, "4"},
		{3.4, 0, "3"},
		{-3.6, 0, "-4"},
		{3.6, -1, "4"},
		{2, 3, "2.000"},
		{0.5, 1, "0.5"},
	}
	for _, c := range cases {
		if got := arith.FormatRounded(big.NewFloat(c.x), c.digits); got != c.want {
			t.Errorf("FormatRounded(%g, %d): want %q, got %q", c.x, c.digits, c.want, got)
		}
	}
}

func TestContextFormat(t *testing.T) {
	x := big.NewFloat(2)
	if got := arith.NewContext().Format(x); got != "2.00" {
		t.Errorf("default rounding: want %q, got %q", "2.00", got)
	}
	if got := arith.NewContext(arith.Round(3)).Format(x); got != "2.000" {
		t.Errorf("Round(3): want %q, got %q", "2.000", got)
	}
	if got := arith.NewContext(arith.Round(0)).Format(x); got != "2" {
		t.Errorf("Round(0): want %q, got %q", "2", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	r, err := arith.EvalString("10/3")
	if err != nil {
		t.Fatal(err)
	}
	s := arith.FormatRounded(r, 2)
	if s != "3.33" {
		t.Fatalf("want %q, got %q", "3.33", s)
	}
	// The formatted result evaluates back to itself as a trivial
	// expression.
	r2, err := arith.EvalString(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := arith.FormatRounded(r2, 2); got != s {
		t.Errorf("round trip changed the value: %q to %q", s, got)
	}
}
