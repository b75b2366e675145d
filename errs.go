package arith

import (
	"math/big"
	"strconv"
)

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the tokenizer was accumulating when it became
	// invalid.
	Text string
	// Kind is the type of token being scanned, currently always "number".
	Kind string
	// Col is the rune column of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the rune column of the offending bracket, or of the end of
	// input for an unclosed open bracket.
	Col int
	// Left and Right are the unmatched brackets. Exactly one is set.
	Left  string
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// DepthError is an error indicating that groups nest more deeply than the
// tokenizer allows. It implements InputError.
type DepthError struct {
	// Col is the rune column of the open bracket that exceeded the limit.
	Col int
	// Limit is the maximum nesting depth.
	Limit int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Limit)+" groups")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// MissingOperatorError is an error indicating a token sequence with more
// than one element but no operator to split it on, e.g. two adjacent
// numbers. It implements InputError.
type MissingOperatorError struct {
	// Col is the rune column of the start of the sequence.
	Col int
}

func (err *MissingOperatorError) Error() string {
	return errpos(err.Col, "missing operator between terms")
}

func (err *MissingOperatorError) Pos() int {
	return err.Col
}

// MissingOperandError is an error indicating an operator with no operand on
// a side that requires one. It implements InputError.
type MissingOperandError struct {
	// Col is the rune column of the operator.
	Col int
	// Operator is the operator symbol.
	Operator string
	// Right indicates that the right operand was the missing one.
	Right bool
}

func (err *MissingOperandError) Error() string {
	side := "left"
	if err.Right {
		side = "right"
	}
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no "+side+" operand")
}

func (err *MissingOperandError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty expression or group.
// It implements InputError.
type EmptyExpressionError struct {
	// Col is the rune column at which the empty sequence was found.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "empty group")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// UnknownFuncError is an error from a symbol that has no operator table row
// and no resolvable function in the evaluation context.
type UnknownFuncError struct {
	// Name is the symbol that could not be resolved.
	Name string
	// Binary indicates the symbol was applied to two operands, which no
	// resolved function can accept.
	Binary bool
}

func (err *UnknownFuncError) Error() string {
	if err.Binary {
		return "unknown binary operator " + strconv.Quote(err.Name)
	}
	return "unknown function " + strconv.Quote(err.Name)
}

// DomainError is an error returned when an operation is applied to operands
// outside its domain, such as 0/0 or a negative base of an exponentiation.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Op is the operator or function name.
	Op string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Op
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from tokenizing or rebalancing invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to
	// and including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*MissingOperatorError)(nil)
	_ InputError = (*MissingOperandError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
