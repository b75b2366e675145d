package arith

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// MaxDepth is the maximum group nesting depth the tokenizer accepts before
// failing with a DepthError.
const MaxDepth = 500

// token is one element of the flat sequence the tokenizer produces: a
// numeric literal, an operator or identifier symbol, or the contents of one
// matched parenthesis pair.
type token struct {
	kind  tokenKind
	text  string
	group []token
	pos   int
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a numeric literal.
	tokenNum
	// tokenSym is an operator symbol or an identifier.
	tokenSym
	// tokenGroup is a parenthesized subsequence.
	tokenGroup
)

func (t token) String() string {
	switch t.kind {
	case tokenNum:
		return "num:" + t.text + "@" + strconv.Itoa(t.pos)
	case tokenSym:
		return "sym:" + t.text + "@" + strconv.Itoa(t.pos)
	case tokenGroup:
		v := make([]string, len(t.group))
		for i, s := range t.group {
			v[i] = s.String()
		}
		return "(" + strings.Join(v, " ") + ")@" + strconv.Itoa(t.pos)
	default:
		return "none@" + strconv.Itoa(t.pos)
	}
}

// tokenizer scans an expression one rune at a time, accumulating the token
// being built and keeping one pending sibling sequence per open bracket.
type tokenizer struct {
	src io.RuneScanner
	// ops is the set of registered operator symbols. A pending symbol that
	// is a registered operator ends when a digit follows it; any other
	// pending symbol absorbs the digit as part of an identifier.
	ops map[string]Op
	// stop is the set of whitespace runes that end the expression at
	// nesting depth zero.
	stop string

	buf    strings.Builder
	bufpos int
	num    bool
	dot    bool
	dig    bool

	rune int

	toks []token
	open []openGroup
}

// openGroup is the sibling sequence enclosing an unclosed bracket.
type openGroup struct {
	toks []token
	col  int
}

func tokenize(src io.RuneScanner, ops map[string]Op, stop string) ([]token, error) {
	z := tokenizer{src: src, ops: ops, stop: stop}
	return z.run()
}

func (z *tokenizer) run() ([]token, error) {
	for {
		r, sz, err := z.src.ReadRune()
		if sz > 0 {
			z.rune++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(z.open) == 0 && strings.ContainsRune(z.stop, r) {
			break
		}
		switch {
		case isSep(r):
			if err := z.flush(); err != nil {
				return nil, err
			}
		case r == '(':
			if err := z.flush(); err != nil {
				return nil, err
			}
			if len(z.open) >= MaxDepth {
				return nil, &DepthError{Col: z.rune, Limit: MaxDepth}
			}
			z.open = append(z.open, openGroup{toks: z.toks, col: z.rune})
			z.toks = nil
		case r == ')':
			if err := z.flush(); err != nil {
				return nil, err
			}
			if len(z.open) == 0 {
				return nil, &BracketError{Col: z.rune, Right: ")"}
			}
			up := z.open[len(z.open)-1]
			z.open = z.open[:len(z.open)-1]
			z.toks = append(up.toks, token{kind: tokenGroup, group: z.toks, pos: up.col})
		case '0' <= r && r <= '9', r == '.':
			if err := z.numeric(r); err != nil {
				return nil, err
			}
		default:
			if z.num {
				if err := z.flush(); err != nil {
					return nil, err
				}
			}
			if z.buf.Len() == 0 {
				z.bufpos = z.rune
			}
			z.buf.WriteRune(r)
		}
	}
	if err := z.flush(); err != nil {
		return nil, err
	}
	if len(z.open) > 0 {
		return nil, &BracketError{Col: z.rune, Left: "("}
	}
	return z.toks, nil
}

// numeric handles a digit or decimal point. It extends the literal in
// progress, starts a new literal if the pending symbol is empty or is a
// registered operator, and otherwise extends the pending identifier, which
// keeps a name like log2 one token.
func (z *tokenizer) numeric(r rune) error {
	switch {
	case z.num: // extend below
	case z.buf.Len() == 0:
		z.start()
	default:
		if _, ok := z.ops[z.buf.String()]; !ok {
			z.buf.WriteRune(r)
			return nil
		}
		if err := z.flush(); err != nil {
			return err
		}
		z.start()
	}
	z.buf.WriteRune(r)
	if r == '.' {
		if z.dot {
			return &LexError{Text: z.buf.String(), Kind: "number", Col: z.bufpos}
		}
		z.dot = true
	} else {
		z.dig = true
	}
	return nil
}

// start begins a numeric literal at the current rune.
func (z *tokenizer) start() {
	z.num = true
	z.dot = false
	z.dig = false
	z.bufpos = z.rune
}

// flush appends the pending literal or symbol, if any, to the current
// sibling sequence.
func (z *tokenizer) flush() error {
	if z.buf.Len() == 0 {
		return nil
	}
	text := z.buf.String()
	z.buf.Reset()
	if z.num {
		z.num = false
		if !z.dig {
			return &LexError{Text: text, Kind: "number", Col: z.bufpos}
		}
		z.toks = append(z.toks, token{kind: tokenNum, text: text, pos: z.bufpos})
		return nil
	}
	z.toks = append(z.toks, token{kind: tokenSym, text: text, pos: z.bufpos})
	return nil
}

// isSep reports whether r separates tokens without contributing one.
func isSep(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == ';'
}
