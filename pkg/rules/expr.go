package rules

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Expr is a compiled boolean expression over positional domain-type operands.
// Operand i is true when the i-th declared type of the rule is present.
type Expr interface {
	Eval(present []bool) bool
	String() string
	format(names []string) string
}

type operand int

func (o operand) Eval(present []bool) bool { return present[o] }
func (o operand) String() string           { return strconv.Itoa(int(o)) }
func (o operand) format(names []string) string {
	return names[o]
}

type not struct{ x Expr }

func (n not) Eval(present []bool) bool { return !n.x.Eval(present) }
func (n not) String() string           { return "not " + n.x.String() }
func (n not) format(names []string) string {
	return "not " + n.x.format(names)
}

type binary struct {
	op   string
	l, r Expr
}

func (b binary) Eval(present []bool) bool {
	if b.op == "and" {
		return b.l.Eval(present) && b.r.Eval(present)
	}
	return b.l.Eval(present) || b.r.Eval(present)
}

func (b binary) String() string {
	return "(" + b.l.String() + " " + b.op + " " + b.r.String() + ")"
}

func (b binary) format(names []string) string {
	return "(" + b.l.format(names) + " " + b.op + " " + b.r.format(names) + ")"
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// SyntaxError locates a problem in an expression string.
type SyntaxError struct {
	Expr   string
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expression %q at offset %d: %s", e.Expr, e.Pos, e.Reason)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scan advances from i while accept holds, returning the end offset.
func scan(src string, i int, accept func(rune) bool) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !accept(r) {
			break
		}
		i += size
	}
	return i
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			return nil, &SyntaxError{Expr: src, Pos: i, Reason: "invalid UTF-8"}
		case unicode.IsSpace(r):
			i += size
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i += size
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i += size
		case r >= '0' && r <= '9':
			j := scan(src, i, func(r rune) bool { return r >= '0' && r <= '9' })
			if k := scan(src, j, isWordRune); k > j {
				return nil, &SyntaxError{Expr: src, Pos: i, Reason: fmt.Sprintf("malformed operand %q", src[i:k])}
			}
			toks = append(toks, token{tokInt, src[i:j], i})
			i = j
		case unicode.IsLetter(r):
			j := scan(src, i, isWordRune)
			word := src[i:j]
			switch strings.ToLower(word) {
			case "and":
				toks = append(toks, token{tokAnd, word, i})
			case "or":
				toks = append(toks, token{tokOr, word, i})
			case "not":
				toks = append(toks, token{tokNot, word, i})
			default:
				return nil, &SyntaxError{Expr: src, Pos: i, Reason: fmt.Sprintf("unknown operator %q", word)}
			}
			i = j
		default:
			return nil, &SyntaxError{Expr: src, Pos: i, Reason: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

type parser struct {
	src  string
	toks []token
	pos  int
	n    int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(t token, format string, args ...any) error {
	return &SyntaxError{Expr: p.src, Pos: t.pos, Reason: fmt.Sprintf(format, args...)}
}

// or := and ("or" and)*
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binary{op: "or", l: left, r: right}
	}
	return left, nil
}

// and := unary ("and" unary)*
func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary{op: "and", l: left, r: right}
	}
	return left, nil
}

// unary := "not" unary | primary
func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokNot {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return not{x: x}, nil
	}
	return p.parsePrimary()
}

// primary := INT | "(" or ")"
func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		idx, err := strconv.Atoi(t.text)
		if err != nil || idx >= p.n {
			return nil, p.fail(t, "index %s out of range for %d declared domains", t.text, p.n)
		}
		return operand(idx), nil
	case tokLParen:
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.fail(closing, "expected ')'")
		}
		return x, nil
	case tokEOF:
		return nil, p.fail(t, "unexpected end of expression")
	default:
		return nil, p.fail(t, "unexpected %q", t.text)
	}
}

// Compile parses src into an Expr over n positional operands. Operators are
// "and", "or" and "not" with precedence not > and > or; parentheses group.
// Out-of-range indices and unknown operators are compile errors.
func Compile(src string, n int) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks, n: n}
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.fail(t, "unexpected %q after expression", t.text)
	}
	return x, nil
}
