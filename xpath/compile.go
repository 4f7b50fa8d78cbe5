// Package xpath compiles and evaluates path expressions over document
// trees built by the model package.
//
// The language covers the location-path subset this document shape
// needs: the child, descendant-or-self, self, parent, ancestor,
// attribute, following-sibling and preceding-sibling axes, name and
// wildcard node tests, and predicates composed of attribute equality
// tests, and/or logic and relative existence sub-paths.
//
//	/                                        the document root
//	//ConceptNameCodeSequence                every element of that name
//	//ConceptNameCodeSequence/@CodeValue     an attribute of each match
//	//Seq[@CodeValue='45_01004001' and @CodingSchemeDesignator='99_PHILIPS']
//	../following-sibling::Item[Nested/@Flag='Y']
package xpath

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed path expression. It is returned by
// Compile; evaluation is never attempted for invalid expressions.
type SyntaxError struct {
	Expression string
	Position   int
	Message    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xpath: syntax error at position %d in %q: %s",
		e.Position, e.Expression, e.Message)
}

type axis int

const (
	axisChild axis = iota
	axisSelf
	axisParent
	axisAncestor
	axisAttribute
	axisDescendantOrSelf
	axisFollowingSibling
	axisPrecedingSibling
)

var axisNames = map[string]axis{
	"child":              axisChild,
	"self":               axisSelf,
	"parent":             axisParent,
	"ancestor":           axisAncestor,
	"attribute":          axisAttribute,
	"descendant-or-self": axisDescendantOrSelf,
	"following-sibling":  axisFollowingSibling,
	"preceding-sibling":  axisPrecedingSibling,
}

// step is one location step: axis, node test and predicates.
type step struct {
	axis     axis
	anywhere bool // step was introduced by '//'
	name     string
	wildcard bool
	preds    []predExpr
}

// predExpr is a compiled predicate expression.
type predExpr interface {
	isPred()
}

// logicalExpr combines two predicate expressions with and/or.
type logicalExpr struct {
	op    string // "and" or "or"
	left  predExpr
	right predExpr
}

func (*logicalExpr) isPred() {}

// comparisonExpr is a relative sub-path, optionally compared against a
// string literal. Without a literal it is an existence test.
type comparisonExpr struct {
	path       *Expr
	literal    string
	hasLiteral bool
}

func (*comparisonExpr) isPred() {}

// Expr is a compiled path expression. It is immutable and safe to
// share and reuse across any number of context nodes and documents.
type Expr struct {
	source   string
	absolute bool
	steps    []step
}

// String returns the original expression text.
func (e *Expr) String() string {
	return e.source
}

// Compile parses a path expression. A *SyntaxError is returned for
// malformed input.
func Compile(expression string) (*Expr, error) {
	p := &parser{lexer: newLexer(expression)}
	if err := p.next(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.tok.text)
	}
	return expr, nil
}

// MustCompile is Compile for expressions known to be valid; it panics
// on error.
func MustCompile(expression string) *Expr {
	expr, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return expr
}

// --- lexer ---

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokSlash
	tokDoubleSlash
	tokAt
	tokName
	tokStar
	tokDot
	tokDotDot
	tokAxisSep // ::
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokEquals
	tokLiteral
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || (c >= '0' && c <= '9')
}

func (l *lexer) lex() (token, error) {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '/':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '/' {
			l.pos++
			return token{kind: tokDoubleSlash, text: "//", pos: start}, nil
		}
		return token{kind: tokSlash, text: "/", pos: start}, nil
	case c == '@':
		l.pos++
		return token{kind: tokAt, text: "@", pos: start}, nil
	case c == '*':
		l.pos++
		return token{kind: tokStar, text: "*", pos: start}, nil
	case c == '.':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '.' {
			l.pos++
			return token{kind: tokDotDot, text: "..", pos: start}, nil
		}
		return token{kind: tokDot, text: ".", pos: start}, nil
	case c == ':':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == ':' {
			l.pos += 2
			return token{kind: tokAxisSep, text: "::", pos: start}, nil
		}
		return token{}, &SyntaxError{Expression: l.input, Position: start, Message: "unexpected ':'"}
	case c == '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", pos: start}, nil
	case c == ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case c == '=':
		l.pos++
		return token{kind: tokEquals, text: "=", pos: start}, nil
	case c == '\'' || c == '"':
		quote := c
		l.pos++
		var b strings.Builder
		for l.pos < len(l.input) && l.input[l.pos] != quote {
			b.WriteByte(l.input[l.pos])
			l.pos++
		}
		if l.pos >= len(l.input) {
			return token{}, &SyntaxError{Expression: l.input, Position: start, Message: "unterminated string literal"}
		}
		l.pos++ // closing quote
		return token{kind: tokLiteral, text: b.String(), pos: start}, nil
	case isNameStart(c):
		for l.pos < len(l.input) && isNameChar(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokName, text: l.input[start:l.pos], pos: start}, nil
	default:
		return token{}, &SyntaxError{Expression: l.input, Position: start,
			Message: fmt.Sprintf("unexpected character %q", c)}
	}
}

// --- parser ---

type parser struct {
	lexer *lexer
	tok   token
}

func (p *parser) next() error {
	tok, err := p.lexer.lex()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Expression: p.lexer.input,
		Position:   p.tok.pos,
		Message:    fmt.Sprintf(format, args...),
	}
}

// parseExpr parses a (possibly absolute) location path.
func (p *parser) parseExpr() (*Expr, error) {
	expr := &Expr{source: p.lexer.input}

	anywhere := false
	switch p.tok.kind {
	case tokSlash:
		expr.absolute = true
		if err := p.next(); err != nil {
			return nil, err
		}
		if !p.stepAhead() {
			// Bare "/" selects the document root.
			return expr, nil
		}
	case tokDoubleSlash:
		expr.absolute = true
		anywhere = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	for {
		s, err := p.parseStep(anywhere)
		if err != nil {
			return nil, err
		}
		expr.steps = append(expr.steps, s)

		switch p.tok.kind {
		case tokSlash:
			anywhere = false
		case tokDoubleSlash:
			anywhere = true
		default:
			return expr, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
}

// stepAhead reports whether the current token can begin a step.
func (p *parser) stepAhead() bool {
	switch p.tok.kind {
	case tokName, tokStar, tokAt, tokDot, tokDotDot:
		return true
	default:
		return false
	}
}

func (p *parser) parseStep(anywhere bool) (step, error) {
	s := step{anywhere: anywhere}

	switch p.tok.kind {
	case tokDot:
		s.axis = axisSelf
		s.wildcard = true
		if err := p.next(); err != nil {
			return s, err
		}
		return s, nil

	case tokDotDot:
		s.axis = axisParent
		s.wildcard = true
		if err := p.next(); err != nil {
			return s, err
		}
		return s, nil

	case tokAt:
		s.axis = axisAttribute
		if err := p.next(); err != nil {
			return s, err
		}

	case tokName:
		// A name may be an axis specifier when followed by "::".
		name := p.tok.text
		mark := *p.lexer
		markTok := p.tok
		if err := p.next(); err != nil {
			return s, err
		}
		if p.tok.kind == tokAxisSep {
			a, ok := axisNames[name]
			if !ok {
				p.tok = markTok
				return s, p.errorf("unknown axis %q", name)
			}
			s.axis = a
			if err := p.next(); err != nil {
				return s, err
			}
		} else {
			// Plain child-axis name test; rewind to re-read the test.
			*p.lexer = mark
			p.tok = markTok
			s.axis = axisChild
		}

	case tokStar:
		s.axis = axisChild

	default:
		return s, p.errorf("expected a location step, got %q", p.tok.text)
	}

	// Node test.
	switch p.tok.kind {
	case tokName:
		s.name = p.tok.text
	case tokStar:
		s.wildcard = true
	default:
		return s, p.errorf("expected a name or '*', got %q", p.tok.text)
	}
	if err := p.next(); err != nil {
		return s, err
	}

	// Predicates.
	for p.tok.kind == tokLBracket {
		if err := p.next(); err != nil {
			return s, err
		}
		pred, err := p.parseOr()
		if err != nil {
			return s, err
		}
		if p.tok.kind != tokRBracket {
			return s, p.errorf("expected ']', got %q", p.tok.text)
		}
		if err := p.next(); err != nil {
			return s, err
		}
		s.preds = append(s.preds, pred)
	}
	return s, nil
}

func (p *parser) parseOr() (predExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokName && p.tok.text == "or" {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (predExpr, error) {
	left, err := p.parsePredPrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokName && p.tok.text == "and" {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parsePredPrimary()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parsePredPrimary() (predExpr, error) {
	if p.tok.kind == tokLParen {
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ')', got %q", p.tok.text)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return inner, nil
	}

	if !p.stepAhead() && p.tok.kind != tokSlash && p.tok.kind != tokDoubleSlash {
		return nil, p.errorf("expected a path in predicate, got %q", p.tok.text)
	}
	path, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	cmp := &comparisonExpr{path: path}
	if p.tok.kind == tokEquals {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLiteral {
			return nil, p.errorf("expected a string literal after '=', got %q", p.tok.text)
		}
		cmp.literal = p.tok.text
		cmp.hasLiteral = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return cmp, nil
}
