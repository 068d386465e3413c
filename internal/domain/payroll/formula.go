package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Formula is a parsed arithmetic expression over the single variable x.
//
// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = "-" unary | primary
//	primary = number | "x" | "(" expr ")"
type Formula struct {
	src  string
	root node
}

type node interface {
	eval(x decimal.Decimal) (decimal.Decimal, error)
}

type numberNode struct{ value decimal.Decimal }

type varNode struct{}

type negNode struct{ operand node }

type binaryNode struct {
	op          byte
	left, right node
}

func (n numberNode) eval(decimal.Decimal) (decimal.Decimal, error) { return n.value, nil }

func (varNode) eval(x decimal.Decimal) (decimal.Decimal, error) { return x, nil }

func (n negNode) eval(x decimal.Decimal) (decimal.Decimal, error) {
	v, err := n.operand.eval(x)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Neg(), nil
}

func (n binaryNode) eval(x decimal.Decimal) (decimal.Decimal, error) {
	left, err := n.left.eval(x)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := n.right.eval(x)
	if err != nil {
		return decimal.Zero, err
	}
	switch n.op {
	case '+':
		return left.Add(right), nil
	case '-':
		return left.Sub(right), nil
	case '*':
		return left.Mul(right), nil
	default:
		if right.IsZero() {
			return decimal.Zero, ErrFormulaDivideByZero
		}
		return left.Div(right), nil
	}
}

// ParseFormula parses src. Anything outside the grammar is rejected.
func ParseFormula(src string) (*Formula, error) {
	p := &formulaParser{src: src}
	p.skipSpace()
	if p.done() {
		return nil, fmt.Errorf("%w: empty expression", ErrFormulaSyntax)
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return &Formula{src: src, root: root}, nil
}

func (f *Formula) Eval(x decimal.Decimal) (decimal.Decimal, error) {
	return f.root.eval(x)
}

func (f *Formula) String() string {
	return f.src
}

// EvalFormula parses and evaluates src in one step.
func EvalFormula(src string, x decimal.Decimal) (decimal.Decimal, error) {
	f, err := ParseFormula(src)
	if err != nil {
		return decimal.Zero, err
	}
	return f.Eval(x)
}

type formulaParser struct {
	src   string
	pos   int
	depth int
}

const maxFormulaDepth = 64

func (p *formulaParser) done() bool { return p.pos >= len(p.src) }

func (p *formulaParser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *formulaParser) peek() byte {
	p.skipSpace()
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *formulaParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrFormulaSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *formulaParser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *formulaParser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *formulaParser) parseUnary() (node, error) {
	if p.peek() != '-' {
		return p.parsePrimary()
	}
	p.pos++
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxFormulaDepth {
		return nil, p.errorf("expression nested too deeply")
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return negNode{operand: operand}, nil
}

func (p *formulaParser) parsePrimary() (node, error) {
	c := p.peek()
	switch {
	case c == 0:
		return nil, p.errorf("unexpected end of expression")
	case c == 'x' || c == 'X':
		p.pos++
		return varNode{}, nil
	case c == '(':
		p.pos++
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxFormulaDepth {
			return nil, p.errorf("expression nested too deeply")
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *formulaParser) parseNumber() (node, error) {
	start := p.pos
	seenDot := false
	for !p.done() {
		c := p.src[p.pos]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		p.pos++
	}
	literal := p.src[start:p.pos]
	if strings.Trim(literal, ".") == "" {
		return nil, p.errorf("invalid number %q", literal)
	}
	value, err := decimal.NewFromString(literal)
	if err != nil {
		return nil, p.errorf("invalid number %q", literal)
	}
	return numberNode{value: value}, nil
}
