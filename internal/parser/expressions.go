package parser

import (
	"strconv"

	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/token"
)

// The expression cascade. One function per precedence level, highest to
// lowest binding: unary, '* / %', '+ -', relationals, equality, '&&',
// '||'. Every binary operator is left-associative: each level loops,
// folding the growing left subtree.

// parseCondition parses the lowest-precedence expression form, usable
// wherever a boolean-like value is consumed.
func (p *Parser) parseCondition() (ast.Expression, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == token.OR {
		opTok := p.current()
		if err := p.consume(token.OR); err != nil {
			return nil, err
		}
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		cond := &ast.Condition{NodeInfo: p.node(), Op: opTok, Left: left, Right: right}
		ast.Adopt(cond, left, right)
		left = cond
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == token.AND {
		opTok := p.current()
		if err := p.consume(token.AND); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		cond := &ast.Condition{NodeInfo: p.node(), Op: opTok, Left: left, Right: right}
		ast.Adopt(cond, left, right)
		left = cond
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.current()
		if opTok.Kind != token.EQ && opTok.Kind != token.NOT_EQ {
			return left, nil
		}
		if err := p.consume(opTok.Kind); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		cond := &ast.Condition{NodeInfo: p.node(), Op: opTok, Left: left, Right: right}
		ast.Adopt(cond, left, right)
		left = cond
	}
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.current()
		switch opTok.Kind {
		case token.LT, token.GT, token.LTE, token.GTE:
		default:
			return left, nil
		}
		if err := p.consume(opTok.Kind); err != nil {
			return nil, err
		}
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cond := &ast.Condition{NodeInfo: p.node(), Op: opTok, Left: left, Right: right}
		ast.Adopt(cond, left, right)
		left = cond
	}
}

// parseExpression parses the additive level, the highest expression form
// assignments and declarations accept.
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.current()
		if opTok.Kind != token.PLUS && opTok.Kind != token.MINUS {
			return left, nil
		}
		if err := p.consume(opTok.Kind); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		binOp := &ast.BinaryOp{NodeInfo: p.node(), Op: opTok, Left: left, Right: right}
		ast.Adopt(binOp, left, right)
		left = binOp
	}
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.current()
		switch opTok.Kind {
		case token.ASTERISK, token.SLASH, token.PERCENT:
		default:
			return left, nil
		}
		if err := p.consume(opTok.Kind); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		binOp := &ast.BinaryOp{NodeInfo: p.node(), Op: opTok, Left: left, Right: right}
		ast.Adopt(binOp, left, right)
		left = binOp
	}
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case token.PLUS, token.MINUS, token.BANG:
		if err := p.consume(tok.Kind); err != nil {
			return nil, err
		}
		expr, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		unary := &ast.UnaryOp{NodeInfo: p.node(), Op: tok, Expr: expr}
		ast.Adopt(unary, expr)
		return unary, nil
	case token.INT_LITERAL:
		if err := p.consume(token.INT_LITERAL); err != nil {
			return nil, err
		}
		value, _ := strconv.Atoi(tok.Lexeme)
		return &ast.Integer{NodeInfo: p.node(), Token: tok, Value: value}, nil
	case token.IDENTIFIER:
		if err := p.consume(token.IDENTIFIER); err != nil {
			return nil, err
		}
		return &ast.Identifier{NodeInfo: p.node(), Token: tok}, nil
	case token.LPAREN:
		if err := p.consume(token.LPAREN); err != nil {
			return nil, err
		}
		expr, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.unexpected("expression")
	}
}
