package parser

import (
	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch tok := p.current(); tok.Kind {
	case token.INT:
		statement, err := p.parseDeclare()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.SEMICOLON); err != nil {
			return nil, err
		}
		return statement, nil
	case token.IDENTIFIER:
		statement, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.SEMICOLON); err != nil {
			return nil, err
		}
		return statement, nil
	case token.RETURN:
		statement, err := p.parseReturn()
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.SEMICOLON); err != nil {
			return nil, err
		}
		return statement, nil
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.LBRACE:
		return p.parseStatementBlock()
	case token.SEMICOLON:
		empty := &ast.Empty{NodeInfo: p.node(), Token: tok}
		if err := p.consume(token.SEMICOLON); err != nil {
			return nil, err
		}
		return empty, nil
	default:
		return nil, p.unexpected("statement")
	}
}

// parseDeclare parses 'type IDENT' with an optional '= expression'
// initializer.
func (p *Parser) parseDeclare() (ast.Statement, error) {
	typeTok := p.current()
	if err := p.consume(token.INT); err != nil {
		return nil, err
	}

	identTok := p.current()
	if err := p.consume(token.IDENTIFIER); err != nil {
		return nil, err
	}
	ident := &ast.Identifier{NodeInfo: p.node(), Token: identTok}

	decl := &ast.Declare{NodeInfo: p.node(), Type: typeTok, Ident: ident}
	ast.Adopt(decl, ident)

	if p.current().Kind != token.ASSIGN {
		return decl, nil
	}

	opTok := p.current()
	if err := p.consume(token.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	declAssign := &ast.DeclareAssign{NodeInfo: p.node(), Decl: decl, Op: opTok, Expr: expr}
	ast.Adopt(declAssign, decl, expr)
	return declAssign, nil
}

func (p *Parser) parseAssign() (*ast.Assign, error) {
	identTok := p.current()
	if err := p.consume(token.IDENTIFIER); err != nil {
		return nil, err
	}
	ident := &ast.Identifier{NodeInfo: p.node(), Token: identTok}

	opTok := p.current()
	if err := p.consume(token.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	assign := &ast.Assign{NodeInfo: p.node(), Ident: ident, Op: opTok, Expr: expr}
	ast.Adopt(assign, ident, expr)
	return assign, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	retTok := p.current()
	if err := p.consume(token.RETURN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	ret := &ast.Return{NodeInfo: p.node(), Token: retTok, Expr: expr}
	ast.Adopt(ret, expr)
	return ret, nil
}

// parseIfStatement parses a whole if / else-if chain:
//
//	if := 'if' '(' condition ')' statement_or_block
//	      { 'else' 'if' '(' condition ')' statement_or_block }
//	      [ 'else' statement_or_block ]
func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	statement := &ast.IfStatement{NodeInfo: p.node(), Token: p.current()}

	arm, err := p.parseIf()
	if err != nil {
		return nil, err
	}
	statement.Ifs = append(statement.Ifs, arm)
	ast.Adopt(statement, arm)

	for p.current().Kind == token.ELSE {
		if err := p.consume(token.ELSE); err != nil {
			return nil, err
		}
		if p.current().Kind == token.IF {
			arm, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			statement.Ifs = append(statement.Ifs, arm)
			ast.Adopt(statement, arm)
			continue
		}
		elseBody, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		statement.ElseBody = elseBody
		ast.Adopt(statement, elseBody)
		break
	}
	return statement, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	ifTok := p.current()
	if err := p.consume(token.IF); err != nil {
		return nil, err
	}
	if err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}
	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	arm := &ast.If{NodeInfo: p.node(), Token: ifTok, Condition: condition, Body: body}
	ast.Adopt(arm, condition, body)
	return arm, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	whileTok := p.current()
	if err := p.consume(token.WHILE); err != nil {
		return nil, err
	}
	if err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}
	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	loop := &ast.While{NodeInfo: p.node(), Token: whileTok, Condition: condition, Body: body}
	ast.Adopt(loop, condition, body)
	return loop, nil
}

func (p *Parser) parseDoWhile() (*ast.DoWhile, error) {
	doTok := p.current()
	if err := p.consume(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.WHILE); err != nil {
		return nil, err
	}
	if err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}
	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.consume(token.SEMICOLON); err != nil {
		return nil, err
	}

	loop := &ast.DoWhile{NodeInfo: p.node(), Token: doTok, Body: body, Condition: condition}
	ast.Adopt(loop, body, condition)
	return loop, nil
}

// parseBody parses the body of a control-flow statement. A lone ';'
// yields no body at all; braces yield a scope-transparent compound (the
// control statement brings its own scope).
func (p *Parser) parseBody() (ast.Statement, error) {
	switch p.current().Kind {
	case token.SEMICOLON:
		if err := p.consume(token.SEMICOLON); err != nil {
			return nil, err
		}
		return nil, nil
	case token.LBRACE:
		return p.parseCompound()
	default:
		return p.parseStatement()
	}
}
