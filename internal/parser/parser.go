package parser

import (
	"github.com/quadlang/quadc/internal/ast"
	"github.com/quadlang/quadc/internal/diagnostics"
	"github.com/quadlang/quadc/internal/pipeline"
	"github.com/quadlang/quadc/internal/token"
)

// Parser is a recursive-descent parser over a one-token cursor. It never
// recovers: the first unexpected token aborts the parse and the partial
// tree is discarded.
type Parser struct {
	cursor pipeline.TokenCursor

	// nodeCount mints node identities; they are stable for the lifetime
	// of the tree and downstream passes derive scope and chart names
	// from them.
	nodeCount int

	success bool
}

func New(cursor pipeline.TokenCursor) *Parser {
	return &Parser{cursor: cursor}
}

// Success reports whether the last ParseProgram call produced a tree.
func (p *Parser) Success() bool {
	return p.success
}

func (p *Parser) node() ast.NodeInfo {
	info := ast.NodeInfo{NodeID: p.nodeCount}
	p.nodeCount++
	return info
}

func (p *Parser) current() token.Token {
	return p.cursor.Current()
}

func (p *Parser) consume(expected token.Kind) error {
	return p.cursor.Consume(expected)
}

func (p *Parser) unexpected(expected string) error {
	tok := p.current()
	return diagnostics.NewPhaseError(diagnostics.PhaseParser, diagnostics.ErrP001, tok, tok.Lexeme, expected)
}

// ParseProgram parses the whole token stream:
//
//	program := '{' { statement } '}'
//
// followed by end of file.
func (p *Parser) ParseProgram() (*ast.Compound, error) {
	p.success = false

	root, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.FILE_END); err != nil {
		return nil, err
	}

	p.success = true
	return root, nil
}

// parseCompound parses a brace-delimited statement list that introduces
// no scope of its own: the program root and control-flow bodies.
func (p *Parser) parseCompound() (*ast.Compound, error) {
	open := p.current()
	if err := p.consume(token.LBRACE); err != nil {
		return nil, err
	}

	compound := &ast.Compound{NodeInfo: p.node(), Token: open}
	for p.current().Kind != token.RBRACE {
		if p.cursor.Done() {
			return nil, p.unexpected(string(token.RBRACE))
		}
		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		compound.Statements = append(compound.Statements, statement)
		ast.Adopt(compound, statement)
	}
	if err := p.consume(token.RBRACE); err != nil {
		return nil, err
	}
	return compound, nil
}

// parseStatementBlock parses a free-floating '{ ... }', which does
// introduce a scope.
func (p *Parser) parseStatementBlock() (*ast.StatementBlock, error) {
	open := p.current()
	if err := p.consume(token.LBRACE); err != nil {
		return nil, err
	}

	block := &ast.StatementBlock{NodeInfo: p.node(), Token: open}
	for p.current().Kind != token.RBRACE {
		if p.cursor.Done() {
			return nil, p.unexpected(string(token.RBRACE))
		}
		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, statement)
		ast.Adopt(block, statement)
	}
	if err := p.consume(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}
