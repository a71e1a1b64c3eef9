package lexer

import (
	"github.com/quadlang/quadc/internal/diagnostics"
	"github.com/quadlang/quadc/internal/token"
)

// Cursor is the parser's one-token window over the stream. It never moves
// past the FILE_END sentinel.
type Cursor struct {
	tokens []token.Token
	index  int

	// lineStartIndex is the index of the first token of the line the
	// cursor is on. Error formatting does not read it: diagnostics take
	// their source line from the token's line number.
	lineStartIndex int
}

func NewCursor(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Current returns the token at the cursor without advancing.
func (c *Cursor) Current() token.Token {
	return c.tokens[c.index]
}

// Consume advances on a kind match and fails with an unexpected-token
// diagnostic otherwise.
func (c *Cursor) Consume(expected token.Kind) error {
	tok := c.tokens[c.index]
	if tok.Kind != expected {
		return diagnostics.NewPhaseError(diagnostics.PhaseParser, diagnostics.ErrP001, tok, tok.Lexeme, string(expected))
	}
	if tok.Kind == token.FILE_END {
		return nil
	}
	c.index++
	if next := c.tokens[c.index]; next.Line != tok.Line {
		c.lineStartIndex = c.index
	}
	return nil
}

// Done reports whether the cursor sits on the FILE_END sentinel.
func (c *Cursor) Done() bool {
	return c.tokens[c.index].Kind == token.FILE_END
}

// LineStart returns the index of the first token of the current line.
func (c *Cursor) LineStart() int {
	return c.lineStartIndex
}
