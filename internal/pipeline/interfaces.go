package pipeline

import (
	"github.com/quadlang/quadc/internal/token"
)

// Processor is any component that can process a Context and return a
// modified context.
type Processor interface {
	Process(ctx *Context) *Context
}

// TokenCursor is the one-token window the parser reads the token stream
// through.
type TokenCursor interface {
	// Current returns the token at the cursor without advancing.
	Current() token.Token

	// Consume advances past the current token if it has the expected
	// kind, and fails with an unexpected-token diagnostic otherwise.
	Consume(expected token.Kind) error

	// Done reports whether the cursor sits on the FILE_END sentinel.
	Done() bool
}
