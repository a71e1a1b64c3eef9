package lexer

import (
	"github.com/quadlang/quadc/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := New(ctx.SourceLines)
	ctx.Tokens = l.Tokenize()
	ctx.Cursor = NewCursor(ctx.Tokens)
	return ctx
}

var _ pipeline.TokenCursor = (*Cursor)(nil)
