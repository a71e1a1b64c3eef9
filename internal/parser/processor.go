package parser

import (
	"errors"

	"github.com/quadlang/quadc/internal/diagnostics"
	"github.com/quadlang/quadc/internal/pipeline"
	"github.com/quadlang/quadc/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Cursor == nil {
		// This case should not be hit if the lexer runs first, but as a safeguard:
		ctx.Report(diagnostics.NewError(diagnostics.ErrP002, token.Token{}, "parser: token cursor is nil"))
		return ctx
	}

	parser := New(ctx.Cursor)
	root, err := parser.ParseProgram()
	if err != nil {
		var diag *diagnostics.Diagnostic
		if errors.As(err, &diag) {
			ctx.Report(diag)
		} else {
			ctx.Report(diagnostics.NewError(diagnostics.ErrP002, token.Token{}, err.Error()))
		}
		return ctx
	}

	ctx.Root = root
	return ctx
}
