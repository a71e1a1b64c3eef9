package backend

import (
	"github.com/quadlang/quadc/internal/ir"
	"github.com/quadlang/quadc/internal/pipeline"
)

// GeneratorProcessor is the pipeline stage that lowers the analysed AST
// to quadruples. It only runs when every earlier stage succeeded, so the
// tree it sees is fully annotated.
type GeneratorProcessor struct {
	gen *ir.Generator
}

func NewGeneratorProcessor() *GeneratorProcessor {
	return &GeneratorProcessor{gen: ir.NewGenerator()}
}

func (gp *GeneratorProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Root == nil {
		return ctx
	}
	ctx.IR = gp.gen.Generate(ctx.Root)
	return ctx
}
