package analyzer

import (
	"github.com/quadlang/quadc/internal/pipeline"
)

type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Root == nil {
		return ctx
	}

	analyzer := New()
	if err := analyzer.Analyze(ctx.Root); err != nil {
		ctx.Report(err)
		return ctx
	}

	ctx.GlobalScope = analyzer.GlobalScope()
	return ctx
}
