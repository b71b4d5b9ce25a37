package printer

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/pipeline"
)

type PrinterProcessor struct{}

func (pp *PrinterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	ctx.Output = New().Print(program)
	return ctx
}
