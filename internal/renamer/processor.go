package renamer

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/diagnostics"
	"github.com/tinyjs/mangle/internal/pipeline"
	"github.com/tinyjs/mangle/internal/scope"
	"github.com/tinyjs/mangle/internal/token"
)

// ResolverProcessor builds the scope tree for the parsed program and
// stores it in the context for the mangling stage.
type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		err := diagnostics.NewError("S001", token.Token{}, "resolver: root node is not a program")
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	ctx.Scopes = scope.Bind(program, ctx.Reserved)
	return ctx
}

// ManglerProcessor runs the two renaming sweeps. A no-op when mangling
// is disabled or earlier stages failed.
type ManglerProcessor struct{}

func (mp *ManglerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if !ctx.Mangle || ctx.AstRoot == nil || ctx.Scopes == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	m := NewMangler(ctx.Reserved)
	m.Mangle(program, ctx.Scopes)
	return ctx
}
