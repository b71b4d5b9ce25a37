package pipeline

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/diagnostics"
	"github.com/tinyjs/mangle/internal/scope"
	"github.com/tinyjs/mangle/internal/token"
)

// Processor is a single pipeline stage. Stages read what they need
// from the context, write what they produce, and append diagnostics.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the state of one file through the stages.
type PipelineContext struct {
	FilePath   string
	SourceCode string

	TokenStream []token.Token
	AstRoot     ast.Node
	Scopes      *scope.Info
	Output      string

	// Options that change stage behavior.
	Mangle   bool     // run the renaming sweeps
	Reserved []string // names the generator must never produce

	Errors []*diagnostics.DiagnosticError
}
