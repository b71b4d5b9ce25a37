// Package diagnostics defines the positioned error values produced by
// the pipeline stages and the formatter used to report them.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tinyjs/mangle/internal/token"
)

// DiagnosticError is an error tied to a source position.
// Codes are stage-prefixed: Lxxx lexer, Pxxx parser, Sxxx scope,
// Mxxx mangler, Cxxx cli/config.
type DiagnosticError struct {
	Code    string
	File    string
	Line    int
	Column  int
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
}

// NewError creates a DiagnosticError positioned at tok.
func NewError(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Print writes each error on its own line, coloring the output when w
// is an interactive terminal.
func Print(w io.Writer, errs []*DiagnosticError) {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, err := range errs {
		if colored {
			fmt.Fprintf(w, "%s%serror:%s %s\n", ansiBold, ansiRed, ansiReset, err.Error())
		} else {
			fmt.Fprintf(w, "error: %s\n", err.Error())
		}
	}
}
