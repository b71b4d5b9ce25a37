package diagnostics

import (
	"strings"
	"testing"

	"github.com/tinyjs/mangle/internal/token"
)

func TestErrorFormat(t *testing.T) {
	err := &DiagnosticError{Code: "P001", File: "app.js", Line: 3, Column: 7, Message: "unexpected token"}
	want := "app.js:3:7: [P001] unexpected token"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	err.File = ""
	if got := err.Error(); got != "3:7: [P001] unexpected token" {
		t.Fatalf("fileless Error() = %q", got)
	}
}

func TestNewErrorTakesTokenPosition(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Lexeme: "oops", Line: 12, Column: 4}
	err := NewError("L001", tok, "bad %s here", "thing")

	if err.Line != 12 || err.Column != 4 {
		t.Fatalf("position = %d:%d, want 12:4", err.Line, err.Column)
	}
	if err.Message != "bad thing here" {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestPrintPlain(t *testing.T) {
	var buf strings.Builder
	Print(&buf, []*DiagnosticError{
		{Code: "P001", Line: 1, Column: 1, Message: "first"},
		{Code: "P002", Line: 2, Column: 2, Message: "second"},
	})

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatal("non-terminal writer should get uncolored output")
	}
	if !strings.Contains(out, "error: 1:1: [P001] first") || !strings.Contains(out, "error: 2:2: [P002] second") {
		t.Fatalf("output = %q", out)
	}
}
