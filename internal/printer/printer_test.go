package printer

import (
	"testing"

	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/lexer"
	"github.com/tinyjs/mangle/internal/parser"
	"github.com/tinyjs/mangle/internal/pipeline"
	"github.com/tinyjs/mangle/internal/token"
)

func render(t *testing.T, src string) string {
	t.Helper()

	ctx := &pipeline.PipelineContext{SourceCode: src}
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	program := parser.New(toks, ctx).ParseProgram()
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors[0])
	}
	return New().Print(program)
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"var", `var x = 1;`, `var x=1`},
		{"let", `let y = "s";`, `let y="s"`},
		{"declarator list", `var a = 1, b, c = 3;`, `var a=1,b,c=3`},
		{"hex literal kept raw", `var mask = 0xFF;`, `var mask=0xFF`},
		{"literals", `var flags = [true, false, null];`, `var flags=[true,false,null]`},

		{"precedence no parens", `1 + 2 * 3;`, `1+2*3`},
		{"grouping kept", `(1 + 2) * 3;`, `(1+2)*3`},
		{"left assoc flat", `a - b - c;`, `a-b-c`},
		{"right grouping kept", `a - (b - c);`, `a-(b-c)`},
		{"prefix over infix", `!(a && b);`, `!(a&&b)`},
		{"typeof keeps its space", `typeof x;`, `typeof x`},
		{"chained assignment", `a = b = c;`, `a=b=c`},
		{"compound assignment", `a += 1;`, `a+=1`},
		{"member assignment", `obj.count = 0;`, `obj.count=0`},

		{"call with args", `console.log("hi", name);`, `console.log("hi",name)`},
		{"index and array", `list[0] = [1, 2, 3];`, `list[0]=[1,2,3]`},
		{"member index call chain", `obj.field[key](arg);`, `obj.field[key](arg)`},

		{"function declaration", `function add(a, b) { return a + b; }`, `function add(a,b){return a+b}`},
		{"bare return", `function f() { return; }`, `function f(){return}`},
		{"function expression", `var walk = function step(n) { return step(n); };`, `var walk=function step(n){return step(n)}`},
		{"iife", `(function() { run(); })();`, `(function(){run()})()`},

		{"arrow shorthand", `x => x + 1;`, `x=>x+1`},
		{"arrow no params", `() => 1;`, `()=>1`},
		{"arrow block body", `(a, b) => { return a; };`, `(a,b)=>{return a}`},
		{"arrow in initializer", `var go = () => run();`, `var go=()=>run()`},

		{"if else", `if (a) { b(); } else { c(); }`, `if(a){b()}else{c()}`},
		{"else if chain", `if (a) { } else if (b) { } else { }`, `if(a){}else if(b){}else{}`},
		{"while", `while (a < 10) { a = a + 1; }`, `while(a<10){a=a+1}`},

		{"pattern with hole default rest", `var [a, , b = 1, ...c] = d;`, `var [a,,b=1,...c]=d`},
		{"rest param", `function g(first, ...rest) { }`, `function g(first,...rest){}`},

		{"statement separators", `a(); b(); { c(); } d();`, `a();b();{c()}d()`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.src); got != tt.want {
				t.Fatalf("render(%q)\n got %q\nwant %q", tt.src, got, tt.want)
			}
		})
	}
}

// A function literal in statement position must not be readable as a
// declaration. The parser never produces that shape, so build it
// directly.
func TestFunctionLiteralStatementParenthesized(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expression: &ast.FunctionLiteral{
			Body: &ast.BlockStatement{},
		}},
	}}
	if got := New().Print(program); got != `(function(){})` {
		t.Fatalf("got %q, want (function(){})", got)
	}
}
