package scope_test

import (
	"sort"
	"testing"

	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/lexer"
	"github.com/tinyjs/mangle/internal/parser"
	"github.com/tinyjs/mangle/internal/pipeline"
	"github.com/tinyjs/mangle/internal/scope"
	"github.com/tinyjs/mangle/internal/token"
)

func parse(t *testing.T, src string) *ast.Program {
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
	return program
}

func bind(t *testing.T, src string, reserved ...string) (*ast.Program, *scope.Info) {
	t.Helper()
	program := parse(t, src)
	return program, scope.Bind(program, reserved)
}

func sortedBindings(s *scope.Scope) []string {
	names := s.Bindings()
	sort.Strings(names)
	return names
}

func TestProgramBindings(t *testing.T) {
	_, info := bind(t, `var alpha = 1; let beta = 2; const gamma = 3; function bump() {}`)

	got := sortedBindings(info.ProgramScope())
	want := []string{"alpha", "beta", "bump", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("program bindings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("program bindings = %v, want %v", got, want)
		}
	}
}

func TestVarHoistsOutOfBlock(t *testing.T) {
	_, info := bind(t, `{ var hoisted = 1; let scoped = 2; }`)

	root := info.ProgramScope()
	if !root.HasBinding("hoisted") {
		t.Fatal("var declared in a block should bind in the program scope")
	}
	for _, name := range root.Bindings() {
		if name == "scoped" {
			t.Fatal("let declared in a block must not hoist to the program scope")
		}
	}
}

func TestParamsBindInFunctionScope(t *testing.T) {
	program, info := bind(t, `function area(width, height) { return width * height; }`)

	root := info.ProgramScope()
	if !root.HasBinding("area") {
		t.Fatal("function name should bind in the enclosing scope")
	}
	for _, name := range root.Bindings() {
		if name == "width" || name == "height" {
			t.Fatalf("parameter %q leaked into the program scope", name)
		}
	}

	fn := program.Statements[0].(*ast.FunctionDeclaration)
	fnScope := info.ScopeOf(fn)
	if fnScope == root {
		t.Fatal("no scope recorded for the function node")
	}
	got := sortedBindings(fnScope)
	if len(got) != 2 || got[0] != "height" || got[1] != "width" {
		t.Fatalf("function scope bindings = %v, want [height width]", got)
	}
}

func TestUnresolvedReferencesBecomeGlobals(t *testing.T) {
	_, info := bind(t, `console.log(missing);`)

	root := info.ProgramScope()
	if !root.HasGlobal("console") {
		t.Fatal("console should be a global")
	}
	if !root.HasGlobal("missing") {
		t.Fatal("missing should be a global")
	}
	if root.HasGlobal("log") {
		t.Fatal("non-computed member property must not become a global")
	}
}

func TestReservedNamesSeedGlobals(t *testing.T) {
	_, info := bind(t, `var x = 1;`, "jQuery", "$")

	root := info.ProgramScope()
	if !root.HasGlobal("jQuery") || !root.HasGlobal("$") {
		t.Fatal("reserved names should appear in the global set")
	}
}

func TestHasReferenceCoversSubtree(t *testing.T) {
	program, info := bind(t, `function outer() { function inner() { return deep; } }`)

	root := info.ProgramScope()
	if !root.HasReference("deep") {
		t.Fatal("reference inside a nested function should be visible from the program scope")
	}

	outer := program.Statements[0].(*ast.FunctionDeclaration)
	if !info.ScopeOf(outer).HasReference("deep") {
		t.Fatal("reference should be visible from the intermediate function scope")
	}
	if root.HasReference("nowhere") {
		t.Fatal("HasReference must be false for names never used")
	}
}

func TestHasBindingSeesSubtreeDeclarations(t *testing.T) {
	program, info := bind(t, `function g(inner) { var hidden = 1; }`)

	// Neither name is referenced anywhere, but both must still be
	// visible from the root: renaming an outer binding to one of them
	// would capture any rewritten references inside g.
	root := info.ProgramScope()
	if !root.HasBinding("inner") {
		t.Fatal("parameter declared in a child scope should be visible from the root")
	}
	if !root.HasBinding("hidden") {
		t.Fatal("var declared in a child scope should be visible from the root")
	}

	fn := program.Statements[0].(*ast.FunctionDeclaration)
	info.ScopeOf(fn).Rename("hidden", "h")
	if root.HasBinding("hidden") {
		t.Fatal("old name still visible from the root after rename")
	}
	if !root.HasBinding("h") {
		t.Fatal("new name not visible from the root after rename")
	}
}

func TestRenameRewritesAllSites(t *testing.T) {
	program, info := bind(t, `var counter = 0; counter = counter + 1; use(counter);`)

	root := info.ProgramScope()
	root.Rename("counter", "c")

	if root.HasBinding("counter") {
		t.Fatal("old name still bound after rename")
	}
	if !root.HasBinding("c") {
		t.Fatal("new name not bound after rename")
	}
	if root.HasReference("counter") {
		t.Fatal("old name still referenced after rename")
	}
	if !root.HasReference("c") {
		t.Fatal("new name has no references after rename")
	}

	// Every identifier in the tree that spelled the old name is rewritten.
	decl := program.Statements[0].(*ast.VarStatement).Declarators[0]
	if decl.Target.(*ast.Identifier).Value != "c" {
		t.Fatal("declaration identifier not rewritten")
	}
	assign := program.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	if assign.Left.(*ast.Identifier).Value != "c" {
		t.Fatal("assignment target not rewritten")
	}
	call := program.Statements[2].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if call.Arguments[0].(*ast.Identifier).Value != "c" {
		t.Fatal("call argument not rewritten")
	}
}

func TestRenameUnknownNameIsNoop(t *testing.T) {
	_, info := bind(t, `var x = 1;`)
	info.ProgramScope().Rename("ghost", "g")
	if !info.ProgramScope().HasBinding("x") {
		t.Fatal("unrelated binding disturbed by no-op rename")
	}
}

func TestShadowedReferenceResolvesInner(t *testing.T) {
	program, info := bind(t, `var name = "outer"; function show(name) { return name; }`)

	fn := program.Statements[1].(*ast.FunctionDeclaration)
	fnScope := info.ScopeOf(fn)

	// Renaming the parameter must not rewrite the outer declaration.
	fnScope.Rename("name", "n")

	outer := program.Statements[0].(*ast.VarStatement).Declarators[0]
	if outer.Target.(*ast.Identifier).Value != "name" {
		t.Fatal("outer binding rewritten by inner rename")
	}
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value.(*ast.Identifier).Value != "n" {
		t.Fatal("inner reference not rewritten")
	}
}

func TestArrayPatternBindings(t *testing.T) {
	_, info := bind(t, `var [first, , ...rest] = items;`)

	root := info.ProgramScope()
	if !root.HasBinding("first") || !root.HasBinding("rest") {
		t.Fatalf("pattern bindings missing, got %v", sortedBindings(root))
	}
	if !root.HasGlobal("items") {
		t.Fatal("initializer reference should resolve as a global")
	}
}

func TestDefaultValueIsReferenceNotBinding(t *testing.T) {
	program, info := bind(t, `function pick(choice = fallback) { return choice; }`)

	root := info.ProgramScope()
	if !root.HasGlobal("fallback") {
		t.Fatal("default expression identifier should count as a reference")
	}
	fn := program.Statements[0].(*ast.FunctionDeclaration)
	if !info.ScopeOf(fn).HasBinding("choice") {
		t.Fatal("defaulted parameter should still bind")
	}
}

func TestScopeOfDeclaratorIsHoistTarget(t *testing.T) {
	program, info := bind(t, `function wrap() { { var deep = 1; let shallow = 2; } }`)

	fn := program.Statements[0].(*ast.FunctionDeclaration)
	fnScope := info.ScopeOf(fn)
	block := fn.Body.Statements[0].(*ast.BlockStatement)

	varStmt := block.Statements[0].(*ast.VarStatement)
	if info.ScopeOf(varStmt.Declarators[0]) != fnScope {
		t.Fatal("var declarator should map to the enclosing function scope")
	}

	letStmt := block.Statements[1].(*ast.VarStatement)
	letScope := info.ScopeOf(letStmt.Declarators[0])
	if letScope == fnScope || letScope.Kind() != scope.KindBlock {
		t.Fatal("let declarator should map to the block scope")
	}
}
