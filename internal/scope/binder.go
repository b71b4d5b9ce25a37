package scope

import (
	"github.com/tinyjs/mangle/internal/ast"
)

// Info is the product of binding: the scope tree plus a node-to-scope
// index. Function-like nodes map to their inner scope (where their
// parameters are bound); declarators map to the scope their bindings
// were hoisted into.
type Info struct {
	program *Scope
	scopes  map[ast.Node]*Scope
}

// ProgramScope returns the root scope.
func (i *Info) ProgramScope() *Scope { return i.program }

// ScopeOf returns the scope recorded for node, falling back to the
// program scope.
func (i *Info) ScopeOf(node ast.Node) *Scope {
	if s, ok := i.scopes[node]; ok {
		return s
	}
	return i.program
}

// Bind builds the scope tree for program and resolves every
// identifier reference. Reserved names seed the program-level global
// set.
func Bind(program *ast.Program, reserved []string) *Info {
	info := &Info{
		program: NewProgramScope(reserved),
		scopes:  make(map[ast.Node]*Scope),
	}
	info.scopes[program] = info.program

	b := &binder{info: info}
	b.bindStatements(program.Statements, info.program)
	return info
}

type binder struct {
	info *Info
}

func (b *binder) bindStatements(stmts []ast.Statement, s *Scope) {
	for _, stmt := range stmts {
		b.bindStatement(stmt, s)
	}
}

func (b *binder) bindStatement(stmt ast.Statement, s *Scope) {
	switch node := stmt.(type) {
	case *ast.VarStatement:
		kind := bindingKind(node.Kind)
		for _, decl := range node.Declarators {
			b.info.scopes[decl] = s.hoistTarget(kind)
			b.declarePattern(decl.Target, kind, s)
			if decl.Init != nil {
				b.bindExpression(decl.Init, s)
			}
		}
	case *ast.FunctionDeclaration:
		if node.Name != nil {
			s.declare(node.Name.Value, BindFunction, node.Name)
		}
		fnScope := s.newChild(KindFunction)
		b.info.scopes[node] = fnScope
		b.bindParams(node.Params, fnScope)
		b.bindStatements(node.Body.Statements, fnScope)
	case *ast.BlockStatement:
		blockScope := s.newChild(KindBlock)
		b.info.scopes[node] = blockScope
		b.bindStatements(node.Statements, blockScope)
	case *ast.ReturnStatement:
		if node.Value != nil {
			b.bindExpression(node.Value, s)
		}
	case *ast.IfStatement:
		b.bindExpression(node.Condition, s)
		b.bindStatement(node.Consequence, s)
		if node.Alternative != nil {
			b.bindStatement(node.Alternative, s)
		}
	case *ast.WhileStatement:
		b.bindExpression(node.Condition, s)
		b.bindStatement(node.Body, s)
	case *ast.ExpressionStatement:
		b.bindExpression(node.Expression, s)
	}
}

// declarePattern declares every identifier bound by pat. Default-value
// expressions are references evaluated in the declaring scope, not
// binding sites.
func (b *binder) declarePattern(pat ast.Pattern, kind BindingKind, s *Scope) {
	switch node := pat.(type) {
	case *ast.Identifier:
		s.declare(node.Value, kind, node)
	case *ast.ArrayPattern:
		for _, el := range node.Elements {
			if el != nil {
				b.declarePattern(el, kind, s)
			}
		}
	case *ast.RestElement:
		b.declarePattern(node.Argument, kind, s)
	case *ast.AssignPattern:
		b.declarePattern(node.Left, kind, s)
		b.bindExpression(node.Right, s)
	}
}

func (b *binder) bindParams(params []ast.Pattern, fnScope *Scope) {
	for _, param := range params {
		b.declarePattern(param, BindParam, fnScope)
	}
}

func (b *binder) bindExpression(expr ast.Expression, s *Scope) {
	switch node := expr.(type) {
	case *ast.Identifier:
		s.addReference(node)
	case *ast.ArrayLiteral:
		for _, el := range node.Elements {
			b.bindExpression(el, s)
		}
	case *ast.PrefixExpression:
		b.bindExpression(node.Right, s)
	case *ast.InfixExpression:
		b.bindExpression(node.Left, s)
		b.bindExpression(node.Right, s)
	case *ast.AssignmentExpression:
		b.bindExpression(node.Left, s)
		b.bindExpression(node.Right, s)
	case *ast.CallExpression:
		b.bindExpression(node.Callee, s)
		for _, arg := range node.Arguments {
			b.bindExpression(arg, s)
		}
	case *ast.MemberExpression:
		b.bindExpression(node.Object, s)
		if node.Computed {
			b.bindExpression(node.Property, s)
		}
	case *ast.FunctionLiteral:
		fnScope := s.newChild(KindFunction)
		b.info.scopes[node] = fnScope
		if node.Name != nil {
			// A named function expression's name is visible only
			// inside its own body.
			fnScope.declare(node.Name.Value, BindFunction, node.Name)
		}
		b.bindParams(node.Params, fnScope)
		b.bindStatements(node.Body.Statements, fnScope)
	case *ast.ArrowFunction:
		fnScope := s.newChild(KindFunction)
		b.info.scopes[node] = fnScope
		b.bindParams(node.Params, fnScope)
		if node.BlockBody != nil {
			b.bindStatements(node.BlockBody.Statements, fnScope)
		} else {
			b.bindExpression(node.ExprBody, fnScope)
		}
	}
}

func bindingKind(kind string) BindingKind {
	switch kind {
	case "let":
		return BindLet
	case "const":
		return BindConst
	}
	return BindVar
}
