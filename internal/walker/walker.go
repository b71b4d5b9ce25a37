// Package walker drives callbacks over a parsed tree. Callers
// register a callback per node type; Walk visits the whole tree
// top-down, synchronously, handing each matching node to its callback
// together with the node's owning scope.
package walker

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/scope"
)

// NodeType keys callback registration.
type NodeType int

const (
	VariableDeclarator NodeType = iota
	FunctionDeclaration
	FunctionLiteral
	ArrowFunction
)

// Callback receives a visited node and its owning scope. For
// function-like nodes the scope is the function's inner scope; for
// declarators it is the scope the declaration was hoisted into.
type Callback func(node ast.Node, s *scope.Scope)

type Walker struct {
	info      *scope.Info
	callbacks map[NodeType]Callback
}

func New(info *scope.Info) *Walker {
	return &Walker{
		info:      info,
		callbacks: make(map[NodeType]Callback),
	}
}

// Register installs the callback for a node type, replacing any
// previous registration.
func (w *Walker) Register(t NodeType, fn Callback) {
	w.callbacks[t] = fn
}

// Walk visits root and every node below it in a single top-down
// traversal, invoking registered callbacks as it goes.
func (w *Walker) Walk(root ast.Node) {
	switch node := root.(type) {
	case *ast.Program:
		for _, stmt := range node.Statements {
			w.Walk(stmt)
		}
	case *ast.VarStatement:
		for _, decl := range node.Declarators {
			if cb, ok := w.callbacks[VariableDeclarator]; ok {
				cb(decl, w.info.ScopeOf(decl))
			}
			w.walkPattern(decl.Target)
			if decl.Init != nil {
				w.Walk(decl.Init)
			}
		}
	case *ast.FunctionDeclaration:
		if cb, ok := w.callbacks[FunctionDeclaration]; ok {
			cb(node, w.info.ScopeOf(node))
		}
		for _, param := range node.Params {
			w.walkPattern(param)
		}
		w.walkBlock(node.Body)
	case *ast.FunctionLiteral:
		if cb, ok := w.callbacks[FunctionLiteral]; ok {
			cb(node, w.info.ScopeOf(node))
		}
		for _, param := range node.Params {
			w.walkPattern(param)
		}
		w.walkBlock(node.Body)
	case *ast.ArrowFunction:
		if cb, ok := w.callbacks[ArrowFunction]; ok {
			cb(node, w.info.ScopeOf(node))
		}
		for _, param := range node.Params {
			w.walkPattern(param)
		}
		if node.BlockBody != nil {
			w.walkBlock(node.BlockBody)
		} else {
			w.Walk(node.ExprBody)
		}
	case *ast.BlockStatement:
		w.walkBlock(node)
	case *ast.ReturnStatement:
		if node.Value != nil {
			w.Walk(node.Value)
		}
	case *ast.IfStatement:
		w.Walk(node.Condition)
		w.walkBlock(node.Consequence)
		if node.Alternative != nil {
			w.Walk(node.Alternative)
		}
	case *ast.WhileStatement:
		w.Walk(node.Condition)
		w.walkBlock(node.Body)
	case *ast.ExpressionStatement:
		w.Walk(node.Expression)
	case *ast.ArrayLiteral:
		for _, el := range node.Elements {
			w.Walk(el)
		}
	case *ast.PrefixExpression:
		w.Walk(node.Right)
	case *ast.InfixExpression:
		w.Walk(node.Left)
		w.Walk(node.Right)
	case *ast.AssignmentExpression:
		w.Walk(node.Left)
		w.Walk(node.Right)
	case *ast.CallExpression:
		w.Walk(node.Callee)
		for _, arg := range node.Arguments {
			w.Walk(arg)
		}
	case *ast.MemberExpression:
		w.Walk(node.Object)
		if node.Computed {
			w.Walk(node.Property)
		}
	}
}

func (w *Walker) walkBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		w.Walk(stmt)
	}
}

// walkPattern descends into default-value expressions, which can
// contain anything, including further function-like nodes.
func (w *Walker) walkPattern(pat ast.Pattern) {
	switch node := pat.(type) {
	case *ast.ArrayPattern:
		for _, el := range node.Elements {
			if el != nil {
				w.walkPattern(el)
			}
		}
	case *ast.RestElement:
		w.walkPattern(node.Argument)
	case *ast.AssignPattern:
		w.walkPattern(node.Left)
		w.Walk(node.Right)
	}
}
