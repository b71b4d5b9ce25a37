// Package renamer shortens identifiers. It decides, for every
// renameable construct, whether a strictly shorter collision-free name
// exists, and issues the host scope's atomic rename when one does.
package renamer

import (
	"strconv"

	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/scope"
	"github.com/tinyjs/mangle/internal/walker"
)

// Scope is the surface the renamer needs from the host scope engine:
// the three collision predicates plus the atomic rename.
type Scope interface {
	HasBinding(name string) bool
	HasGlobal(name string) bool
	HasReference(name string) bool
	Rename(oldName, newName string)
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate returns the shortest name unused in s: single letters
// a..z, A..Z first, then a1..Z1, a2..Z2 and so on. A candidate is
// used when any of the three predicates holds for it. The suffix is
// unbounded, so this always terminates for a scope excluding finitely
// many names.
func Generate(s Scope) string {
	for k := 0; ; k++ {
		for i := 0; i < len(alphabet); i++ {
			name := string(alphabet[i])
			if k > 0 {
				name += strconv.Itoa(k)
			}
			if !s.HasBinding(name) && !s.HasGlobal(name) && !s.HasReference(name) {
				return name
			}
		}
	}
}

// Apply renames oldName in s when, and only when, a strictly shorter
// collision-free name exists. Single-character names are never
// touched. Every rename goes through this gate; no visitor bypasses
// the length or collision checks.
func Apply(s Scope, oldName string) {
	if len(oldName) <= 1 {
		return
	}
	newName := Generate(s)
	if len(newName) < len(oldName) {
		s.Rename(oldName, newName)
	}
}

// Mangler orchestrates the renaming sweeps over one tree.
type Mangler struct {
	reserved map[string]bool
}

func NewMangler(reserved []string) *Mangler {
	m := &Mangler{reserved: make(map[string]bool, len(reserved))}
	for _, name := range reserved {
		m.reserved[name] = true
	}
	return m
}

// Mangle runs exactly two ordered sweeps over the tree: every
// variable declarator first, then every function-like node's
// parameters. All declarator renames are committed before any
// parameter is considered, so parameter candidates always see the
// final state of the declarations around them.
func (m *Mangler) Mangle(program *ast.Program, info *scope.Info) {
	sweepA := walker.New(info)
	sweepA.Register(walker.VariableDeclarator, m.visitDeclarator)
	sweepA.Walk(program)

	sweepB := walker.New(info)
	sweepB.Register(walker.FunctionDeclaration, m.visitFunction)
	sweepB.Register(walker.FunctionLiteral, m.visitFunction)
	sweepB.Register(walker.ArrowFunction, m.visitFunction)
	sweepB.Walk(program)
}

func (m *Mangler) apply(s Scope, name string) {
	if m.reserved[name] {
		return
	}
	Apply(s, name)
}

// visitDeclarator handles one variable declarator. A declarator whose
// initializer is a function or arrow expression keeps its name: the
// function's inferred display name comes from the variable name at
// the declaration, and renaming it would change runtime-observable
// behavior.
func (m *Mangler) visitDeclarator(node ast.Node, s *scope.Scope) {
	decl := node.(*ast.VariableDeclarator)
	if decl.Init != nil && ast.IsFunctionExpr(decl.Init) {
		return
	}
	m.renameTarget(s, decl.Target, 0)
}

// visitFunction handles one function-like node, renaming its
// parameters in declared left-to-right order.
func (m *Mangler) visitFunction(node ast.Node, s *scope.Scope) {
	var params []ast.Pattern
	switch fn := node.(type) {
	case *ast.FunctionDeclaration:
		params = fn.Params
	case *ast.FunctionLiteral:
		params = fn.Params
	case *ast.ArrowFunction:
		params = fn.Params
	}
	for _, param := range params {
		m.renameTarget(s, param, 0)
	}
}

// renameTarget enumerates the identifier sites of one binding target
// and applies the shortening gate to each. Array patterns are
// inspected one level deep: an element that is itself a pattern is
// left alone.
func (m *Mangler) renameTarget(s Scope, pat ast.Pattern, depth int) {
	switch node := pat.(type) {
	case *ast.Identifier:
		m.apply(s, node.Value)
	case *ast.RestElement:
		m.renameTarget(s, node.Argument, depth)
	case *ast.AssignPattern:
		// Only the bound side; the default expression is not touched.
		m.renameTarget(s, node.Left, depth)
	case *ast.ArrayPattern:
		if depth > 0 {
			return
		}
		for _, el := range node.Elements {
			if el != nil {
				m.renameTarget(s, el, depth+1)
			}
		}
	}
}
