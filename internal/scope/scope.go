// Package scope builds the lexical scope tree for a parsed program and
// exposes the queries the renaming passes run against it: the three
// collision predicates and the atomic rename.
package scope

import (
	"github.com/tinyjs/mangle/internal/ast"
)

type Kind int

const (
	KindProgram Kind = iota
	KindFunction
	KindBlock
)

type BindingKind int

const (
	BindVar BindingKind = iota
	BindLet
	BindConst
	BindFunction
	BindParam
)

// refSite is one identifier use resolved to a binding, together with
// the scope it appears in.
type refSite struct {
	ident *ast.Identifier
	scope *Scope
}

// Binding is a declared name: its declaration identifier plus every
// reference that resolved to it.
type Binding struct {
	Name  string
	Kind  BindingKind
	Ident *ast.Identifier
	Scope *Scope

	refs []refSite
}

// Scope is one lexical environment. var and function declarations
// live in the nearest enclosing function (or program) scope; let,
// const and parameters live where they appear.
type Scope struct {
	parent   *Scope
	children []*Scope
	kind     Kind

	bindings map[string]*Binding

	// refCounts tracks, per name, how many resolved or free identifier
	// uses appear anywhere within this scope's subtree.
	refCounts map[string]int

	// declCounts tracks, per name, how many bindings exist anywhere
	// within this scope's subtree. Renaming an outer binding to a name
	// that an inner scope declares would capture the rewritten
	// references, even when that inner binding is never referenced.
	declCounts map[string]int

	// globals is only populated on the program scope: names that are
	// referenced but never declared, plus configured reserved names.
	globals map[string]bool

	root *Scope
}

// NewProgramScope creates the root scope. Reserved names are recorded
// as globals so they are never chosen as replacement identifiers.
func NewProgramScope(reserved []string) *Scope {
	s := &Scope{
		kind:       KindProgram,
		bindings:   make(map[string]*Binding),
		refCounts:  make(map[string]int),
		declCounts: make(map[string]int),
		globals:    make(map[string]bool),
	}
	s.root = s
	for _, name := range reserved {
		s.globals[name] = true
	}
	return s
}

func (s *Scope) newChild(kind Kind) *Scope {
	child := &Scope{
		parent:     s,
		kind:       kind,
		bindings:   make(map[string]*Binding),
		refCounts:  make(map[string]int),
		declCounts: make(map[string]int),
		root:       s.root,
	}
	s.children = append(s.children, child)
	return child
}

// Kind returns the scope's kind.
func (s *Scope) Kind() Kind { return s.kind }

// Parent returns the enclosing scope, nil for the program scope.
func (s *Scope) Parent() *Scope { return s.parent }

// hoistTarget returns the scope a declaration of the given kind binds
// in: the nearest function or program scope for var and function
// declarations, the scope itself otherwise.
func (s *Scope) hoistTarget(kind BindingKind) *Scope {
	if kind != BindVar && kind != BindFunction {
		return s
	}
	for t := s; ; t = t.parent {
		if t.kind != KindBlock {
			return t
		}
	}
}

// declare adds a binding for ident. Redeclaration of an existing name
// in the same scope reuses the binding (var x; var x;).
func (s *Scope) declare(name string, kind BindingKind, ident *ast.Identifier) *Binding {
	target := s.hoistTarget(kind)
	if b, ok := target.bindings[name]; ok {
		return b
	}
	b := &Binding{Name: name, Kind: kind, Ident: ident, Scope: target}
	target.bindings[name] = b
	for t := target; t != nil; t = t.parent {
		t.declCounts[name]++
	}
	return b
}

// lookup resolves a name against this scope and its ancestors.
func (s *Scope) lookup(name string) *Binding {
	for t := s; t != nil; t = t.parent {
		if b, ok := t.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// addReference records an identifier use appearing in this scope. The
// use resolves to the nearest binding in the chain; unresolved names
// become program globals.
func (s *Scope) addReference(ident *ast.Identifier) {
	name := ident.Value
	if b := s.lookup(name); b != nil {
		b.refs = append(b.refs, refSite{ident: ident, scope: s})
	} else {
		s.root.globals[name] = true
	}
	for t := s; t != nil; t = t.parent {
		t.refCounts[name]++
	}
}

// HasBinding reports whether name is bound in this scope, any
// enclosing one, or anywhere within this scope's subtree. The subtree
// half rules out candidates an inner scope would shadow.
func (s *Scope) HasBinding(name string) bool {
	return s.lookup(name) != nil || s.declCounts[name] > 0
}

// HasGlobal reports whether name is a program-level global: either
// referenced without a declaration anywhere in the tree, or reserved
// by configuration.
func (s *Scope) HasGlobal(name string) bool {
	return s.root.globals[name]
}

// HasReference reports whether name is referenced anywhere within this
// scope's subtree, regardless of where it resolves.
func (s *Scope) HasReference(name string) bool {
	return s.refCounts[name] > 0
}

// Rename atomically renames the binding that oldName resolves to from
// this scope: the declaration identifier, every resolved reference,
// and all bookkeeping move to newName in one step. A no-op when
// oldName is unbound.
func (s *Scope) Rename(oldName, newName string) {
	b := s.lookup(oldName)
	if b == nil {
		return
	}

	owner := b.Scope
	delete(owner.bindings, oldName)
	b.Name = newName
	owner.bindings[newName] = b
	if b.Ident != nil {
		b.Ident.Value = newName
	}
	for t := owner; t != nil; t = t.parent {
		t.declCounts[oldName]--
		if t.declCounts[oldName] <= 0 {
			delete(t.declCounts, oldName)
		}
		t.declCounts[newName]++
	}

	for _, site := range b.refs {
		site.ident.Value = newName
		for t := site.scope; t != nil; t = t.parent {
			t.refCounts[oldName]--
			if t.refCounts[oldName] <= 0 {
				delete(t.refCounts, oldName)
			}
			t.refCounts[newName]++
		}
	}
}

// Bindings returns the names bound directly in this scope. Test and
// debugging helper.
func (s *Scope) Bindings() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	return names
}
