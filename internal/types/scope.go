package types

import "github.com/chuckjaz/dyego-vibe/internal/ast"

// Symbol represents a named entity bound in some scope: a variable or
// parameter carrying a resolved type, or a function declaration treated as a
// callable binding (Fun non-nil).
type Symbol struct {
	Name string
	Type ast.TypeExpr
	Fun  *ast.FunDecl
}

// Scope represents one lexical scope. Lookup falls through to the parent,
// so shadowing resolves nearest-enclosing-scope-wins.
type Scope struct {
	Parent  *Scope
	Symbols map[string]*Symbol
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
	}
}

// Insert adds a symbol to the current scope, shadowing any outer binding of
// the same name.
func (s *Scope) Insert(name string, sym *Symbol) {
	s.Symbols[name] = sym
}

// Lookup finds a symbol in the current scope or any parent scope.
func (s *Scope) Lookup(name string) *Symbol {
	if sym, ok := s.Symbols[name]; ok {
		return sym
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}
