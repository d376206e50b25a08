package ast

import "github.com/chuckjaz/dyego-vibe/internal/lexer"

// Node represents any AST node with an associated source span. Nodes are
// built bottom-up by the parser and never mutated afterward; later passes
// derive information externally instead of annotating the tree in place.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
//
// The variant set is closed: consumers dispatch with an exhaustive type
// switch whose default arm panics, so a new expression form fails loudly in
// every consumer instead of being silently skipped.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr represents a type annotation expression.
type TypeExpr interface {
	Node
	typeNode()
}

// Ident represents an identifier reference.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}

// Param represents a function or lambda parameter. Type may be nil for
// lambda parameters, which are never annotated.
type Param struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(name *Ident, typ TypeExpr, span lexer.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

// Field represents one field of a value-type declaration.
type Field struct {
	Mutable bool
	Name    *Ident
	Type    TypeExpr
	span    lexer.Span
}

// Span returns the field span.
func (f *Field) Span() lexer.Span { return f.span }

// NewField constructs a field node.
func NewField(mutable bool, name *Ident, typ TypeExpr, span lexer.Span) *Field {
	return &Field{Mutable: mutable, Name: name, Type: typ, span: span}
}
