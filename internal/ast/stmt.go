package ast

import "github.com/chuckjaz/dyego-vibe/internal/lexer"

// ExprStmt represents an expression used in statement position.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

func (s *ExprStmt) Span() lexer.Span { return s.span }
func (*ExprStmt) stmtNode()          {}

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

// VarDecl represents a variable declaration. Mutable distinguishes var
// (independently mutable) from val (deeply immutable). Type and Value are
// each optional, though the checker rejects a declaration with neither.
type VarDecl struct {
	Mutable bool
	Name    *Ident
	Type    TypeExpr
	Value   Expr
	span    lexer.Span
}

func (s *VarDecl) Span() lexer.Span { return s.span }
func (*VarDecl) stmtNode()          {}

// NewVarDecl constructs a variable declaration node.
func NewVarDecl(mutable bool, name *Ident, typ TypeExpr, value Expr, span lexer.Span) *VarDecl {
	return &VarDecl{Mutable: mutable, Name: name, Type: typ, Value: value, span: span}
}

// FunDecl represents a function declaration. Mutating marks methods declared
// with the mut modifier. ReturnType may be nil.
type FunDecl struct {
	Mutating   bool
	Name       *Ident
	TypeParams []*Ident
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockExpr
	span       lexer.Span
}

func (s *FunDecl) Span() lexer.Span { return s.span }
func (*FunDecl) stmtNode()          {}

// NewFunDecl constructs a function declaration node.
func NewFunDecl(mutating bool, name *Ident, typeParams []*Ident, params []*Param, returnType TypeExpr, body *BlockExpr, span lexer.Span) *FunDecl {
	return &FunDecl{
		Mutating:   mutating,
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		span:       span,
	}
}

// ReturnStmt represents a return statement. Value may be nil.
type ReturnStmt struct {
	Value Expr
	span  lexer.Span
}

func (s *ReturnStmt) Span() lexer.Span { return s.span }
func (*ReturnStmt) stmtNode()          {}

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body Expr
	span lexer.Span
}

func (s *WhileStmt) Span() lexer.Span { return s.span }
func (*WhileStmt) stmtNode()          {}

// NewWhileStmt constructs a while loop node.
func NewWhileStmt(cond, body Expr, span lexer.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, span: span}
}

// ForStmt represents a for-in loop over an iterable.
type ForStmt struct {
	Var      *Ident
	Iterable Expr
	Body     Expr
	span     lexer.Span
}

func (s *ForStmt) Span() lexer.Span { return s.span }
func (*ForStmt) stmtNode()          {}

// NewForStmt constructs a for loop node.
func NewForStmt(v *Ident, iterable, body Expr, span lexer.Span) *ForStmt {
	return &ForStmt{Var: v, Iterable: iterable, Body: body, span: span}
}

// BreakStmt represents a break statement with an optional label.
type BreakStmt struct {
	Label *Ident
	span  lexer.Span
}

func (s *BreakStmt) Span() lexer.Span { return s.span }
func (*BreakStmt) stmtNode()          {}

// NewBreakStmt constructs a break statement node.
func NewBreakStmt(label *Ident, span lexer.Span) *BreakStmt {
	return &BreakStmt{Label: label, span: span}
}

// ContinueStmt represents a continue statement with an optional label.
type ContinueStmt struct {
	Label *Ident
	span  lexer.Span
}

func (s *ContinueStmt) Span() lexer.Span { return s.span }
func (*ContinueStmt) stmtNode()          {}

// NewContinueStmt constructs a continue statement node.
func NewContinueStmt(label *Ident, span lexer.Span) *ContinueStmt {
	return &ContinueStmt{Label: label, span: span}
}

// TypeDecl represents a value-type declaration: ordered fields and methods.
type TypeDecl struct {
	Name       *Ident
	TypeParams []*Ident
	Fields     []*Field
	Methods    []*FunDecl
	span       lexer.Span
}

func (s *TypeDecl) Span() lexer.Span { return s.span }
func (*TypeDecl) stmtNode()          {}

// NewTypeDecl constructs a value-type declaration node.
func NewTypeDecl(name *Ident, typeParams []*Ident, fields []*Field, methods []*FunDecl, span lexer.Span) *TypeDecl {
	return &TypeDecl{Name: name, TypeParams: typeParams, Fields: fields, Methods: methods, span: span}
}

// UseDecl represents a use declaration. It is a structural record only:
// paths are parsed but never resolved to bindings.
type UseDecl struct {
	Trait bool
	Path  []*Ident
	Items []*Ident
	span  lexer.Span
}

func (s *UseDecl) Span() lexer.Span { return s.span }
func (*UseDecl) stmtNode()          {}

// NewUseDecl constructs a use declaration node.
func NewUseDecl(trait bool, path []*Ident, items []*Ident, span lexer.Span) *UseDecl {
	return &UseDecl{Trait: trait, Path: path, Items: items, span: span}
}

// FunSig represents one method signature inside a trait declaration.
type FunSig struct {
	Mutating   bool
	Name       *Ident
	Params     []*Param
	ReturnType TypeExpr
	span       lexer.Span
}

// Span returns the signature span.
func (s *FunSig) Span() lexer.Span { return s.span }

// NewFunSig constructs a method signature node.
func NewFunSig(mutating bool, name *Ident, params []*Param, returnType TypeExpr, span lexer.Span) *FunSig {
	return &FunSig{Mutating: mutating, Name: name, Params: params, ReturnType: returnType, span: span}
}

// TraitDecl represents a trait declaration.
type TraitDecl struct {
	Name    *Ident
	Methods []*FunSig
	span    lexer.Span
}

func (s *TraitDecl) Span() lexer.Span { return s.span }
func (*TraitDecl) stmtNode()          {}

// NewTraitDecl constructs a trait declaration node.
func NewTraitDecl(name *Ident, methods []*FunSig, span lexer.Span) *TraitDecl {
	return &TraitDecl{Name: name, Methods: methods, span: span}
}
