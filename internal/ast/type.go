package ast

import "github.com/chuckjaz/dyego-vibe/internal/lexer"

// NamedType represents a type named by an identifier, with optional generic
// arguments: Map<String, i32>.
type NamedType struct {
	Name *Ident
	Args []TypeExpr
	span lexer.Span
}

func (t *NamedType) Span() lexer.Span { return t.span }
func (*NamedType) typeNode()          {}

// NewNamedType constructs a named type node.
func NewNamedType(name *Ident, args []TypeExpr, span lexer.Span) *NamedType {
	return &NamedType{Name: name, Args: args, span: span}
}

// UnionType represents a flat union of two or more member types.
//
// NewUnionType is the only constructor and it splices nested unions into the
// member list, so a union of unions never appears in a well-formed tree.
// Members that are structurally equal are tolerated, not deduplicated.
type UnionType struct {
	Members []TypeExpr
	span    lexer.Span
}

func (t *UnionType) Span() lexer.Span { return t.span }
func (*UnionType) typeNode()          {}

// NewUnionType constructs a union type node, flattening any member that is
// itself a union.
func NewUnionType(members []TypeExpr, span lexer.Span) *UnionType {
	flat := make([]TypeExpr, 0, len(members))
	for _, m := range members {
		if u, ok := m.(*UnionType); ok {
			flat = append(flat, u.Members...)
			continue
		}
		flat = append(flat, m)
	}
	return &UnionType{Members: flat, span: span}
}

// ArrayType represents an array type: T[].
type ArrayType struct {
	Elem TypeExpr
	span lexer.Span
}

func (t *ArrayType) Span() lexer.Span { return t.span }
func (*ArrayType) typeNode()          {}

// NewArrayType constructs an array type node.
func NewArrayType(elem TypeExpr, span lexer.Span) *ArrayType {
	return &ArrayType{Elem: elem, span: span}
}

// OptionalType represents an optional type: T?. It is sugar for the union
// of the inner type with Null.
type OptionalType struct {
	Inner TypeExpr
	span  lexer.Span
}

func (t *OptionalType) Span() lexer.Span { return t.span }
func (*OptionalType) typeNode()          {}

// NewOptionalType constructs an optional type node.
func NewOptionalType(inner TypeExpr, span lexer.Span) *OptionalType {
	return &OptionalType{Inner: inner, span: span}
}

// GenericParam represents a bare reference to a declared generic parameter
// name inside a generic declaration's signature.
type GenericParam struct {
	Name *Ident
	span lexer.Span
}

func (t *GenericParam) Span() lexer.Span { return t.span }
func (*GenericParam) typeNode()          {}

// NewGenericParam constructs a generic parameter reference node.
func NewGenericParam(name *Ident, span lexer.Span) *GenericParam {
	return &GenericParam{Name: name, span: span}
}
