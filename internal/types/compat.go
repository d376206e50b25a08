package types

import (
	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
	"github.com/chuckjaz/dyego-vibe/internal/render"
)

// Built-in named types. Literal inference defaults integral literals to i32
// and non-integral ones to f32; declared annotations override the default.
var (
	TypeI32    = named("i32")
	TypeF32    = named("f32")
	TypeString = named("String")
	TypeBool   = named("Bool")
	TypeNull   = named("Null")
	TypeUnit   = named("Unit")
)

func named(name string) *ast.NamedType {
	return ast.NewNamedType(ast.NewIdent(name, lexer.Span{}), nil, lexer.Span{})
}

func isUnit(t ast.TypeExpr) bool {
	n, ok := t.(*ast.NamedType)
	return ok && len(n.Args) == 0 && n.Name.Name == "Unit"
}

// typeName renders a type to the canonical string used in diagnostics and
// in the compatibility judgment.
func typeName(t ast.TypeExpr) string {
	return render.Type(t)
}

// compatible judges type compatibility. Two named types are compatible iff
// their names match exactly (no subtyping, no structural matching). Arrays
// are compatible iff their element renderings match. Everything else falls
// back to comparing full canonical renderings, which is coarser than true
// structural equality: unions, optionals and generic parameters get no
// special-casing, so `A | B` is not accepted for a value of type `A`.
func compatible(want, got ast.TypeExpr) bool {
	if want == nil || got == nil {
		return true
	}
	if w, ok := want.(*ast.NamedType); ok {
		if g, ok := got.(*ast.NamedType); ok {
			return w.Name.Name == g.Name.Name
		}
	}
	if w, ok := want.(*ast.ArrayType); ok {
		if g, ok := got.(*ast.ArrayType); ok {
			return typeName(w.Elem) == typeName(g.Elem)
		}
	}
	return typeName(want) == typeName(got)
}
