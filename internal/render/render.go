// Package render produces canonical source text from a syntax tree. It is
// the diagnostic and test oracle for the front end: rendering a parsed tree
// and re-parsing the result must yield a tree that renders identically.
//
// The checker also uses Type as the canonical serialization that backs its
// type-compatibility judgment.
package render

import (
	"fmt"
	"strings"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
)

// Program renders a top-level statement sequence.
func Program(stmts []ast.Stmt) string {
	r := &renderer{}
	for _, s := range stmts {
		r.stmt(s)
		r.newline()
	}
	return r.b.String()
}

// Expr renders a single expression.
func Expr(e ast.Expr) string {
	r := &renderer{}
	r.expr(e)
	return r.b.String()
}

// Type renders a type expression to its canonical string form.
func Type(t ast.TypeExpr) string {
	r := &renderer{}
	r.typ(t)
	return r.b.String()
}

type renderer struct {
	b      strings.Builder
	indent int
}

func (r *renderer) write(s string) {
	r.b.WriteString(s)
}

func (r *renderer) newline() {
	r.b.WriteString("\n")
	for i := 0; i < r.indent; i++ {
		r.b.WriteString("    ")
	}
}

func (r *renderer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		r.expr(s.Expr)
		r.write(";")
	case *ast.VarDecl:
		if s.Mutable {
			r.write("var ")
		} else {
			r.write("val ")
		}
		r.write(s.Name.Name)
		if s.Type != nil {
			r.write(": ")
			r.typ(s.Type)
		}
		if s.Value != nil {
			r.write(" = ")
			r.expr(s.Value)
		}
		r.write(";")
	case *ast.FunDecl:
		r.funDecl(s)
	case *ast.ReturnStmt:
		r.write("return")
		if s.Value != nil {
			r.write(" ")
			r.expr(s.Value)
		}
		r.write(";")
	case *ast.WhileStmt:
		r.write("while (")
		r.expr(s.Cond)
		r.write(") ")
		r.expr(s.Body)
	case *ast.ForStmt:
		r.write("for (")
		r.write(s.Var.Name)
		r.write(" in ")
		r.expr(s.Iterable)
		r.write(") ")
		r.expr(s.Body)
	case *ast.BreakStmt:
		r.write("break")
		if s.Label != nil {
			r.write(" " + s.Label.Name)
		}
		r.write(";")
	case *ast.ContinueStmt:
		r.write("continue")
		if s.Label != nil {
			r.write(" " + s.Label.Name)
		}
		r.write(";")
	case *ast.TypeDecl:
		r.typeDecl(s)
	case *ast.TraitDecl:
		r.traitDecl(s)
	case *ast.UseDecl:
		r.useDecl(s)
	default:
		panic(fmt.Sprintf("render: unhandled statement %T", s))
	}
}

func (r *renderer) funDecl(s *ast.FunDecl) {
	if s.Mutating {
		r.write("mut ")
	}
	r.write("fun " + s.Name.Name)
	if len(s.TypeParams) > 0 {
		r.write("<")
		for i, tp := range s.TypeParams {
			if i > 0 {
				r.write(", ")
			}
			r.write(tp.Name)
		}
		r.write(">")
	}
	r.write("(")
	for i, param := range s.Params {
		if i > 0 {
			r.write(", ")
		}
		r.write(param.Name.Name)
		r.write(": ")
		r.typ(param.Type)
	}
	r.write(")")
	if s.ReturnType != nil {
		r.write(": ")
		r.typ(s.ReturnType)
	}
	r.write(" ")
	r.block(s.Body)
}

func (r *renderer) typeDecl(s *ast.TypeDecl) {
	r.write("type " + s.Name.Name)
	if len(s.TypeParams) > 0 {
		r.write("<")
		for i, tp := range s.TypeParams {
			if i > 0 {
				r.write(", ")
			}
			r.write(tp.Name)
		}
		r.write(">")
	}
	r.write("(")
	for i, field := range s.Fields {
		if i > 0 {
			r.write(", ")
		}
		if field.Mutable {
			r.write("var ")
		}
		r.write(field.Name.Name)
		r.write(": ")
		r.typ(field.Type)
	}
	r.write(")")
	if len(s.Methods) > 0 {
		r.write(" {")
		r.indent++
		for _, m := range s.Methods {
			r.newline()
			r.funDecl(m)
		}
		r.indent--
		r.newline()
		r.write("}")
	}
	r.write(";")
}

func (r *renderer) traitDecl(s *ast.TraitDecl) {
	r.write("trait " + s.Name.Name + " {")
	r.indent++
	for _, m := range s.Methods {
		r.newline()
		if m.Mutating {
			r.write("mut ")
		}
		r.write("fun " + m.Name.Name + "(")
		for i, param := range m.Params {
			if i > 0 {
				r.write(", ")
			}
			r.write(param.Name.Name)
			r.write(": ")
			r.typ(param.Type)
		}
		r.write(")")
		if m.ReturnType != nil {
			r.write(": ")
			r.typ(m.ReturnType)
		}
		r.write(";")
	}
	r.indent--
	r.newline()
	r.write("};")
}

func (r *renderer) useDecl(s *ast.UseDecl) {
	r.write("use ")
	if s.Trait {
		r.write("trait ")
	}
	for i, seg := range s.Path {
		if i > 0 {
			r.write(".")
		}
		r.write(seg.Name)
	}
	if len(s.Items) > 0 {
		r.write(".{")
		for i, item := range s.Items {
			if i > 0 {
				r.write(", ")
			}
			r.write(item.Name)
		}
		r.write("}")
	}
	r.write(";")
}

func (r *renderer) block(b *ast.BlockExpr) {
	if len(b.Stmts) == 0 {
		r.write("{}")
		return
	}
	r.write("{")
	r.indent++
	for _, s := range b.Stmts {
		r.newline()
		r.stmt(s)
	}
	r.indent--
	r.newline()
	r.write("}")
}

func (r *renderer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.IntLit:
		r.write(e.Raw)
	case *ast.FloatLit:
		r.write(e.Raw)
	case *ast.StringLit:
		r.write(quote(e.Value))
	case *ast.BoolLit:
		if e.Value {
			r.write("true")
		} else {
			r.write("false")
		}
	case *ast.NullLit:
		r.write("null")
	case *ast.Ident:
		r.write(e.Name)
	case *ast.ThisExpr:
		r.write("this")
	case *ast.AssignExpr:
		r.write(e.Name.Name)
		r.write(" = ")
		r.expr(e.Value)
	case *ast.SetExpr:
		r.expr(e.Object)
		r.write("." + e.Name.Name + " = ")
		r.expr(e.Value)
	case *ast.IndexSetExpr:
		r.expr(e.Target)
		r.write("[")
		r.expr(e.Index)
		r.write("] = ")
		r.expr(e.Value)
	case *ast.BinaryExpr:
		r.expr(e.Left)
		r.write(" " + string(e.Op) + " ")
		r.expr(e.Right)
	case *ast.LogicalExpr:
		r.expr(e.Left)
		r.write(" " + string(e.Op) + " ")
		r.expr(e.Right)
	case *ast.ElvisExpr:
		r.expr(e.Left)
		r.write(" ?: ")
		r.expr(e.Right)
	case *ast.UnaryExpr:
		r.write(string(e.Op))
		r.expr(e.Operand)
	case *ast.CallExpr:
		r.expr(e.Callee)
		r.write("(")
		for i, arg := range e.Args {
			if i > 0 {
				r.write(", ")
			}
			if arg.Name != nil {
				r.write(arg.Name.Name + " = ")
			}
			r.expr(arg.Value)
		}
		r.write(")")
	case *ast.MemberExpr:
		r.expr(e.Object)
		r.write("." + e.Name.Name)
	case *ast.SafeMemberExpr:
		r.expr(e.Object)
		r.write("?." + e.Name.Name)
	case *ast.IndexExpr:
		r.expr(e.Target)
		r.write("[")
		r.expr(e.Index)
		r.write("]")
	case *ast.GroupingExpr:
		r.write("(")
		r.expr(e.Inner)
		r.write(")")
	case *ast.BlockExpr:
		r.block(e)
	case *ast.IfExpr:
		r.write("if (")
		r.expr(e.Cond)
		r.write(") ")
		r.expr(e.Then)
		if e.Else != nil {
			r.write(" else ")
			r.expr(e.Else)
		}
	case *ast.WhenExpr:
		r.write("when ")
		if e.Subject != nil {
			r.write("(")
			r.expr(e.Subject)
			r.write(") ")
		}
		r.write("{")
		r.indent++
		for _, entry := range e.Entries {
			r.newline()
			for i, cond := range entry.Conditions {
				if i > 0 {
					r.write(", ")
				}
				r.expr(cond)
			}
			r.write(" -> ")
			r.expr(entry.Body)
		}
		if e.Else != nil {
			r.newline()
			r.write("else -> ")
			r.expr(e.Else)
		}
		r.indent--
		r.newline()
		r.write("}")
	case *ast.LambdaExpr:
		r.lambda(e)
	case *ast.ArrayLit:
		r.write("[")
		for i, elem := range e.Elements {
			if i > 0 {
				r.write(", ")
			}
			r.expr(elem)
		}
		r.write("]")
	case *ast.PropagateExpr:
		r.expr(e.Operand)
		r.write("?")
	case *ast.CastExpr:
		r.expr(e.Value)
		r.write(" as ")
		r.typ(e.Type)
	default:
		panic(fmt.Sprintf("render: unhandled expression %T", e))
	}
}

func (r *renderer) lambda(e *ast.LambdaExpr) {
	r.write("{")
	if len(e.Params) > 0 {
		r.write(" ")
		for i, param := range e.Params {
			if i > 0 {
				r.write(", ")
			}
			r.write(param.Name.Name)
		}
		r.write(" ->")
	}
	if len(e.Body.Stmts) == 0 {
		r.write(" }")
		return
	}
	r.indent++
	for _, s := range e.Body.Stmts {
		r.newline()
		r.stmt(s)
	}
	r.indent--
	r.newline()
	r.write("}")
}

func (r *renderer) typ(t ast.TypeExpr) {
	switch t := t.(type) {
	case *ast.NamedType:
		r.write(t.Name.Name)
		if len(t.Args) > 0 {
			r.write("<")
			for i, arg := range t.Args {
				if i > 0 {
					r.write(", ")
				}
				r.typ(arg)
			}
			r.write(">")
		}
	case *ast.UnionType:
		for i, m := range t.Members {
			if i > 0 {
				r.write(" | ")
			}
			r.groupedTyp(m)
		}
	case *ast.ArrayType:
		r.groupedTyp(t.Elem)
		r.write("[]")
	case *ast.OptionalType:
		r.groupedTyp(t.Inner)
		r.write("?")
	case *ast.GenericParam:
		r.write(t.Name.Name)
	default:
		panic(fmt.Sprintf("render: unhandled type %T", t))
	}
}

// groupedTyp parenthesizes a union appearing under a postfix or as a union
// member, since a bare union there would re-parse with different structure.
func (r *renderer) groupedTyp(t ast.TypeExpr) {
	if _, ok := t.(*ast.UnionType); ok {
		r.write("(")
		r.typ(t)
		r.write(")")
		return
	}
	r.typ(t)
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range s {
		switch ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}
