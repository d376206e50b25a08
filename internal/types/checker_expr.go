package types

import (
	"fmt"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

// checkExpr derives a type for an expression, reporting diagnostics along
// the way. Derivation is purely structural and bottom-up: one pass, no
// fixpoint. Several variants are accepted but typed only nominally as Unit;
// that reflects the intentionally incomplete state of semantic analysis.
func (c *Checker) checkExpr(expr ast.Expr) ast.TypeExpr {
	switch e := expr.(type) {
	case *ast.IntLit:
		return TypeI32
	case *ast.FloatLit:
		return TypeF32
	case *ast.StringLit:
		return TypeString
	case *ast.BoolLit:
		return TypeBool
	case *ast.NullLit:
		return TypeNull
	case *ast.Ident:
		return c.checkIdent(e)
	case *ast.AssignExpr:
		return c.checkAssign(e)
	case *ast.SetExpr:
		c.checkExpr(e.Object)
		c.checkExpr(e.Value)
		return TypeUnit
	case *ast.IndexSetExpr:
		c.checkExpr(e.Target)
		c.checkExpr(e.Index)
		c.checkExpr(e.Value)
		return TypeUnit
	case *ast.BinaryExpr:
		return c.checkBinary(e)
	case *ast.LogicalExpr:
		c.checkExpr(e.Left)
		c.checkExpr(e.Right)
		return TypeBool
	case *ast.ElvisExpr:
		left := c.checkExpr(e.Left)
		c.checkExpr(e.Right)
		return left
	case *ast.UnaryExpr:
		operand := c.checkExpr(e.Operand)
		if e.Op == lexer.BANG {
			return TypeBool
		}
		return operand
	case *ast.CallExpr:
		return c.checkCall(e)
	case *ast.MemberExpr:
		c.checkExpr(e.Object)
		return TypeUnit
	case *ast.SafeMemberExpr:
		c.checkExpr(e.Object)
		return TypeUnit
	case *ast.IndexExpr:
		c.checkExpr(e.Target)
		c.checkExpr(e.Index)
		return TypeUnit
	case *ast.GroupingExpr:
		return c.checkExpr(e.Inner)
	case *ast.BlockExpr:
		return c.checkBlock(e)
	case *ast.IfExpr:
		return c.checkIf(e)
	case *ast.WhenExpr:
		return c.checkWhen(e)
	case *ast.LambdaExpr:
		return c.checkLambda(e)
	case *ast.ArrayLit:
		for _, elem := range e.Elements {
			c.checkExpr(elem)
		}
		return TypeUnit
	case *ast.PropagateExpr:
		return c.checkExpr(e.Operand)
	case *ast.CastExpr:
		c.checkExpr(e.Value)
		return e.Type
	case *ast.ThisExpr:
		return TypeUnit
	default:
		panic(fmt.Sprintf("types: unhandled expression %T", e))
	}
}

func (c *Checker) checkIdent(e *ast.Ident) ast.TypeExpr {
	sym := c.scope.Lookup(e.Name)
	if sym == nil {
		c.report(e.Span(), "Undefined variable '%s'", e.Name)
		return TypeUnit
	}
	if sym.Fun != nil {
		// Functions are not first-class values in this pass.
		return TypeUnit
	}
	return sym.Type
}

// checkAssign yields the variable's currently bound type as the
// expression's result. The language documentation says assignment evaluates
// to the previous value; that is a value-domain behavior a type derivation
// cannot express, so the variable's type stands in for both.
func (c *Checker) checkAssign(e *ast.AssignExpr) ast.TypeExpr {
	got := c.checkExpr(e.Value)

	sym := c.scope.Lookup(e.Name.Name)
	if sym == nil {
		c.report(e.Name.Span(), "Undefined variable '%s'", e.Name.Name)
		return TypeUnit
	}
	if sym.Fun != nil || sym.Type == nil {
		return TypeUnit
	}
	if !compatible(sym.Type, got) {
		c.report(e.Value.Span(), "Expected type %s, but got %s", typeName(sym.Type), typeName(got))
	}
	return sym.Type
}

// checkBinary requires compatible operands for arithmetic and comparison
// operators. Equality operators skip the operand check and always yield
// Bool; comparison operators yield Bool after checking.
func (c *Checker) checkBinary(e *ast.BinaryExpr) ast.TypeExpr {
	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)

	switch e.Op {
	case lexer.EQ, lexer.NOT_EQ:
		return TypeBool
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		if !compatible(left, right) {
			c.report(e.Span(), "Expected type %s, but got %s", typeName(left), typeName(right))
		}
		return TypeBool
	default:
		if !compatible(left, right) {
			c.report(e.Span(), "Expected type %s, but got %s", typeName(left), typeName(right))
		}
		return left
	}
}

// checkCall resolves the callee through the scope chain to a function
// declaration; calls through arbitrary expressions are a hard error. Arity
// must match exactly and each positional argument is checked against the
// corresponding parameter's declared type in order.
func (c *Checker) checkCall(e *ast.CallExpr) ast.TypeExpr {
	callee, ok := e.Callee.(*ast.Ident)
	if !ok {
		c.bailout(e.Callee.Span(), "Can only call named functions")
	}
	sym := c.scope.Lookup(callee.Name)
	if sym == nil {
		c.bailout(callee.Span(), "Undefined variable '%s'", callee.Name)
	}
	if sym.Fun == nil {
		c.bailout(callee.Span(), "Can only call named functions")
	}
	decl := sym.Fun

	var result ast.TypeExpr = TypeUnit
	if decl.ReturnType != nil {
		result = decl.ReturnType
	}

	if len(e.Args) != len(decl.Params) {
		c.report(e.Span(), "Expected %d arguments but got %d.", len(decl.Params), len(e.Args))
		return result
	}
	for i, arg := range e.Args {
		got := c.checkExpr(arg.Value)
		if arg.Name != nil {
			// Named arguments are accepted but not matched to parameters.
			continue
		}
		want := decl.Params[i].Type
		if want != nil && !compatible(want, got) {
			c.report(arg.Value.Span(), "Expected type %s, but got %s", typeName(want), typeName(got))
		}
	}
	return result
}

// checkBlock types a block as its last statement when that statement is an
// expression statement, and Unit otherwise. Every inner statement is
// checked either way for its diagnostics.
func (c *Checker) checkBlock(e *ast.BlockExpr) ast.TypeExpr {
	restore := c.pushScope()
	defer restore()

	var result ast.TypeExpr = TypeUnit
	for _, stmt := range e.Stmts {
		t := c.checkStmt(stmt)
		if _, ok := stmt.(*ast.ExprStmt); ok {
			result = t
		} else {
			result = TypeUnit
		}
	}
	return result
}

func (c *Checker) checkIf(e *ast.IfExpr) ast.TypeExpr {
	cond := c.checkExpr(e.Cond)
	if !compatible(TypeBool, cond) {
		c.report(e.Cond.Span(), "If condition must be a Bool, but got %s", typeName(cond))
	}

	thenType := c.checkExpr(e.Then)
	if e.Else != nil {
		elseType := c.checkExpr(e.Else)
		if !compatible(thenType, elseType) {
			c.report(e.Span(), "If branches must return compatible types")
		}
	}
	return thenType
}

func (c *Checker) checkWhen(e *ast.WhenExpr) ast.TypeExpr {
	if e.Subject != nil {
		c.checkExpr(e.Subject)
	}
	for _, entry := range e.Entries {
		for _, cond := range entry.Conditions {
			c.checkExpr(cond)
		}
		c.checkExpr(entry.Body)
	}
	if e.Else != nil {
		c.checkExpr(e.Else)
	}
	return TypeUnit
}

func (c *Checker) checkLambda(e *ast.LambdaExpr) ast.TypeExpr {
	restore := c.pushScope()
	defer restore()

	for _, param := range e.Params {
		typ := param.Type
		if typ == nil {
			typ = TypeUnit
		}
		c.scope.Insert(param.Name.Name, &Symbol{Name: param.Name.Name, Type: typ})
	}
	c.checkExpr(e.Body)
	return TypeUnit
}
