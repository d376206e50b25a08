package types

import (
	"fmt"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
)

// checkStmt checks one statement and returns its derived type: the
// expression's type for an expression statement, Unit for every other kind.
// Block typing relies on this so a block ending in a non-expression
// statement is Unit-typed.
func (c *Checker) checkStmt(stmt ast.Stmt) ast.TypeExpr {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return c.checkExpr(s.Expr)
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.FunDecl:
		c.checkFunDecl(s)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.WhileStmt:
		c.checkExpr(s.Cond)
		c.checkExpr(s.Body)
	case *ast.ForStmt:
		c.checkFor(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// accepted; loop/label validation is not performed in this pass
	case *ast.TypeDecl, *ast.TraitDecl, *ast.UseDecl:
		// accepted syntactically, checked only nominally
	default:
		panic(fmt.Sprintf("types: unhandled statement %T", s))
	}
	return TypeUnit
}

func (c *Checker) checkVarDecl(s *ast.VarDecl) {
	switch {
	case s.Type != nil && s.Value != nil:
		got := c.checkExpr(s.Value)
		if !compatible(s.Type, got) {
			c.report(s.Value.Span(), "Expected type %s, but got %s", typeName(s.Type), typeName(got))
		}
		c.scope.Insert(s.Name.Name, &Symbol{Name: s.Name.Name, Type: s.Type})
	case s.Value != nil:
		got := c.checkExpr(s.Value)
		c.scope.Insert(s.Name.Name, &Symbol{Name: s.Name.Name, Type: got})
	case s.Type != nil:
		c.scope.Insert(s.Name.Name, &Symbol{Name: s.Name.Name, Type: s.Type})
	default:
		c.bailout(s.Span(), "Variable '%s' must have a type annotation or an initializer", s.Name.Name)
	}
}

// checkFunDecl binds the function's own name in the enclosing scope before
// opening the body scope, which enables direct recursion. Sibling functions
// are bound sequentially, not pre-declared, so a forward reference to a
// later sibling fails; that is the system's current behavior, preserved.
func (c *Checker) checkFunDecl(s *ast.FunDecl) {
	c.scope.Insert(s.Name.Name, &Symbol{Name: s.Name.Name, Fun: s})

	restoreScope := c.pushScope()
	defer restoreScope()
	restoreFun := c.enterFun(s)
	defer restoreFun()

	for _, param := range s.Params {
		typ := param.Type
		if typ == nil {
			typ = TypeUnit
		}
		c.scope.Insert(param.Name.Name, &Symbol{Name: param.Name.Name, Type: typ})
	}

	bodyType := c.checkExpr(s.Body)
	// A Unit-typed body (no trailing expression value) is accepted against
	// any declared return type on this branch.
	if s.ReturnType != nil && !isUnit(bodyType) && !compatible(s.ReturnType, bodyType) {
		c.report(s.Body.Span(), "Expected type %s, but got %s", typeName(s.ReturnType), typeName(bodyType))
	}
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if c.fun == nil {
		c.bailout(s.Span(), "Cannot return from top-level code")
	}

	var got ast.TypeExpr = TypeUnit
	if s.Value != nil {
		got = c.checkExpr(s.Value)
	}
	if c.fun.ReturnType != nil && !compatible(c.fun.ReturnType, got) {
		c.report(s.Span(), "Expected type %s, but got %s", typeName(c.fun.ReturnType), typeName(got))
	}
}

// checkFor binds the loop variable to the iterable's element type when the
// iterable derives to an array, and to the iterable's own type otherwise.
func (c *Checker) checkFor(s *ast.ForStmt) {
	iterType := c.checkExpr(s.Iterable)

	restore := c.pushScope()
	defer restore()

	bound := iterType
	if arr, ok := iterType.(*ast.ArrayType); ok {
		bound = arr.Elem
	}
	c.scope.Insert(s.Var.Name, &Symbol{Name: s.Var.Name, Type: bound})

	c.checkExpr(s.Body)
}
