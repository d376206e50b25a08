package parser_test

import (
	"strings"
	"testing"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/diag"
	"github.com/chuckjaz/dyego-vibe/internal/parser"
)

func parseProgram(t *testing.T, src string) []ast.Stmt {
	t.Helper()

	stmts, diags := parser.ParseSource("test.dg", src)
	assertNoDiagnostics(t, diags)
	return stmts
}

func assertNoDiagnostics(t *testing.T, diags []diag.Diagnostic) {
	t.Helper()

	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Message)
	}
	t.Fatalf("parser reported %d diagnostic(s)", len(diags))
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	stmts := parseProgram(t, src)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", stmts[0])
	}
	return es.Expr
}

func TestParseValDecl(t *testing.T) {
	stmts := parseProgram(t, "val x = 1;")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", stmts[0])
	}
	if decl.Mutable {
		t.Errorf("expected val to be immutable")
	}
	if decl.Name.Name != "x" {
		t.Errorf("expected name %q, got %q", "x", decl.Name.Name)
	}
	if decl.Type != nil {
		t.Errorf("expected no type annotation, got %T", decl.Type)
	}
	lit, ok := decl.Value.(*ast.IntLit)
	if !ok {
		t.Fatalf("expected *ast.IntLit initializer, got %T", decl.Value)
	}
	if lit.Value != 1 {
		t.Errorf("expected value 1, got %d", lit.Value)
	}
}

func TestParseVarDeclForms(t *testing.T) {
	tests := []struct {
		src      string
		mutable  bool
		hasType  bool
		hasValue bool
	}{
		{"val x = 1;", false, false, true},
		{"var y = 2;", true, false, true},
		{"val z: i32;", false, true, false},
		{"var w: String = \"s\";", true, true, true},
	}

	for _, tt := range tests {
		stmts := parseProgram(t, tt.src)
		decl, ok := stmts[0].(*ast.VarDecl)
		if !ok {
			t.Fatalf("%s: expected *ast.VarDecl, got %T", tt.src, stmts[0])
		}
		if decl.Mutable != tt.mutable {
			t.Errorf("%s: expected mutable=%v", tt.src, tt.mutable)
		}
		if (decl.Type != nil) != tt.hasType {
			t.Errorf("%s: expected hasType=%v", tt.src, tt.hasType)
		}
		if (decl.Value != nil) != tt.hasValue {
			t.Errorf("%s: expected hasValue=%v", tt.src, tt.hasValue)
		}
	}
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3;")

	add, ok := expr.(*ast.BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("expected top-level +, got %T", expr)
	}
	if _, ok := add.Left.(*ast.IntLit); !ok {
		t.Errorf("expected literal left operand, got %T", add.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected * as right operand, got %T", add.Right)
	}
}

func TestPrecedenceLadder(t *testing.T) {
	tests := []struct {
		src string
		// The type and operator expected at the root of the tree.
		check func(t *testing.T, e ast.Expr)
	}{
		{"1 * 2 + 3;", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.BinaryExpr)
			if b.Op != "+" {
				t.Errorf("expected + at root, got %q", b.Op)
			}
			if inner := b.Left.(*ast.BinaryExpr); inner.Op != "*" {
				t.Errorf("expected * on the left, got %q", inner.Op)
			}
		}},
		{"1 + 2 < 3 + 4;", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.BinaryExpr)
			if b.Op != "<" {
				t.Errorf("expected < at root, got %q", b.Op)
			}
		}},
		{"a < b == c;", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.BinaryExpr)
			if b.Op != "==" {
				t.Errorf("expected == at root, got %q", b.Op)
			}
		}},
		{"a || b && c;", func(t *testing.T, e ast.Expr) {
			l := e.(*ast.LogicalExpr)
			if l.Op != "||" {
				t.Errorf("expected || at root, got %q", l.Op)
			}
			if inner := l.Right.(*ast.LogicalExpr); inner.Op != "&&" {
				t.Errorf("expected && on the right, got %q", inner.Op)
			}
		}},
		{"a ?: b || c;", func(t *testing.T, e ast.Expr) {
			if _, ok := e.(*ast.ElvisExpr); !ok {
				t.Errorf("expected elvis at root, got %T", e)
			}
		}},
		{"-a.b;", func(t *testing.T, e ast.Expr) {
			u := e.(*ast.UnaryExpr)
			if _, ok := u.Operand.(*ast.MemberExpr); !ok {
				t.Errorf("expected member access under -, got %T", u.Operand)
			}
		}},
		{"(1 + 2) * 3;", func(t *testing.T, e ast.Expr) {
			b := e.(*ast.BinaryExpr)
			if b.Op != "*" {
				t.Errorf("expected * at root, got %q", b.Op)
			}
			if _, ok := b.Left.(*ast.GroupingExpr); !ok {
				t.Errorf("expected grouping on the left, got %T", b.Left)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tt.check(t, parseExpr(t, tt.src))
		})
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = c;")

	outer, ok := expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected *ast.AssignExpr, got %T", expr)
	}
	if outer.Name.Name != "a" {
		t.Errorf("expected target a, got %q", outer.Name.Name)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("expected nested assignment on the right, got %T", outer.Value)
	}
}

func TestElvisIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a ?: b ?: c;")

	outer, ok := expr.(*ast.ElvisExpr)
	if !ok {
		t.Fatalf("expected *ast.ElvisExpr, got %T", expr)
	}
	if _, ok := outer.Right.(*ast.ElvisExpr); !ok {
		t.Fatalf("expected nested elvis on the right, got %T", outer.Right)
	}
}

func TestCastChainsLeft(t *testing.T) {
	expr := parseExpr(t, "a as i32 as f32;")

	outer, ok := expr.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", expr)
	}
	if _, ok := outer.Value.(*ast.CastExpr); !ok {
		t.Fatalf("expected nested cast on the left, got %T", outer.Value)
	}
}

func TestAssignmentTargets(t *testing.T) {
	if _, ok := parseExpr(t, "x = 1;").(*ast.AssignExpr); !ok {
		t.Errorf("expected variable assignment node")
	}
	if _, ok := parseExpr(t, "a.b = 1;").(*ast.SetExpr); !ok {
		t.Errorf("expected member assignment node")
	}
	if _, ok := parseExpr(t, "a[0] = 1;").(*ast.IndexSetExpr); !ok {
		t.Errorf("expected index assignment node")
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, diags := parser.ParseSource("test.dg", "1 + 2 = 3;")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "Invalid assignment target." {
		t.Errorf("expected invalid target message, got %q", diags[0].Message)
	}
}

func TestCallArguments(t *testing.T) {
	call, ok := parseExpr(t, "f(1, x = 2, y);").(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr")
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
	if call.Args[0].Name != nil {
		t.Errorf("expected first argument to be positional")
	}
	if call.Args[1].Name == nil || call.Args[1].Name.Name != "x" {
		t.Errorf("expected second argument named x")
	}
	if call.Args[2].Name != nil {
		t.Errorf("expected third argument to be positional")
	}
}

// f(x == 1) must not be confused with the named argument f(x = 1).
func TestNamedArgumentNeedsAssign(t *testing.T) {
	call := parseExpr(t, "f(x == 1);").(*ast.CallExpr)
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Args))
	}
	if call.Args[0].Name != nil {
		t.Errorf("expected positional argument, got named %q", call.Args[0].Name.Name)
	}
	if _, ok := call.Args[0].Value.(*ast.BinaryExpr); !ok {
		t.Errorf("expected comparison argument, got %T", call.Args[0].Value)
	}
}

func TestTrailingLambda(t *testing.T) {
	call, ok := parseExpr(t, "map(xs) { x -> x * 2 };").(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr")
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}
	lambda, ok := call.Args[1].Value.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("expected trailing lambda argument, got %T", call.Args[1].Value)
	}
	if len(lambda.Params) != 1 || lambda.Params[0].Name.Name != "x" {
		t.Errorf("expected lambda parameter x")
	}
}

func TestBareTrailingLambda(t *testing.T) {
	call, ok := parseExpr(t, "run { doWork(); };").(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr")
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Args))
	}
	if _, ok := call.Args[0].Value.(*ast.LambdaExpr); !ok {
		t.Fatalf("expected lambda argument, got %T", call.Args[0].Value)
	}
}

func TestLambdaParameterShapes(t *testing.T) {
	tests := []struct {
		src    string
		params int
	}{
		{"val f = { a, b -> a };", 2},
		{"val f = { x -> x };", 1},
		{"val f = { -> 1 };", 0},
		{"val f = { 1 };", 0},
		{"val f = { };", 0},
	}

	for _, tt := range tests {
		stmts := parseProgram(t, tt.src)
		decl := stmts[0].(*ast.VarDecl)
		lambda, ok := decl.Value.(*ast.LambdaExpr)
		if !ok {
			t.Fatalf("%s: expected *ast.LambdaExpr, got %T", tt.src, decl.Value)
		}
		if len(lambda.Params) != tt.params {
			t.Errorf("%s: expected %d parameters, got %d", tt.src, tt.params, len(lambda.Params))
		}
	}
}

func TestPostfixChain(t *testing.T) {
	expr := parseExpr(t, "a.b?.c[0]?;")

	prop, ok := expr.(*ast.PropagateExpr)
	if !ok {
		t.Fatalf("expected *ast.PropagateExpr, got %T", expr)
	}
	idx, ok := prop.Operand.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected index under ?, got %T", prop.Operand)
	}
	safe, ok := idx.Target.(*ast.SafeMemberExpr)
	if !ok {
		t.Fatalf("expected safe member under index, got %T", idx.Target)
	}
	if _, ok := safe.Object.(*ast.MemberExpr); !ok {
		t.Fatalf("expected member access at the base, got %T", safe.Object)
	}
}

func TestIfExpr(t *testing.T) {
	stmts := parseProgram(t, "val x = if (cond) 1 else 2;")

	decl := stmts[0].(*ast.VarDecl)
	ifExpr, ok := decl.Value.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected *ast.IfExpr, got %T", decl.Value)
	}
	if _, ok := ifExpr.Then.(*ast.IntLit); !ok {
		t.Errorf("expected literal then branch, got %T", ifExpr.Then)
	}
	if _, ok := ifExpr.Else.(*ast.IntLit); !ok {
		t.Errorf("expected literal else branch, got %T", ifExpr.Else)
	}
}

func TestIfWithBlockBranches(t *testing.T) {
	expr := parseExpr(t, "if (cond) { a(); } else { b(); };")

	ifExpr, ok := expr.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected *ast.IfExpr, got %T", expr)
	}
	if _, ok := ifExpr.Then.(*ast.BlockExpr); !ok {
		t.Errorf("expected block then branch, got %T", ifExpr.Then)
	}
	if _, ok := ifExpr.Else.(*ast.BlockExpr); !ok {
		t.Errorf("expected block else branch, got %T", ifExpr.Else)
	}
}

func TestWhenExpr(t *testing.T) {
	const src = `
val desc = when (x) {
    1, 2 -> "small"
    3 -> "medium"
    else -> "large"
};
`
	stmts := parseProgram(t, src)
	decl := stmts[0].(*ast.VarDecl)
	when, ok := decl.Value.(*ast.WhenExpr)
	if !ok {
		t.Fatalf("expected *ast.WhenExpr, got %T", decl.Value)
	}
	if when.Subject == nil {
		t.Fatalf("expected a subject")
	}
	if len(when.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(when.Entries))
	}
	if len(when.Entries[0].Conditions) != 2 {
		t.Errorf("expected 2 conditions in first entry, got %d", len(when.Entries[0].Conditions))
	}
	if when.Else == nil {
		t.Errorf("expected an else arm")
	}
}

func TestSubjectlessWhen(t *testing.T) {
	const src = `
val sign = when {
    x < 0 -> -1
    x > 0 -> 1
    else -> 0
};
`
	stmts := parseProgram(t, src)
	when := stmts[0].(*ast.VarDecl).Value.(*ast.WhenExpr)
	if when.Subject != nil {
		t.Errorf("expected no subject, got %T", when.Subject)
	}
	if len(when.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(when.Entries))
	}
}

func TestFunDecl(t *testing.T) {
	const src = `
fun add(a: i32, b: i32): i32 {
    a + b
}
`
	stmts := parseProgram(t, src)
	fn, ok := stmts[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("expected *ast.FunDecl, got %T", stmts[0])
	}
	if fn.Name.Name != "add" {
		t.Errorf("expected name add, got %q", fn.Name.Name)
	}
	if fn.Mutating {
		t.Errorf("expected non-mutating function")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	ret, ok := fn.ReturnType.(*ast.NamedType)
	if !ok || ret.Name.Name != "i32" {
		t.Errorf("expected return type i32")
	}
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
}

func TestGenericFunDecl(t *testing.T) {
	stmts := parseProgram(t, "fun identity<T>(x: T): T { x }")

	fn := stmts[0].(*ast.FunDecl)
	if len(fn.TypeParams) != 1 || fn.TypeParams[0].Name != "T" {
		t.Fatalf("expected type parameter T")
	}
	if _, ok := fn.Params[0].Type.(*ast.GenericParam); !ok {
		t.Errorf("expected parameter type to resolve as generic, got %T", fn.Params[0].Type)
	}
	if _, ok := fn.ReturnType.(*ast.GenericParam); !ok {
		t.Errorf("expected return type to resolve as generic, got %T", fn.ReturnType)
	}
}

// The same bare name outside a generic declaration is an ordinary named type.
func TestBareNameOutsideGenericsIsNamed(t *testing.T) {
	stmts := parseProgram(t, "val x: T;")
	if _, ok := stmts[0].(*ast.VarDecl).Type.(*ast.NamedType); !ok {
		t.Errorf("expected named type, got %T", stmts[0].(*ast.VarDecl).Type)
	}
}

func TestUnionTypeFlattens(t *testing.T) {
	tests := []string{
		"val x: A | B | C;",
		"val x: (A | B) | C;",
		"val x: A | (B | C);",
	}

	for _, src := range tests {
		stmts := parseProgram(t, src)
		union, ok := stmts[0].(*ast.VarDecl).Type.(*ast.UnionType)
		if !ok {
			t.Fatalf("%s: expected *ast.UnionType, got %T", src, stmts[0].(*ast.VarDecl).Type)
		}
		if len(union.Members) != 3 {
			t.Fatalf("%s: expected 3 flat members, got %d", src, len(union.Members))
		}
		for i, want := range []string{"A", "B", "C"} {
			named, ok := union.Members[i].(*ast.NamedType)
			if !ok || named.Name.Name != want {
				t.Errorf("%s: member %d: expected %s, got %T", src, i, want, union.Members[i])
			}
		}
	}
}

func TestTypePostfixes(t *testing.T) {
	stmts := parseProgram(t, "val x: i32[]?;")

	opt, ok := stmts[0].(*ast.VarDecl).Type.(*ast.OptionalType)
	if !ok {
		t.Fatalf("expected optional at the top, got %T", stmts[0].(*ast.VarDecl).Type)
	}
	arr, ok := opt.Inner.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected array under optional, got %T", opt.Inner)
	}
	named, ok := arr.Elem.(*ast.NamedType)
	if !ok || named.Name.Name != "i32" {
		t.Errorf("expected i32 element type")
	}
}

func TestGenericTypeArguments(t *testing.T) {
	stmts := parseProgram(t, "val m: Map<String, i32>;")

	named, ok := stmts[0].(*ast.VarDecl).Type.(*ast.NamedType)
	if !ok {
		t.Fatalf("expected *ast.NamedType, got %T", stmts[0].(*ast.VarDecl).Type)
	}
	if named.Name.Name != "Map" || len(named.Args) != 2 {
		t.Fatalf("expected Map with 2 arguments, got %q with %d", named.Name.Name, len(named.Args))
	}
}

func TestTypeDecl(t *testing.T) {
	const src = `
type Point<T>(val x: T, var y: T) {
    fun sum(): T { this.x + this.y }
    mut fun reset() { this.y = this.x; }
}
`
	stmts := parseProgram(t, src)
	decl, ok := stmts[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", stmts[0])
	}
	if decl.Name.Name != "Point" {
		t.Errorf("expected name Point, got %q", decl.Name.Name)
	}
	if len(decl.TypeParams) != 1 {
		t.Errorf("expected 1 type parameter, got %d", len(decl.TypeParams))
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(decl.Fields))
	}
	if decl.Fields[0].Mutable {
		t.Errorf("expected field x to be immutable")
	}
	if !decl.Fields[1].Mutable {
		t.Errorf("expected field y to be mutable")
	}
	if len(decl.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(decl.Methods))
	}
	if decl.Methods[0].Mutating {
		t.Errorf("expected sum to be non-mutating")
	}
	if !decl.Methods[1].Mutating {
		t.Errorf("expected reset to be mutating")
	}
}

func TestTraitDecl(t *testing.T) {
	const src = `
trait Shape {
    fun area(): f32;
    mut fun scale(factor: f32);
}
`
	stmts := parseProgram(t, src)
	decl, ok := stmts[0].(*ast.TraitDecl)
	if !ok {
		t.Fatalf("expected *ast.TraitDecl, got %T", stmts[0])
	}
	if len(decl.Methods) != 2 {
		t.Fatalf("expected 2 method signatures, got %d", len(decl.Methods))
	}
	if decl.Methods[0].ReturnType == nil {
		t.Errorf("expected area to declare a return type")
	}
	if !decl.Methods[1].Mutating {
		t.Errorf("expected scale to be mutating")
	}
	if len(decl.Methods[1].Params) != 1 {
		t.Errorf("expected 1 parameter on scale, got %d", len(decl.Methods[1].Params))
	}
}

func TestUseDecl(t *testing.T) {
	stmts := parseProgram(t, "use trait std.ops.{add, sub};")

	decl, ok := stmts[0].(*ast.UseDecl)
	if !ok {
		t.Fatalf("expected *ast.UseDecl, got %T", stmts[0])
	}
	if !decl.Trait {
		t.Errorf("expected trait import")
	}
	if len(decl.Path) != 2 || decl.Path[0].Name != "std" || decl.Path[1].Name != "ops" {
		t.Errorf("expected path std.ops")
	}
	if len(decl.Items) != 2 || decl.Items[0].Name != "add" || decl.Items[1].Name != "sub" {
		t.Errorf("expected items add, sub")
	}
}

func TestLoopStatements(t *testing.T) {
	const src = `
while (i < 10) { i = i + 1; }
for (x in xs) consume(x);
break;
continue outer;
`
	stmts := parseProgram(t, src)
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.WhileStmt); !ok {
		t.Errorf("expected while, got %T", stmts[0])
	}
	forStmt, ok := stmts[1].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected for, got %T", stmts[1])
	}
	// A non-block loop body is wrapped into a single-statement block.
	if _, ok := forStmt.Body.(*ast.BlockExpr); !ok {
		t.Errorf("expected block body, got %T", forStmt.Body)
	}
	if _, ok := stmts[2].(*ast.BreakStmt); !ok {
		t.Errorf("expected break, got %T", stmts[2])
	}
	cont, ok := stmts[3].(*ast.ContinueStmt)
	if !ok {
		t.Fatalf("expected continue, got %T", stmts[3])
	}
	if cont.Label == nil || cont.Label.Name != "outer" {
		t.Errorf("expected label outer")
	}
}

func TestReturnStmt(t *testing.T) {
	const src = `
fun f(): i32 {
    return 1;
}
fun g() {
    return;
}
`
	stmts := parseProgram(t, src)
	ret := stmts[0].(*ast.FunDecl).Body.Stmts[0].(*ast.ReturnStmt)
	if ret.Value == nil {
		t.Errorf("expected return value")
	}
	bare := stmts[1].(*ast.FunDecl).Body.Stmts[0].(*ast.ReturnStmt)
	if bare.Value != nil {
		t.Errorf("expected bare return, got %T", bare.Value)
	}
}

func TestArrayLiteral(t *testing.T) {
	arr, ok := parseExpr(t, "[1, 2, 3];").(*ast.ArrayLit)
	if !ok {
		t.Fatalf("expected *ast.ArrayLit")
	}
	if len(arr.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(arr.Elements))
	}
}

func TestSemicolonsAreOptional(t *testing.T) {
	with := parseProgram(t, "val x = 1;\nval y = 2;")
	without := parseProgram(t, "val x = 1\nval y = 2")

	if len(with) != 2 || len(without) != 2 {
		t.Fatalf("expected 2 statements either way, got %d and %d", len(with), len(without))
	}
}

// One malformed declaration produces one diagnostic, and parsing resumes at
// the next statement boundary.
func TestRecoveryAfterMalformedDecl(t *testing.T) {
	const src = `val p = Point(1.0f, 2.0f); val q = 1;`

	stmts, diags := parser.ParseSource("test.dg", src)

	if len(diags) != 1 {
		for _, d := range diags {
			t.Logf("diagnostic: %s", d.Message)
		}
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 surviving statement, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", stmts[0])
	}
	if decl.Name.Name != "q" {
		t.Errorf("expected recovery to reach q, got %q", decl.Name.Name)
	}
}

func TestRecoveryAtDeclarationKeyword(t *testing.T) {
	const src = `
val bad = @
fun ok() { }
`
	stmts, diags := parser.ParseSource("test.dg", src)

	if len(diags) == 0 {
		t.Fatalf("expected diagnostics")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 surviving statement, got %d", len(stmts))
	}
	fn, ok := stmts[0].(*ast.FunDecl)
	if !ok || fn.Name.Name != "ok" {
		t.Fatalf("expected recovery to reach fun ok, got %T", stmts[0])
	}
}

func TestExpectedTokenDiagnostic(t *testing.T) {
	_, diags := parser.ParseSource("test.dg", "fun f( { }")

	if len(diags) == 0 {
		t.Fatalf("expected diagnostics")
	}
	if !strings.Contains(diags[0].Message, "expected") {
		t.Errorf("expected an expected-token message, got %q", diags[0].Message)
	}
	if diags[0].Span.Line == 0 {
		t.Errorf("expected a positioned diagnostic")
	}
}
