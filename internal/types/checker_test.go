package types_test

import (
	"testing"

	"github.com/chuckjaz/dyego-vibe/internal/diag"
	"github.com/chuckjaz/dyego-vibe/internal/parser"
	"github.com/chuckjaz/dyego-vibe/internal/types"
)

func check(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()

	stmts, syntax := parser.ParseSource("test.dg", src)
	if len(syntax) != 0 {
		for _, d := range syntax {
			t.Errorf("unexpected syntax diagnostic: %s", d.Message)
		}
		t.Fatalf("source failed to parse")
	}
	return types.Check(stmts)
}

func assertClean(t *testing.T, src string) {
	t.Helper()

	diags := check(t, src)
	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d.Message)
	}
	t.Fatalf("checker reported %d diagnostic(s)", len(diags))
}

func assertError(t *testing.T, src, want string) {
	t.Helper()

	diags := check(t, src)
	if len(diags) != 1 {
		for _, d := range diags {
			t.Logf("diagnostic: %s", d.Message)
		}
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Message != want {
		t.Fatalf("expected message %q, got %q", want, diags[0].Message)
	}
	if diags[0].Stage != diag.StageTypeCheck {
		t.Errorf("expected typecheck stage, got %q", diags[0].Stage)
	}
}

func TestVarDeclWithMatchingInitializer(t *testing.T) {
	assertClean(t, `val x: i32 = 1;`)
}

func TestVarDeclMismatch(t *testing.T) {
	assertError(t, `val x: i32 = "hello";`, "Expected type i32, but got String")
}

func TestVarDeclNeedsTypeOrValue(t *testing.T) {
	assertError(t, `val x;`, "Variable 'x' must have a type annotation or an initializer")
}

func TestLiteralInference(t *testing.T) {
	assertClean(t, `
val a = 1;
val b: i32 = a;
val c = 2.5;
val d: f32 = c;
val e = "text";
val f: String = e;
val g = true;
val h: Bool = g;
`)
}

func TestUndefinedVariable(t *testing.T) {
	assertError(t, `missing;`, "Undefined variable 'missing'")
}

func TestShadowing(t *testing.T) {
	assertClean(t, `
val x = "outer";
fun f(): i32 {
    val x = 1;
    x
}
val y: String = x;
`)
}

func TestAssignmentMismatch(t *testing.T) {
	assertError(t, `
var x = 1;
x = "s";
`, "Expected type i32, but got String")
}

// Assignment used as an expression carries the variable's type.
func TestAssignmentExpressionType(t *testing.T) {
	assertClean(t, `
var x = 1;
val y: i32 = x = 2;
`)
}

func TestArityMismatch(t *testing.T) {
	assertError(t, `
fun f(a: i32) { }
f(1, 2);
`, "Expected 1 arguments but got 2.")
}

// An arity mismatch suppresses per-argument checks: the mismatched call
// produces exactly one diagnostic even when argument types are also wrong.
func TestArityMismatchSuppressesArgChecks(t *testing.T) {
	assertError(t, `
fun f(a: i32) { }
f("x", "y");
`, "Expected 1 arguments but got 2.")
}

func TestArgumentTypeChecks(t *testing.T) {
	diags := check(t, `
fun f(a: i32, b: String) { }
f("x", 1);
`)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Message != "Expected type i32, but got String" {
		t.Errorf("first argument: got %q", diags[0].Message)
	}
	if diags[1].Message != "Expected type String, but got i32" {
		t.Errorf("second argument: got %q", diags[1].Message)
	}
}

func TestCallUndefinedFunction(t *testing.T) {
	assertError(t, `g();`, "Undefined variable 'g'")
}

func TestCallNonFunction(t *testing.T) {
	assertError(t, `
val x = 1;
x();
`, "Can only call named functions")
}

func TestCallThroughExpression(t *testing.T) {
	assertError(t, `
fun f() { }
(f)();
`, "Can only call named functions")
}

func TestCallResultType(t *testing.T) {
	assertClean(t, `
fun answer(): i32 { 42 }
val x: i32 = answer();
`)
}

func TestRecursionIsVisibleInOwnBody(t *testing.T) {
	assertClean(t, `
fun fact(n: i32): i32 {
    if (n < 1) 1 else fact(n - 1) * n
}
`)
}

// Sibling functions bind in order: a forward reference to a later sibling
// does not resolve.
func TestForwardReferenceToLaterSibling(t *testing.T) {
	assertError(t, `
fun a() { b(); }
fun b() { }
`, "Undefined variable 'b'")
}

func TestReturnOutsideFunction(t *testing.T) {
	assertError(t, `return 1;`, "Cannot return from top-level code")
}

func TestReturnTypeMismatch(t *testing.T) {
	assertError(t, `
fun f(): i32 {
    return "s";
}
`, "Expected type i32, but got String")
}

func TestBodyValueAgainstReturnType(t *testing.T) {
	assertClean(t, `
fun f(): i32 {
    val a = 2;
    a * 3
}
`)
}

func TestBodyValueMismatch(t *testing.T) {
	assertError(t, `
fun f(): i32 {
    "s"
}
`, "Expected type i32, but got String")
}

// A body whose last statement is not an expression is Unit-typed, and a
// Unit-typed body is accepted against any declared return type.
func TestUnitBodyAccepted(t *testing.T) {
	assertClean(t, `
fun f(): i32 {
    val x = 1;
}
`)
}

func TestIfConditionMustBeBool(t *testing.T) {
	assertError(t, `if (1) 2 else 3;`, "If condition must be a Bool, but got i32")
}

func TestIfBranchMismatch(t *testing.T) {
	assertError(t, `val x = if (true) 1 else "s";`, "If branches must return compatible types")
}

func TestIfExpressionType(t *testing.T) {
	assertClean(t, `val x: i32 = if (true) 1 else 2;`)
}

func TestComparisonYieldsBool(t *testing.T) {
	assertClean(t, `val b: Bool = 1 < 2;`)
}

func TestComparisonOperandMismatch(t *testing.T) {
	assertError(t, `1 < "s";`, "Expected type i32, but got String")
}

// Equality operators accept operands of any two types.
func TestEqualityAcceptsMixedOperands(t *testing.T) {
	assertClean(t, `val b: Bool = 1 == "s";`)
}

func TestArithmeticOperandMismatch(t *testing.T) {
	assertError(t, `1 + "s";`, "Expected type i32, but got String")
}

func TestLogicalAndUnary(t *testing.T) {
	assertClean(t, `
val a: Bool = true && false || true;
val b: Bool = !true;
val n: i32 = -5;
`)
}

func TestElvisYieldsLeftType(t *testing.T) {
	assertClean(t, `val x: i32 = 1 ?: 2;`)
}

func TestCastYieldsTargetType(t *testing.T) {
	assertClean(t, `val f: f32 = 1 as f32;`)
}

func TestForLoopBindsElementType(t *testing.T) {
	assertClean(t, `
val xs: i32[];
for (x in xs) {
    val y: i32 = x;
}
`)
}

func TestWhileChecksCondition(t *testing.T) {
	assertError(t, `while (missing) { }`, "Undefined variable 'missing'")
}

// Named-type compatibility is judged by name alone; generic arguments are
// not compared.
func TestNamedTypeCompatIgnoresGenericArgs(t *testing.T) {
	assertClean(t, `
val x: Box<i32>;
val y: Box<String> = x;
`)
}

// A union is not accepted where one of its members is expected; there is no
// union subsumption in this pass.
func TestUnionIsNotItsMember(t *testing.T) {
	assertError(t, `
val u: i32 | Null;
val x: i32 = u;
`, "Expected type i32, but got i32 | Null")
}

func TestArrayCompatByElement(t *testing.T) {
	assertClean(t, `
val xs: i32[];
val ys: i32[] = xs;
`)
}

func TestArrayElementMismatch(t *testing.T) {
	assertError(t, `
val xs: i32[];
val ys: String[] = xs;
`, "Expected type String[], but got i32[]")
}

// A hard error aborts only the statement that raised it: the function scope
// unwinds cleanly and later top-level statements are still checked.
func TestCheckingContinuesAfterHardError(t *testing.T) {
	diags := check(t, `
fun f() { unknownCall(); }
val ok: i32 = 1;
val bad: i32 = "s";
`)
	if len(diags) != 2 {
		for _, d := range diags {
			t.Logf("diagnostic: %s", d.Message)
		}
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Message != "Undefined variable 'unknownCall'" {
		t.Errorf("first: got %q", diags[0].Message)
	}
	if diags[1].Message != "Expected type i32, but got String" {
		t.Errorf("second: got %q", diags[1].Message)
	}
}

func TestBlockScopingDoesNotLeak(t *testing.T) {
	assertError(t, `
fun f() {
    val inner = 1;
}
inner;
`, "Undefined variable 'inner'")
}

func TestDiagnosticSpansArePositioned(t *testing.T) {
	diags := check(t, `val x: i32 = "hello";`)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if !diags[0].Span.IsValid() {
		t.Fatalf("expected a valid span, got %+v", diags[0].Span)
	}
	if diags[0].Span.Filename != "test.dg" {
		t.Errorf("expected filename test.dg, got %q", diags[0].Span.Filename)
	}
}
