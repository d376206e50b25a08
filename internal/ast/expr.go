package ast

import "github.com/chuckjaz/dyego-vibe/internal/lexer"

// IntLit represents an integer literal.
type IntLit struct {
	Raw   string
	Value int64
	span  lexer.Span
}

func (e *IntLit) Span() lexer.Span { return e.span }
func (*IntLit) exprNode()          {}

// NewIntLit constructs an integer literal node.
func NewIntLit(raw string, value int64, span lexer.Span) *IntLit {
	return &IntLit{Raw: raw, Value: value, span: span}
}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	Raw   string
	Value float64
	span  lexer.Span
}

func (e *FloatLit) Span() lexer.Span { return e.span }
func (*FloatLit) exprNode()          {}

// NewFloatLit constructs a float literal node.
func NewFloatLit(raw string, value float64, span lexer.Span) *FloatLit {
	return &FloatLit{Raw: raw, Value: value, span: span}
}

// StringLit represents a string literal. Value holds the decoded text.
type StringLit struct {
	Value string
	span  lexer.Span
}

func (e *StringLit) Span() lexer.Span { return e.span }
func (*StringLit) exprNode()          {}

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

func (e *BoolLit) Span() lexer.Span { return e.span }
func (*BoolLit) exprNode()          {}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// NullLit represents the null literal.
type NullLit struct {
	span lexer.Span
}

func (e *NullLit) Span() lexer.Span { return e.span }
func (*NullLit) exprNode()          {}

// NewNullLit constructs a null literal node.
func NewNullLit(span lexer.Span) *NullLit {
	return &NullLit{span: span}
}

// AssignExpr represents assignment to a plain variable: name = value.
// Member and index targets get their own node shapes (SetExpr, IndexSetExpr)
// so consumers never have to re-discriminate an arbitrary target expression.
type AssignExpr struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

func (e *AssignExpr) Span() lexer.Span { return e.span }
func (*AssignExpr) exprNode()          {}

// NewAssignExpr constructs a variable assignment node.
func NewAssignExpr(name *Ident, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{Name: name, Value: value, span: span}
}

// SetExpr represents member assignment: object.name = value.
type SetExpr struct {
	Object Expr
	Name   *Ident
	Value  Expr
	span   lexer.Span
}

func (e *SetExpr) Span() lexer.Span { return e.span }
func (*SetExpr) exprNode()          {}

// NewSetExpr constructs a member assignment node.
func NewSetExpr(object Expr, name *Ident, value Expr, span lexer.Span) *SetExpr {
	return &SetExpr{Object: object, Name: name, Value: value, span: span}
}

// IndexSetExpr represents index assignment: target[index] = value.
type IndexSetExpr struct {
	Target Expr
	Index  Expr
	Value  Expr
	span   lexer.Span
}

func (e *IndexSetExpr) Span() lexer.Span { return e.span }
func (*IndexSetExpr) exprNode()          {}

// NewIndexSetExpr constructs an index assignment node.
func NewIndexSetExpr(target, index, value Expr, span lexer.Span) *IndexSetExpr {
	return &IndexSetExpr{Target: target, Index: index, Value: value, span: span}
}

// BinaryExpr represents an arithmetic, comparison or equality operation.
type BinaryExpr struct {
	Left  Expr
	Op    lexer.TokenType
	Right Expr
	span  lexer.Span
}

func (e *BinaryExpr) Span() lexer.Span { return e.span }
func (*BinaryExpr) exprNode()          {}

// NewBinaryExpr constructs a binary operation node.
func NewBinaryExpr(left Expr, op lexer.TokenType, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right, span: span}
}

// LogicalExpr represents a short-circuiting && or || operation.
type LogicalExpr struct {
	Left  Expr
	Op    lexer.TokenType
	Right Expr
	span  lexer.Span
}

func (e *LogicalExpr) Span() lexer.Span { return e.span }
func (*LogicalExpr) exprNode()          {}

// NewLogicalExpr constructs a logical operation node.
func NewLogicalExpr(left Expr, op lexer.TokenType, right Expr, span lexer.Span) *LogicalExpr {
	return &LogicalExpr{Left: left, Op: op, Right: right, span: span}
}

// ElvisExpr represents the elvis operator: left ?: right.
type ElvisExpr struct {
	Left  Expr
	Right Expr
	span  lexer.Span
}

func (e *ElvisExpr) Span() lexer.Span { return e.span }
func (*ElvisExpr) exprNode()          {}

// NewElvisExpr constructs an elvis operator node.
func NewElvisExpr(left, right Expr, span lexer.Span) *ElvisExpr {
	return &ElvisExpr{Left: left, Right: right, span: span}
}

// UnaryExpr represents a prefix operation: !operand or -operand.
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expr
	span    lexer.Span
}

func (e *UnaryExpr) Span() lexer.Span { return e.span }
func (*UnaryExpr) exprNode()          {}

// NewUnaryExpr constructs a unary operation node.
func NewUnaryExpr(op lexer.TokenType, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

// Arg represents one call argument. Name is nil for positional arguments.
type Arg struct {
	Name  *Ident
	Value Expr
}

// CallExpr represents a call with positional and named arguments. A trailing
// lambda is appended as a final unnamed argument by the parser, so consumers
// see no difference between f(a, { ... }) and f(a) { ... }.
type CallExpr struct {
	Callee Expr
	Args   []Arg
	span   lexer.Span
}

func (e *CallExpr) Span() lexer.Span { return e.span }
func (*CallExpr) exprNode()          {}

// NewCallExpr constructs a call node.
func NewCallExpr(callee Expr, args []Arg, span lexer.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

// MemberExpr represents plain member access: object.name.
type MemberExpr struct {
	Object Expr
	Name   *Ident
	span   lexer.Span
}

func (e *MemberExpr) Span() lexer.Span { return e.span }
func (*MemberExpr) exprNode()          {}

// NewMemberExpr constructs a member access node.
func NewMemberExpr(object Expr, name *Ident, span lexer.Span) *MemberExpr {
	return &MemberExpr{Object: object, Name: name, span: span}
}

// SafeMemberExpr represents null-safe member access: object?.name.
type SafeMemberExpr struct {
	Object Expr
	Name   *Ident
	span   lexer.Span
}

func (e *SafeMemberExpr) Span() lexer.Span { return e.span }
func (*SafeMemberExpr) exprNode()          {}

// NewSafeMemberExpr constructs a null-safe member access node.
func NewSafeMemberExpr(object Expr, name *Ident, span lexer.Span) *SafeMemberExpr {
	return &SafeMemberExpr{Object: object, Name: name, span: span}
}

// IndexExpr represents index read access: target[index].
type IndexExpr struct {
	Target Expr
	Index  Expr
	span   lexer.Span
}

func (e *IndexExpr) Span() lexer.Span { return e.span }
func (*IndexExpr) exprNode()          {}

// NewIndexExpr constructs an index access node.
func NewIndexExpr(target, index Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{Target: target, Index: index, span: span}
}

// GroupingExpr represents a parenthesized expression. The node is kept in
// the tree so the renderer reproduces the original grouping.
type GroupingExpr struct {
	Inner Expr
	span  lexer.Span
}

func (e *GroupingExpr) Span() lexer.Span { return e.span }
func (*GroupingExpr) exprNode()          {}

// NewGroupingExpr constructs a grouping node.
func NewGroupingExpr(inner Expr, span lexer.Span) *GroupingExpr {
	return &GroupingExpr{Inner: inner, span: span}
}

// BlockExpr represents a brace-delimited statement sequence. Its value is
// the value of its last expression statement, or Unit if it is empty or ends
// in any other statement kind.
type BlockExpr struct {
	Stmts []Stmt
	span  lexer.Span
}

func (e *BlockExpr) Span() lexer.Span { return e.span }
func (*BlockExpr) exprNode()          {}

// NewBlockExpr constructs a block node.
func NewBlockExpr(stmts []Stmt, span lexer.Span) *BlockExpr {
	return &BlockExpr{Stmts: stmts, span: span}
}

// IfExpr represents a conditional used as an expression. Else may be nil.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	span lexer.Span
}

func (e *IfExpr) Span() lexer.Span { return e.span }
func (*IfExpr) exprNode()          {}

// NewIfExpr constructs a conditional node.
func NewIfExpr(cond, then, els Expr, span lexer.Span) *IfExpr {
	return &IfExpr{Cond: cond, Then: then, Else: els, span: span}
}

// WhenEntry represents one arm of a when expression.
type WhenEntry struct {
	Conditions []Expr
	Body       Expr
}

// WhenExpr represents a multi-way conditional. Subject and Else may be nil.
type WhenExpr struct {
	Subject Expr
	Entries []WhenEntry
	Else    Expr
	span    lexer.Span
}

func (e *WhenExpr) Span() lexer.Span { return e.span }
func (*WhenExpr) exprNode()          {}

// NewWhenExpr constructs a when node.
func NewWhenExpr(subject Expr, entries []WhenEntry, els Expr, span lexer.Span) *WhenExpr {
	return &WhenExpr{Subject: subject, Entries: entries, Else: els, span: span}
}

// LambdaExpr represents a lambda literal: { a, b -> body }.
type LambdaExpr struct {
	Params []*Param
	Body   *BlockExpr
	span   lexer.Span
}

func (e *LambdaExpr) Span() lexer.Span { return e.span }
func (*LambdaExpr) exprNode()          {}

// NewLambdaExpr constructs a lambda node.
func NewLambdaExpr(params []*Param, body *BlockExpr, span lexer.Span) *LambdaExpr {
	return &LambdaExpr{Params: params, Body: body, span: span}
}

// ArrayLit represents an array literal: [a, b, c].
type ArrayLit struct {
	Elements []Expr
	span     lexer.Span
}

func (e *ArrayLit) Span() lexer.Span { return e.span }
func (*ArrayLit) exprNode()          {}

// NewArrayLit constructs an array literal node.
func NewArrayLit(elements []Expr, span lexer.Span) *ArrayLit {
	return &ArrayLit{Elements: elements, span: span}
}

// PropagateExpr represents the postfix error-propagation operator: operand?.
type PropagateExpr struct {
	Operand Expr
	span    lexer.Span
}

func (e *PropagateExpr) Span() lexer.Span { return e.span }
func (*PropagateExpr) exprNode()          {}

// NewPropagateExpr constructs an error-propagation node.
func NewPropagateExpr(operand Expr, span lexer.Span) *PropagateExpr {
	return &PropagateExpr{Operand: operand, span: span}
}

// CastExpr represents a type cast: value as Type.
type CastExpr struct {
	Value Expr
	Type  TypeExpr
	span  lexer.Span
}

func (e *CastExpr) Span() lexer.Span { return e.span }
func (*CastExpr) exprNode()          {}

// NewCastExpr constructs a cast node.
func NewCastExpr(value Expr, typ TypeExpr, span lexer.Span) *CastExpr {
	return &CastExpr{Value: value, Type: typ, span: span}
}

// ThisExpr represents a reference to the enclosing value-type receiver.
type ThisExpr struct {
	span lexer.Span
}

func (e *ThisExpr) Span() lexer.Span { return e.span }
func (*ThisExpr) exprNode()          {}

// NewThisExpr constructs a receiver reference node.
func NewThisExpr(span lexer.Span) *ThisExpr {
	return &ThisExpr{span: span}
}
