package ast

import (
	"fmt"

	"github.com/slothlang/sloth/lang/symtable"
	"github.com/slothlang/sloth/lang/token"
)

// LitKind identifies the kind of value carried by a Literal expression.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitString
	LitChar
)

// Lit is the literal value parsed out of a single token.
type Lit struct {
	Kind   LitKind
	Int    int64
	Float  float64
	Bool   bool
	String string
}

func (l Lit) String() string {
	switch l.Kind {
	case LitInt:
		return fmt.Sprintf("%d", l.Int)
	case LitFloat:
		return fmt.Sprintf("%g", l.Float)
	case LitBool:
		return fmt.Sprintf("%t", l.Bool)
	case LitChar:
		return fmt.Sprintf("%q", l.String)
	default:
		return fmt.Sprintf("%q", l.String)
	}
}

// Grouping is a parenthesized expression: (inner).
type Grouping struct {
	exprBase
	Inner Expr
}

func NewGrouping(id *IDGen, line int, scope *symtable.SymbolTable, inner Expr) *Grouping {
	return &Grouping{exprBase: newExprBase(id.Next(), line, scope, inner.IsConst()), Inner: inner}
}

func (g *Grouping) Walk(v Visitor) { walkChild(v, g.Inner) }

func (g *Grouping) Format(f fmt.State, verb rune) { format(f, verb, "(%v)", g.Inner) }

// Literal is a constant value appearing directly in source.
type Literal struct {
	exprBase
	Value Lit
}

func NewLiteral(id *IDGen, line int, scope *symtable.SymbolTable, value Lit) *Literal {
	return &Literal{exprBase: newExprBase(id.Next(), line, scope, true), Value: value}
}

func (l *Literal) Walk(Visitor) {}

func (l *Literal) Format(f fmt.State, verb rune) { format(f, verb, "%v", l.Value) }

// Identifier is a bare name reference, resolved by the analyzer against the
// node's Scope().
type Identifier struct {
	exprBase
	Name string
}

func NewIdentifier(id *IDGen, line int, scope *symtable.SymbolTable, name string) *Identifier {
	return &Identifier{exprBase: newExprBase(id.Next(), line, scope, false), Name: name}
}

func (i *Identifier) Walk(Visitor) {}

func (i *Identifier) Format(f fmt.State, verb rune) { format(f, verb, "%s", i.Name) }

// Binary is a binary operator expression: lhs op rhs.
type Binary struct {
	exprBase
	Op  token.Token
	LHS Expr
	RHS Expr
}

func NewBinary(id *IDGen, line int, scope *symtable.SymbolTable, op token.Token, lhs, rhs Expr) *Binary {
	return &Binary{
		exprBase: newExprBase(id.Next(), line, scope, lhs.IsConst() && rhs.IsConst()),
		Op:       op, LHS: lhs, RHS: rhs,
	}
}

func (b *Binary) Walk(v Visitor) { walkChild(v, b.LHS); walkChild(v, b.RHS) }

func (b *Binary) Format(f fmt.State, verb rune) { format(f, verb, "(%v %s %v)", b.LHS, b.Op, b.RHS) }

// Unary is a unary operator expression: op value.
type Unary struct {
	exprBase
	Op    token.Token
	Value Expr
}

func NewUnary(id *IDGen, line int, scope *symtable.SymbolTable, op token.Token, value Expr) *Unary {
	return &Unary{exprBase: newExprBase(id.Next(), line, scope, value.IsConst()), Op: op, Value: value}
}

func (u *Unary) Walk(v Visitor) { walkChild(v, u.Value) }

func (u *Unary) Format(f fmt.State, verb rune) { format(f, verb, "(%s%v)", u.Op, u.Value) }

// Call is a function call expression: callee(args...).
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func NewCall(id *IDGen, line int, scope *symtable.SymbolTable, callee Expr, args []Expr) *Call {
	return &Call{exprBase: newExprBase(id.Next(), line, scope, false), Callee: callee, Args: args}
}

func (c *Call) Walk(v Visitor) {
	walkChild(v, c.Callee)
	for _, a := range c.Args {
		walkChild(v, a)
	}
}

func (c *Call) Format(f fmt.State, verb rune) { format(f, verb, "%v(...)", c.Callee) }

// ArrayLiteral is an array literal `[e1, ..., en]`. It is additive to the
// ExprKind enumeration: every element type must agree (checked by the
// analyzer), and an empty literal requires an explicit Array(T) annotation
// in scope to supply its element type.
type ArrayLiteral struct {
	exprBase
	Elems []Expr
}

func NewArrayLiteral(id *IDGen, line int, scope *symtable.SymbolTable, elems []Expr) *ArrayLiteral {
	allConst := true
	for _, e := range elems {
		if !e.IsConst() {
			allConst = false
			break
		}
	}
	return &ArrayLiteral{exprBase: newExprBase(id.Next(), line, scope, allConst), Elems: elems}
}

func (a *ArrayLiteral) Walk(v Visitor) {
	for _, e := range a.Elems {
		walkChild(v, e)
	}
}

func (a *ArrayLiteral) Format(f fmt.State, verb rune) { format(f, verb, "[%d elems]", len(a.Elems)) }

func walkChild(v Visitor, n Node) {
	if n == nil {
		return
	}
	Walk(v, n)
}
