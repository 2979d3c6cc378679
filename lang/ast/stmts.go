package ast

import (
	"fmt"

	"github.com/slothlang/sloth/lang/symtable"
)

// Block is a sequence of statements sharing the scope of its own body
// (a fresh child of the enclosing scope). The parser's top-level product is
// always a single Block.
type Block struct {
	stmtBase
	Stmts []Stmt
}

func NewBlock(id *IDGen, line int, scope *symtable.SymbolTable, stmts []Stmt) *Block {
	return &Block{stmtBase: newStmtBase(id.Next(), line, scope), Stmts: stmts}
}

func (b *Block) Walk(v Visitor) {
	for _, s := range b.Stmts {
		walkChild(v, s)
	}
}

func (b *Block) Format(f fmt.State, verb rune) { format(f, verb, "{ %d stmts }", len(b.Stmts)) }

// ExprStmt is an expression evaluated for its side effects, its result
// discarded.
type ExprStmt struct {
	stmtBase
	X Expr
}

func NewExprStmt(id *IDGen, line int, scope *symtable.SymbolTable, x Expr) *ExprStmt {
	return &ExprStmt{stmtBase: newStmtBase(id.Next(), line, scope), X: x}
}

func (e *ExprStmt) Walk(v Visitor) { walkChild(v, e.X) }

func (e *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, "%v;", e.X) }

// If is a conditional statement with an optional else branch. Else may be
// another *If (an "else if" chain) or any other Stmt (typically a *Block).
type If struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt
}

func NewIf(id *IDGen, line int, scope *symtable.SymbolTable, cond Expr, then, els Stmt) *If {
	return &If{stmtBase: newStmtBase(id.Next(), line, scope), Cond: cond, Then: then, Else: els}
}

func (i *If) Walk(v Visitor) {
	walkChild(v, i.Cond)
	walkChild(v, i.Then)
	walkChild(v, i.Else)
}

func (i *If) Format(f fmt.State, verb rune) { format(f, verb, "if %v", i.Cond) }

// While is a condition-checked loop.
type While struct {
	stmtBase
	Cond Expr
	Body Stmt
}

func NewWhile(id *IDGen, line int, scope *symtable.SymbolTable, cond Expr, body Stmt) *While {
	return &While{stmtBase: newStmtBase(id.Next(), line, scope), Cond: cond, Body: body}
}

func (w *While) Walk(v Visitor) { walkChild(v, w.Cond); walkChild(v, w.Body) }

func (w *While) Format(f fmt.State, verb rune) { format(f, verb, "while %v", w.Cond) }

// For is a for-in loop: `for name in iter { body }`. The analyzer always
// binds name to Integer in the loop body's scope, regardless of iter's
// element type.
type For struct {
	stmtBase
	Name string
	Iter Expr
	Body Stmt
}

func NewFor(id *IDGen, line int, scope *symtable.SymbolTable, name string, iter Expr, body Stmt) *For {
	return &For{stmtBase: newStmtBase(id.Next(), line, scope), Name: name, Iter: iter, Body: body}
}

func (fo *For) Walk(v Visitor) { walkChild(v, fo.Iter); walkChild(v, fo.Body) }

func (fo *For) Format(f fmt.State, verb rune) { format(f, verb, "for %s in %v", fo.Name, fo.Iter) }

// DefineVariable declares a mutable binding: `var name[: type] = value`.
type DefineVariable struct {
	stmtBase
	Name    string
	Value   Expr
	TypeAnn *symtable.Type
}

func NewDefineVariable(id *IDGen, line int, scope *symtable.SymbolTable, name string, value Expr, ann *symtable.Type) *DefineVariable {
	return &DefineVariable{stmtBase: newStmtBase(id.Next(), line, scope), Name: name, Value: value, TypeAnn: ann}
}

func (d *DefineVariable) Walk(v Visitor) { walkChild(v, d.Value) }

func (d *DefineVariable) Format(f fmt.State, verb rune) { format(f, verb, "var %s = %v", d.Name, d.Value) }

// DefineValue declares an immutable binding: `val name[: type] = value` (or
// `const`, which the parser treats identically at the AST level — the
// distinction that matters is Mutable=false on the resulting symbol).
type DefineValue struct {
	stmtBase
	Name    string
	Value   Expr
	TypeAnn *symtable.Type
}

func NewDefineValue(id *IDGen, line int, scope *symtable.SymbolTable, name string, value Expr, ann *symtable.Type) *DefineValue {
	return &DefineValue{stmtBase: newStmtBase(id.Next(), line, scope), Name: name, Value: value, TypeAnn: ann}
}

func (d *DefineValue) Walk(v Visitor) { walkChild(v, d.Value) }

func (d *DefineValue) Format(f fmt.State, verb rune) { format(f, verb, "val %s = %v", d.Name, d.Value) }

// AssignVariable rebinds an existing mutable variable: `name = value`.
type AssignVariable struct {
	stmtBase
	Name  string
	Value Expr
}

func NewAssignVariable(id *IDGen, line int, scope *symtable.SymbolTable, name string, value Expr) *AssignVariable {
	return &AssignVariable{stmtBase: newStmtBase(id.Next(), line, scope), Name: name, Value: value}
}

func (a *AssignVariable) Walk(v Visitor) { walkChild(v, a.Value) }

func (a *AssignVariable) Format(f fmt.State, verb rune) { format(f, verb, "%s = %v", a.Name, a.Value) }

// Param is a single function parameter: a name and its declared type.
type Param struct {
	Name string
	Type symtable.Type
}

// DefineFunction declares a function, either with a body (Kind ==
// FuncNormal) or as a foreign declaration with no body (Kind ==
// FuncForeign), resolved against the native registry at link time.
type DefineFunction struct {
	stmtBase
	Name   string
	Inputs []Param
	Output *symtable.Type
	Kind   FuncKind
	Body   Stmt // nil when Kind == FuncForeign
}

// FuncKind distinguishes a normal function (compiled body) from a foreign
// one (resolved against the native registry, no bytecode body).
type FuncKind int

const (
	FuncNormal FuncKind = iota
	FuncForeign
)

func NewDefineFunction(id *IDGen, line int, scope *symtable.SymbolTable, name string, inputs []Param, output *symtable.Type, kind FuncKind, body Stmt) *DefineFunction {
	return &DefineFunction{
		stmtBase: newStmtBase(id.Next(), line, scope),
		Name:     name, Inputs: inputs, Output: output, Kind: kind, Body: body,
	}
}

func (d *DefineFunction) Walk(v Visitor) {
	if d.Body != nil {
		walkChild(v, d.Body)
	}
}

func (d *DefineFunction) Format(f fmt.State, verb rune) { format(f, verb, "fn %s(...)", d.Name) }

// Return exits the enclosing function, optionally with a value.
type Return struct {
	stmtBase
	Value Expr // nil for a bare `return`
}

func NewReturn(id *IDGen, line int, scope *symtable.SymbolTable, value Expr) *Return {
	return &Return{stmtBase: newStmtBase(id.Next(), line, scope), Value: value}
}

func (r *Return) Walk(v Visitor) {
	if r.Value != nil {
		walkChild(v, r.Value)
	}
}

func (r *Return) Format(f fmt.State, verb rune) {
	if r.Value == nil {
		format(f, verb, "return")
		return
	}
	format(f, verb, "return %v", r.Value)
}
