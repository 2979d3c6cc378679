// Package ast defines Sloth's abstract syntax tree: a tagged-variant tree
// whose nodes carry a node-id, a source line, and a handle into the
// lexically scoped symbol table chain built by the parser.
package ast

import (
	"github.com/slothlang/sloth/lang/symtable"
	"github.com/slothlang/sloth/lang/token"
)

// Node is the common interface implemented by every Expr and Stmt.
type Node interface {
	// NodeID is unique within a single parse.
	NodeID() int
	// Line is the 1-based source line the node starts on.
	Line() int
	// Scope is the lexical scope the node was parsed in.
	Scope() *symtable.SymbolTable
	// Walk visits the node's direct children with v.
	Walk(v Visitor)
}

// Expr is any expression node. Every Expr additionally carries a mutable
// type slot, filled in by the analyzer, and a const flag computed by the
// parser marking literal-only subtrees.
type Expr interface {
	Node
	exprNode()

	// Type returns the expression's static type. It is unset (IsTypeSet
	// returns false) until the analyzer's type-propagation pass runs.
	Type() symtable.Type
	// SetType records t as the expression's static type.
	SetType(t symtable.Type)
	// IsTypeSet reports whether SetType has been called.
	IsTypeSet() bool

	// IsConst reports whether the expression is a literal-only subtree.
	IsConst() bool
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// base is embedded by every concrete node and implements the Node fields
// common to all of them.
type base struct {
	id    int
	line  int
	scope *symtable.SymbolTable
}

func (b *base) NodeID() int                      { return b.id }
func (b *base) Line() int                        { return b.line }
func (b *base) Scope() *symtable.SymbolTable      { return b.scope }

func newBase(id, line int, scope *symtable.SymbolTable) base {
	return base{id: id, line: line, scope: scope}
}

// exprBase is embedded by every concrete Expr and adds the type slot and
// const flag shared by all expressions.
type exprBase struct {
	base
	typ      symtable.Type
	typeSet  bool
	isConst  bool
}

func (e *exprBase) exprNode() {}

func (e *exprBase) Type() symtable.Type { return e.typ }

func (e *exprBase) SetType(t symtable.Type) {
	e.typ = t
	e.typeSet = true
}

func (e *exprBase) IsTypeSet() bool { return e.typeSet }

func (e *exprBase) IsConst() bool { return e.isConst }

func newExprBase(id, line int, scope *symtable.SymbolTable, isConst bool) exprBase {
	return exprBase{base: newBase(id, line, scope), isConst: isConst}
}

// stmtBase is embedded by every concrete Stmt.
type stmtBase struct {
	base
}

func (s *stmtBase) stmtNode() {}

func newStmtBase(id, line int, scope *symtable.SymbolTable) stmtBase {
	return stmtBase{base: newBase(id, line, scope)}
}

// IDGen hands out unique, monotonically increasing node ids for a single
// parse, mirroring the way the analyzer hands out symbol ids from
// symtable.SymbolTable.NextID.
type IDGen struct{ next int }

// Next returns a fresh node id.
func (g *IDGen) Next() int {
	g.next++
	return g.next
}

// Location is a convenience accessor combining a node's line with column 1
// and a zero offset, for diagnostics that only need the line.
func Location(n Node) token.Location {
	return token.Location{Row: n.Line(), Col: 1}
}
