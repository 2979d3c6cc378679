package analyzer

import (
	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/symtable"
	"github.com/slothlang/sloth/lang/token"
)

// propagator is pass 2: bottom-up type propagation. Every expression's type
// is computed from its children (already typed, since the walk is
// bottom-up) and stored on the node.
type propagator struct {
	errs []*Error
}

func propagate(root *ast.Block) []*Error {
	p := &propagator{}
	p.stmt(root)
	return p.errs
}

func (p *propagator) errorf(line int, kind ErrKind, name, hint string) {
	p.errs = append(p.errs, &Error{Kind: kind, Line: line, Name: name, Hint: hint})
}

func (p *propagator) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		for _, c := range n.Stmts {
			p.stmt(c)
		}
	case *ast.ExprStmt:
		p.expr(n.X)
	case *ast.If:
		p.expr(n.Cond)
		p.stmt(n.Then)
		if n.Else != nil {
			p.stmt(n.Else)
		}
	case *ast.While:
		p.expr(n.Cond)
		p.stmt(n.Body)
	case *ast.For:
		p.expr(n.Iter)
		p.stmt(n.Body)
	case *ast.DefineVariable:
		p.seedAnnotatedArray(n.Value, n.TypeAnn)
		p.expr(n.Value)
		if n.TypeAnn != nil && !n.TypeAnn.Equal(n.Value.Type()) {
			p.errorf(n.Line(), TypeMismatch, "", "")
		}
	case *ast.DefineValue:
		p.seedAnnotatedArray(n.Value, n.TypeAnn)
		p.expr(n.Value)
		if n.TypeAnn != nil && !n.TypeAnn.Equal(n.Value.Type()) {
			p.errorf(n.Line(), TypeMismatch, "", "")
		}
	case *ast.AssignVariable:
		p.expr(n.Value)
	case *ast.DefineFunction:
		if n.Body != nil {
			p.stmt(n.Body)
		}
	case *ast.Return:
		if n.Value != nil {
			p.expr(n.Value)
		}
	}
}

// seedAnnotatedArray resolves the open question of empty array literals:
// `val xs: Array(Integer) = [];` supplies the element type from the
// annotation before the bottom-up pass reaches the literal.
func (p *propagator) seedAnnotatedArray(value ast.Expr, ann *symtable.Type) {
	arr, ok := value.(*ast.ArrayLiteral)
	if !ok || len(arr.Elems) != 0 || ann == nil || ann.Kind != symtable.Array {
		return
	}
	arr.SetType(*ann)
}

func (p *propagator) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		n.SetType(literalType(n.Value))
	case *ast.Identifier:
		sym, _, ok := n.Scope().Lookup(n.Name)
		if !ok {
			p.errorf(n.Line(), UnknownIdentifier, n.Name, "")
			n.SetType(symtable.TypeVoid)
			return
		}
		n.SetType(sym.Type)
	case *ast.Grouping:
		p.expr(n.Inner)
		n.SetType(n.Inner.Type())
	case *ast.Unary:
		p.expr(n.Value)
		n.SetType(n.Value.Type())
	case *ast.Binary:
		p.binary(n)
	case *ast.Call:
		p.call(n)
	case *ast.ArrayLiteral:
		p.arrayLiteral(n)
	}
}

func literalType(l ast.Lit) symtable.Type {
	switch l.Kind {
	case ast.LitInt:
		return symtable.TypeInteger
	case ast.LitFloat:
		return symtable.TypeFloat
	case ast.LitBool:
		return symtable.TypeBoolean
	default: // LitString, LitChar
		return symtable.TypeString
	}
}

func (p *propagator) binary(n *ast.Binary) {
	p.expr(n.LHS)
	p.expr(n.RHS)
	lhs, rhs := n.LHS.Type(), n.RHS.Type()

	switch n.Op {
	case token.EQEQ, token.BANGEQ, token.LT, token.GT, token.LTEQ, token.GTEQ:
		if !lhs.Equal(rhs) {
			p.errorf(n.Line(), TypeMismatch, "", "")
		}
		n.SetType(symtable.TypeBoolean)
	case token.DOTDOT:
		if !lhs.Equal(rhs) {
			p.errorf(n.Line(), TypeMismatch, "", "")
		}
		n.SetType(symtable.NewIterator(lhs))
	case token.PLUSPLUS:
		if lhs.Kind != symtable.String || !lhs.Equal(rhs) {
			p.errorf(n.Line(), TypeMismatch, "", "concatenation requires String operands")
		}
		n.SetType(symtable.TypeString)
	default: // + - * / % && ||
		if !lhs.Equal(rhs) {
			p.errorf(n.Line(), TypeMismatch, "", "")
		}
		n.SetType(lhs)
	}
}

func (p *propagator) call(n *ast.Call) {
	p.expr(n.Callee)
	for _, a := range n.Args {
		p.expr(a)
	}
	ct := n.Callee.Type()
	if ct.Kind != symtable.Function {
		p.errorf(n.Line(), TypeMismatch, "", "call target is not a function")
		n.SetType(symtable.TypeVoid)
		return
	}
	// Arity/argument-type checking is deliberately left unenforced here;
	// the VM's Call opcode handler is the only place a mismatch surfaces.
	n.SetType(*ct.Output)
}

func (p *propagator) arrayLiteral(n *ast.ArrayLiteral) {
	if len(n.Elems) == 0 {
		// An empty array literal needs an explicit Array(T) annotation on
		// the enclosing binding to supply its element type; the analyzer
		// cannot infer one from no elements, so it is a type mismatch
		// here and callers that can supply the annotation should set the
		// node's type directly via SetType before this pass runs.
		if !n.IsTypeSet() {
			p.errorf(n.Line(), TypeMismatch, "", "empty array literal requires an explicit Array(T) annotation")
		}
		return
	}
	p.expr(n.Elems[0])
	elem := n.Elems[0].Type()
	for _, e := range n.Elems[1:] {
		p.expr(e)
		if !e.Type().Equal(elem) {
			p.errorf(n.Line(), TypeMismatch, "", "array elements must have the same type")
		}
	}
	n.SetType(symtable.NewArray(elem))
}
