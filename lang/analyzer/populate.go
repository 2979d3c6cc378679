package analyzer

import (
	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/symtable"
)

// populator is pass 1: symbol population. It walks the tree pre-order,
// inserting a Symbol for every declaration before descending into its
// children, so that a function's own name is visible inside its body
// (for recursion) and parameters are visible to the statements that use
// them.
type populator struct {
	errs []*Error
}

func populate(root *ast.Block) []*Error {
	p := &populator{}
	p.stmt(root)
	return p.errs
}

func (p *populator) errorf(line int, kind ErrKind, hint string) {
	p.errs = append(p.errs, &Error{Kind: kind, Line: line, Hint: hint})
}

func (p *populator) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		for _, c := range n.Stmts {
			p.stmt(c)
		}
	case *ast.DefineVariable:
		p.defineBinding(n.Scope(), n.Name, n.TypeAnn, n.Line(), true)
	case *ast.DefineValue:
		p.defineBinding(n.Scope(), n.Name, n.TypeAnn, n.Line(), false)
	case *ast.DefineFunction:
		inputs := make([]symtable.Type, len(n.Inputs))
		for i, in := range n.Inputs {
			inputs[i] = in.Type
		}
		output := symtable.TypeVoid
		if n.Output != nil {
			output = *n.Output
		}
		fnType := symtable.NewFunction(inputs, output)
		id := n.Scope().NextID()
		n.Scope().Insert(n.Name, symtable.NewValueSymbol(fnType, id, false))

		if n.Kind == ast.FuncNormal && n.Body != nil {
			body := n.Body.(*ast.Block)
			for _, in := range n.Inputs {
				pid := body.Scope().NextID()
				body.Scope().Insert(in.Name, symtable.NewValueSymbol(in.Type, pid, false))
			}
			p.stmt(n.Body)
		}
	case *ast.For:
		body := n.Body.(*ast.Block)
		id := body.Scope().NextID()
		body.Scope().Insert(n.Name, symtable.NewValueSymbol(symtable.TypeInteger, id, true))
		p.stmt(n.Body)
	case *ast.If:
		p.stmt(n.Then)
		if n.Else != nil {
			p.stmt(n.Else)
		}
	case *ast.While:
		p.stmt(n.Body)
	case *ast.ExprStmt, *ast.AssignVariable, *ast.Return:
		// no declarations
	}
}

func (p *populator) defineBinding(scope *symtable.SymbolTable, name string, ann *symtable.Type, line int, mutable bool) {
	t := symtable.TypeFloat
	if ann != nil {
		t = *ann
	}
	id := scope.NextID()
	// A duplicate local insert fails silently per the symbol table's
	// first-binding-wins contract; nothing is reported here.
	scope.Insert(name, symtable.NewValueSymbol(t, id, mutable))
}
