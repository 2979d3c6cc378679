package analyzer

import "github.com/slothlang/sloth/lang/ast"

// usageChecker is pass 3: every Identifier expression and every
// AssignVariable statement must resolve against its attached scope chain.
type usageChecker struct {
	errs []*Error
}

func checkUsage(root *ast.Block) []*Error {
	u := &usageChecker{}
	u.stmt(root)
	return u.errs
}

func (u *usageChecker) errorf(line int, name string) {
	u.errs = append(u.errs, &Error{Kind: UnknownIdentifier, Line: line, Name: name})
}

func (u *usageChecker) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		for _, c := range n.Stmts {
			u.stmt(c)
		}
	case *ast.ExprStmt:
		u.expr(n.X)
	case *ast.If:
		u.expr(n.Cond)
		u.stmt(n.Then)
		if n.Else != nil {
			u.stmt(n.Else)
		}
	case *ast.While:
		u.expr(n.Cond)
		u.stmt(n.Body)
	case *ast.For:
		u.expr(n.Iter)
		u.stmt(n.Body)
	case *ast.DefineVariable:
		u.expr(n.Value)
	case *ast.DefineValue:
		u.expr(n.Value)
	case *ast.AssignVariable:
		if _, _, ok := n.Scope().Lookup(n.Name); !ok {
			u.errorf(n.Line(), n.Name)
		}
		u.expr(n.Value)
	case *ast.DefineFunction:
		if n.Body != nil {
			u.stmt(n.Body)
		}
	case *ast.Return:
		if n.Value != nil {
			u.expr(n.Value)
		}
	}
}

func (u *usageChecker) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Identifier:
		if _, _, ok := n.Scope().Lookup(n.Name); !ok {
			u.errorf(n.Line(), n.Name)
		}
	case *ast.Grouping:
		u.expr(n.Inner)
	case *ast.Unary:
		u.expr(n.Value)
	case *ast.Binary:
		u.expr(n.LHS)
		u.expr(n.RHS)
	case *ast.Call:
		u.expr(n.Callee)
		for _, a := range n.Args {
			u.expr(a)
		}
	case *ast.ArrayLiteral:
		for _, el := range n.Elems {
			u.expr(el)
		}
	}
}
