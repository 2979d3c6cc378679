package parser

import (
	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/symtable"
	"github.com/slothlang/sloth/lang/token"
)

func (p *parser) parseStmt() ast.Stmt {
	switch p.kind() {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR:
		return p.parseDefineVariable()
	case token.VAL, token.CONST:
		return p.parseDefineValue()
	case token.FN:
		return p.parseDefineFunction()
	case token.FOREIGN:
		return p.parseForeignFunction()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.IDENT:
		if p.peekAhead(1).Kind == token.EQ {
			return p.parseAssignVariable()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses `{ statement* }`, pushing a child scope on entry and
// restoring the enclosing scope on exit, even if a statement inside panics.
func (p *parser) parseBlock() *ast.Block {
	prev := p.scope
	scope := p.pushScope()
	defer p.popScope(prev)
	return p.parseBlockStmtsOnly(scope)
}

// parseTypeAnnotation parses an optional `: Type` suffix.
func (p *parser) parseTypeAnnotation() *symtable.Type {
	if p.kind() != token.COLON {
		return nil
	}
	p.advance()
	t := p.parseTypeExpr()
	return &t
}

// parseTypeExpr parses a type name: a bare identifier for the builtin
// scalar types, `Array(T)`/`Iterator(T)` for parametric ones, and maps it
// straight to its symtable.Type. Type names are not looked up in the symbol
// table; any other name is reported as an error here.
func (p *parser) parseTypeExpr() symtable.Type {
	name := p.expect(token.IDENT).Lit.Raw
	switch name {
	case "Void":
		return symtable.TypeVoid
	case "Integer":
		return symtable.TypeInteger
	case "Float":
		return symtable.TypeFloat
	case "Boolean":
		return symtable.TypeBoolean
	case "String":
		return symtable.TypeString
	case "Array", "Iterator":
		p.expect(token.LPAREN)
		elem := p.parseTypeExpr()
		p.expect(token.RPAREN)
		if name == "Array" {
			return symtable.NewArray(elem)
		}
		return symtable.NewIterator(elem)
	default:
		p.errorAt(p.cur().Start, "unknown type name "+name)
		panic(errPanicMode)
	}
}

func (p *parser) parseDefineVariable() *ast.DefineVariable {
	line := p.line()
	scope := p.scope
	p.expect(token.VAR)
	name := p.expect(token.IDENT).Lit.Raw
	ann := p.parseTypeAnnotation()
	p.expect(token.EQ)
	value := p.parseExpr()
	p.expect(token.SEMI)
	return ast.NewDefineVariable(&p.ids, line, scope, name, value, ann)
}

func (p *parser) parseDefineValue() *ast.DefineValue {
	line := p.line()
	scope := p.scope
	p.advance() // `val` or `const`
	name := p.expect(token.IDENT).Lit.Raw
	ann := p.parseTypeAnnotation()
	p.expect(token.EQ)
	value := p.parseExpr()
	p.expect(token.SEMI)
	return ast.NewDefineValue(&p.ids, line, scope, name, value, ann)
}

func (p *parser) parseParams() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for p.kind() != token.RPAREN {
		name := p.expect(token.IDENT).Lit.Raw
		p.expect(token.COLON)
		typ := p.parseTypeExpr()
		params = append(params, ast.Param{Name: name, Type: typ})
		if p.kind() == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

func (p *parser) parseOptionalReturnType() *symtable.Type {
	if p.kind() == token.ARROW {
		p.advance()
		t := p.parseTypeExpr()
		return &t
	}
	return nil
}

// parseBlockStmtsOnly parses `{ statement* }` reusing an already-pushed
// scope instead of creating a new one, so a function's parameters and its
// body share a single scope as required by name resolution (§4.2).
func (p *parser) parseBlockStmtsOnly(scope *symtable.SymbolTable) *ast.Block {
	line := p.line()
	p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.kind() != token.RBRACE && p.kind() != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.RBRACE)
	return ast.NewBlock(&p.ids, line, scope, stmts)
}

func (p *parser) parseDefineFunction() *ast.DefineFunction {
	line := p.line()
	outerScope := p.scope
	p.expect(token.FN)
	name := p.expect(token.IDENT).Lit.Raw
	params := p.parseParams()
	output := p.parseOptionalReturnType()

	prev := p.scope
	bodyScope := p.pushScope()
	body := p.parseBlockStmtsOnly(bodyScope)
	p.popScope(prev)

	return ast.NewDefineFunction(&p.ids, line, outerScope, name, params, output, ast.FuncNormal, body)
}

func (p *parser) parseForeignFunction() *ast.DefineFunction {
	line := p.line()
	scope := p.scope
	p.expect(token.FOREIGN)
	p.expect(token.FN)
	name := p.expect(token.IDENT).Lit.Raw
	params := p.parseParams()
	output := p.parseOptionalReturnType()
	p.expect(token.SEMI)
	return ast.NewDefineFunction(&p.ids, line, scope, name, params, output, ast.FuncForeign, nil)
}

func (p *parser) parseIf() *ast.If {
	line := p.line()
	scope := p.scope
	p.expect(token.IF)
	cond := p.parseExpr()
	then := p.parseBlock()
	var els ast.Stmt
	if p.kind() == token.ELSE {
		p.advance()
		if p.kind() == token.IF {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIf(&p.ids, line, scope, cond, then, els)
}

func (p *parser) parseWhile() *ast.While {
	line := p.line()
	scope := p.scope
	p.expect(token.WHILE)
	cond := p.parseExpr()
	body := p.parseBlock()
	return ast.NewWhile(&p.ids, line, scope, cond, body)
}

func (p *parser) parseFor() *ast.For {
	line := p.line()
	outerScope := p.scope
	p.expect(token.FOR)
	name := p.expect(token.IDENT).Lit.Raw
	p.expect(token.IN)
	iter := p.parseExpr()

	prev := p.scope
	bodyScope := p.pushScope()
	body := p.parseBlockStmtsOnly(bodyScope)
	p.popScope(prev)

	return ast.NewFor(&p.ids, line, outerScope, name, iter, body)
}

func (p *parser) parseReturn() *ast.Return {
	line := p.line()
	scope := p.scope
	p.expect(token.RETURN)
	var value ast.Expr
	if p.kind() != token.SEMI {
		value = p.parseExpr()
	}
	p.expect(token.SEMI)
	return ast.NewReturn(&p.ids, line, scope, value)
}

func (p *parser) parseAssignVariable() *ast.AssignVariable {
	line := p.line()
	scope := p.scope
	name := p.expect(token.IDENT).Lit.Raw
	p.expect(token.EQ)
	value := p.parseExpr()
	p.expect(token.SEMI)
	return ast.NewAssignVariable(&p.ids, line, scope, name, value)
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	line := p.line()
	scope := p.scope
	x := p.parseExpr()
	p.expect(token.SEMI)
	return ast.NewExprStmt(&p.ids, line, scope, x)
}
