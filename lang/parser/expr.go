package parser

import (
	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/token"
)

// binopPriority gives the left/right binding power of each binary operator
// in the precedence table (low to high): `|| && .. == != < > <= >= << >>
// + - ++ * / %`. All levels are left-associative (left == right), matching
// §4.2's explicit note that range, equality and comparison are
// left-associative like everything else.
var binopPriority = map[token.Token]struct{ left, right int }{
	token.OROR:      {1, 1},
	token.ANDAND:    {2, 2},
	token.DOTDOT:    {3, 3},
	token.EQEQ:      {4, 4},
	token.BANGEQ:    {4, 4},
	token.LT:        {5, 5},
	token.GT:        {5, 5},
	token.LTEQ:      {5, 5},
	token.GTEQ:      {5, 5},
	token.LTLT:      {6, 6},
	token.GTGT:      {6, 6},
	token.PLUS:      {7, 7},
	token.MINUS:     {7, 7},
	token.PLUSPLUS:  {7, 7}, // string concatenation
	token.STAR:      {8, 8},
	token.SLASH:     {8, 8},
	token.PERCENT:   {8, 8},
}

const unopPriority = 9

func isUnop(tok token.Token) bool { return tok == token.BANG || tok == token.MINUS }

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(0)
}

// parseBinExpr implements precedence climbing over binopPriority.
func (p *parser) parseBinExpr(priority int) ast.Expr {
	left := p.parseUnary()
	for {
		pr, ok := binopPriority[p.kind()]
		if !ok || pr.left <= priority {
			return left
		}
		line := p.line()
		scope := p.scope
		op := p.advance().Kind
		right := p.parseBinExpr(pr.right)
		left = ast.NewBinary(&p.ids, line, scope, op, left, right)
	}
}

func (p *parser) parseUnary() ast.Expr {
	if isUnop(p.kind()) {
		line := p.line()
		scope := p.scope
		op := p.advance().Kind
		value := p.parseUnary()
		return ast.NewUnary(&p.ids, line, scope, op, value)
	}
	return p.parseCall()
}

func (p *parser) parseCall() ast.Expr {
	callee := p.parsePrimary()
	for p.kind() == token.LPAREN {
		line := p.line()
		scope := p.scope
		p.advance()
		var args []ast.Expr
		for p.kind() != token.RPAREN {
			args = append(args, p.parseExpr())
			if p.kind() == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
		callee = ast.NewCall(&p.ids, line, scope, callee, args)
	}
	return callee
}

func (p *parser) parsePrimary() ast.Expr {
	line := p.line()
	scope := p.scope

	switch p.kind() {
	case token.INT:
		tok := p.advance()
		return ast.NewLiteral(&p.ids, line, scope, ast.Lit{Kind: ast.LitInt, Int: tok.Lit.Int})
	case token.FLOAT:
		tok := p.advance()
		return ast.NewLiteral(&p.ids, line, scope, ast.Lit{Kind: ast.LitFloat, Float: tok.Lit.Float})
	case token.BOOL:
		tok := p.advance()
		return ast.NewLiteral(&p.ids, line, scope, ast.Lit{Kind: ast.LitBool, Bool: tok.Lit.Bool})
	case token.STRING:
		tok := p.advance()
		return ast.NewLiteral(&p.ids, line, scope, ast.Lit{Kind: ast.LitString, String: tok.Lit.Str})
	case token.CHAR:
		tok := p.advance()
		return ast.NewLiteral(&p.ids, line, scope, ast.Lit{Kind: ast.LitChar, String: tok.Lit.Str})
	case token.IDENT:
		tok := p.advance()
		return ast.NewIdentifier(&p.ids, line, scope, tok.Lit.Raw)
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return ast.NewGrouping(&p.ids, line, scope, inner)
	case token.LBRACK:
		p.advance()
		var elems []ast.Expr
		for p.kind() != token.RBRACK {
			elems = append(elems, p.parseExpr())
			if p.kind() == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACK)
		return ast.NewArrayLiteral(&p.ids, line, scope, elems)
	default:
		p.errs.Addf(p.cur().Start, "unexpected token %s, expected an expression", p.kind().GoString())
		panic(errPanicMode)
	}
}
