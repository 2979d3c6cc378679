// Package parser implements Sloth's recursive-descent parser: it consumes a
// finite token vector and produces a single *ast.Block representing the
// translation unit, threading a lexically scoped symbol-table chain into
// every node as it descends.
package parser

import (
	"errors"

	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/diag"
	"github.com/slothlang/sloth/lang/lexer"
	"github.com/slothlang/sloth/lang/symtable"
	"github.com/slothlang/sloth/lang/token"
)

// Parse tokenizes and parses src, returning the translation unit's root
// Block and its root symbol table. The returned error, if non-nil, is
// always a diag.ErrorList.
func Parse(src string) (*ast.Block, *symtable.SymbolTable, error) {
	var toks []lexer.Tok
	l := lexer.New(src)
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.ILLEGAL {
			var errs diag.ErrorList
			errs.Add(tok.Start, tok.Lit.Raw)
			return nil, nil, errs.Err()
		}
	}

	root := symtable.NewRoot()
	p := &parser{toks: toks, scope: root}
	block, err := p.parseTranslationUnit()
	if err != nil {
		return nil, nil, err
	}
	return block, root, nil
}

var errPanicMode = errors.New("parser panic mode")

type parser struct {
	toks []lexer.Tok
	pos  int

	scope *symtable.SymbolTable
	ids   ast.IDGen
	errs  diag.ErrorList
}

func (p *parser) cur() lexer.Tok  { return p.toks[p.pos] }
func (p *parser) kind() token.Token { return p.cur().Kind }

func (p *parser) advance() lexer.Tok {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// peekAhead looks n tokens ahead of the current one without consuming.
func (p *parser) peekAhead(n int) lexer.Tok {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

// expect consumes the current token if it matches kind, else records an
// UnexpectedToken error and panics into errPanicMode, which unwinds all the
// way to parseTranslationUnit's single recover point.
func (p *parser) expect(kind token.Token) lexer.Tok {
	if p.kind() != kind {
		p.errorExpected(kind)
		panic(errPanicMode)
	}
	return p.advance()
}

func (p *parser) errorExpected(want token.Token) {
	p.errs.Addf(p.cur().Start, "expected %s, found %s", want.GoString(), p.kind().GoString())
}

func (p *parser) errorAt(loc token.Location, msg string) {
	p.errs.Add(loc, msg)
}

func (p *parser) line() int { return p.cur().Start.Row }

func (p *parser) pushScope() *symtable.SymbolTable {
	child := p.scope.NewChild()
	p.scope = child
	return child
}

func (p *parser) popScope(prev *symtable.SymbolTable) { p.scope = prev }

// parseTranslationUnit consumes every statement up to EOF into a single
// Block. On the first mismatched token, expect/errorExpected panics into
// errPanicMode; that panic is recovered here, once, and reported as the
// sole error for the whole parse — per §4.2, no error recovery or resync is
// attempted, so a malformed statement aborts the parse rather than being
// skipped over.
func (p *parser) parseTranslationUnit() (block *ast.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			block, err = nil, p.errs.Err()
		}
	}()

	line := p.line()
	scope := p.scope
	var stmts []ast.Stmt
	for p.kind() != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	return ast.NewBlock(&p.ids, line, scope, stmts), nil
}
