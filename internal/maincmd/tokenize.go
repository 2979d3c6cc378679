package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/slothlang/sloth/lang/diag"
	"github.com/slothlang/sloth/lang/lexer"
	"github.com/slothlang/sloth/lang/token"
)

// Tokenize runs the lexer over one or more files and prints every token.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	src, ranges, err := loadSources(args)
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	l := lexer.New(src)
	for {
		tok := l.Next()
		path, line := locate(ranges, tok.Start.Row)
		fmt.Fprintf(stdio.Stdout, "%s:%d: %s", path, line, tok.Kind)
		if tok.Lit.Raw != "" {
			fmt.Fprintf(stdio.Stdout, " %q", tok.Lit.Raw)
		}
		fmt.Fprintln(stdio.Stdout)

		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.ILLEGAL {
			var errs diag.ErrorList
			errs.Add(tok.Start, tok.Lit.Raw)
			return printErr(stdio, errs.Err(), ranges)
		}
	}
	return nil
}
