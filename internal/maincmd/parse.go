package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/parser"
)

// Parse runs the parser over one or more files and pretty-prints the
// resulting abstract syntax tree.
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	src, ranges, err := loadSources(args)
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	root, _, err := parser.Parse(src)
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	printer := ast.Printer{Output: stdio.Stdout, WithLines: true}
	return printer.Print(root)
}
