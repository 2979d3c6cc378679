package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/slothlang/sloth/lang/analyzer"
	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/parser"
)

// Analyze runs the parser and semantic analyzer over one or more files and
// pretty-prints the decorated abstract syntax tree.
func (c *Cmd) Analyze(_ context.Context, stdio mainer.Stdio, args []string) error {
	src, ranges, err := loadSources(args)
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	root, _, err := parser.Parse(src)
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	if err := analyzer.Analyze(root); err != nil {
		return printErr(stdio, err, ranges)
	}

	printer := ast.Printer{Output: stdio.Stdout, WithLines: true}
	return printer.Print(root)
}
