package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of the AST nodes.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// WithLines, if true, prefixes each printed node with its source line.
	WithLines bool

	// NodeFmt is the format string used to print each node. The verb must
	// be `s` or `v`; width and the `-` flag are supported, other flags are
	// ignored. Defaults to `%v`.
	NodeFmt string
}

// Print pretty-prints the AST node n, indenting each level of the tree.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, withLines: p.WithLines, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w         io.Writer
	withLines bool
	nodeFmt   string
	depth     int
	err       error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.withLines {
		format += "[%d] "
		args = append(args, n.Line())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
