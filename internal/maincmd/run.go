package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/slothlang/sloth/internal/config"
	"github.com/slothlang/sloth/lang/analyzer"
	"github.com/slothlang/sloth/lang/compiler"
	"github.com/slothlang/sloth/lang/heap"
	"github.com/slothlang/sloth/lang/natives"
	"github.com/slothlang/sloth/lang/parser"
	"github.com/slothlang/sloth/lang/vm"
)

// Run compiles one or more files and executes the resulting chunk on a
// fresh virtual machine, printing nothing itself beyond whatever the
// program writes through the print/println natives.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
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

	h := heap.New()
	reg := natives.Standard()
	chunk, err := compiler.Compile(root, h, reg)
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	cfg, err := config.LoadVM()
	if err != nil {
		return printErr(stdio, err, ranges)
	}
	maxSteps := cfg.MaxSteps
	if c.flags["max-steps"] {
		maxSteps = c.MaxSteps
	}

	m := vm.New(chunk, h, reg,
		vm.WithStackSize(cfg.StackSize),
		vm.WithCallFrames(cfg.CallFrames),
		vm.WithMaxSteps(maxSteps),
	)
	if err := m.Run(); err != nil {
		fmt.Fprintf(stdio.Stderr, "Error in file %s: %s\n", ranges[len(ranges)-1].path, err)
		return err
	}
	return nil
}
