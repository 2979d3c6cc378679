package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"gopkg.in/yaml.v3"

	"github.com/slothlang/sloth/lang/analyzer"
	"github.com/slothlang/sloth/lang/bytecode"
	"github.com/slothlang/sloth/lang/compiler"
	"github.com/slothlang/sloth/lang/heap"
	"github.com/slothlang/sloth/lang/natives"
	"github.com/slothlang/sloth/lang/parser"
)

// instruction is one decoded bytecode op, readable without cross-
// referencing a byte offset against opcode.go.
type instruction struct {
	Offset  int    `yaml:"offset"`
	Op      string `yaml:"op"`
	Operand *int   `yaml:"operand,omitempty"`
}

// dump is the YAML-serializable rendition of a compiled chunk that the
// disasm command prints: the teacher's own textual assembler format isn't
// reused here (see DESIGN.md) in favor of a direct, round-trippable
// structural dump.
type dump struct {
	Constants    []string      `yaml:"constants"`
	Instructions []instruction `yaml:"instructions"`
}

func decode(c *bytecode.Chunk) dump {
	d := dump{Constants: make([]string, len(c.Constants))}
	for i, v := range c.Constants {
		d.Constants[i] = v.String()
	}

	for pc := 0; pc < len(c.Code); {
		op := bytecode.Op(c.Code[pc])
		inst := instruction{Offset: pc, Op: op.String()}
		pc++
		if op.HasU16Operand() && pc+2 <= len(c.Code) {
			operand := int(c.ReadU16(pc))
			inst.Operand = &operand
			pc += 2
		}
		d.Instructions = append(d.Instructions, inst)
	}
	return d
}

// Disasm compiles one or more files and prints the resulting chunk as YAML.
func (c *Cmd) Disasm(_ context.Context, stdio mainer.Stdio, args []string) error {
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
	chunk, err := compiler.Compile(root, h, natives.Standard())
	if err != nil {
		return printErr(stdio, err, ranges)
	}

	d := decode(chunk)
	for _, inst := range d.Instructions {
		if inst.Op == "UnknownOp" {
			return printErr(stdio, fmt.Errorf("disasm: unknown opcode at offset %d", inst.Offset), ranges)
		}
	}
	enc := yaml.NewEncoder(stdio.Stdout)
	defer enc.Close()
	return enc.Encode(d)
}
