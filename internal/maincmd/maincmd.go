// Package maincmd implements the sloth command-line driver: subcommands for
// each pipeline stage (tokenize, parse, analyze, run, disasm) dispatched by
// reflection over a Cmd the way the teacher's own CLI does it.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "sloth"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Toolchain for the Sloth programming language: lexer, parser, semantic
analyzer, bytecode compiler and stack virtual machine.

The <command> can be one of:
       tokenize                  Run the lexer and print the resulting
                                 token stream.
       parse                     Run the parser and print the resulting
                                 abstract syntax tree.
       analyze                   Run the parser and semantic analyzer,
                                 printing the decorated AST.
       run                       Compile and execute the program,
                                 printing its standard output.
       disasm                    Compile and print the resulting
                                 bytecode chunk as YAML.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <run> command are:
       --max-steps=<n>           Bound the VM to n dispatch steps (0,
                                 the default, means unbounded).
`, binName)
)

// Cmd is the sloth binary's flag and dispatch surface, parsed by
// mainer.Parser and invoked through its reflection-discovered subcommand
// methods (see buildCmds).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	MaxSteps int `flag:"max-steps"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	if c.flags["max-steps"] && cmdName != "run" {
		return fmt.Errorf("%s: invalid flag 'max-steps'", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// printErr writes every diagnostic extracted from err, in the spec's fixed
// `Error in file <path> on line <n>: <message>` form, and returns err
// unchanged so callers can propagate it as their own result.
func printErr(stdio mainer.Stdio, err error, ranges []fileRange) error {
	for _, d := range diagnosticsFor(err, ranges) {
		fmt.Fprintf(stdio.Stderr, "Error in file %s on line %d: %s\n", d.path, d.line, d.msg)
	}
	return err
}

// buildCmds discovers every (ctx, stdio, args) -> error method on v by
// reflection and keys it by its lowercased method name, mirroring the
// teacher's zero-boilerplate subcommand dispatch.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
