// Package compiler takes an analyzed AST and compiles it to bytecode that can
// be executed by the virtual machine. There are no optimization passes: one
// statement compiles to a straight instruction sequence.
package compiler

import (
	"fmt"

	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/bytecode"
	"github.com/slothlang/sloth/lang/heap"
	"github.com/slothlang/sloth/lang/natives"
	"github.com/slothlang/sloth/lang/token"
)

// Compile translates an analyzed top-level block into a root chunk. Nested
// function definitions are compiled recursively and allocated as Function
// objects in h; their handles are recorded as constants in the enclosing
// chunk. reg resolves `foreign fn` declarations to NativeFunction objects by
// name.
//
// root must already have passed analysis; behavior on an unanalyzed or
// ill-typed tree is undefined.
func Compile(root *ast.Block, h *heap.Heap, reg *natives.Registry) (*bytecode.Chunk, error) {
	fc := &fcomp{h: h, reg: reg, slots: map[string]uint16{}}
	if err := fc.block(root); err != nil {
		return nil, err
	}
	fc.chunk.Emit(bytecode.Halt)
	return &fc.chunk, nil
}

// fcomp holds the compiler state for a single function body (the top-level
// program counts as one). Variable bindings are stack slots relative to the
// frame's base; slots is the name -> slot-index map for this function alone.
type fcomp struct {
	h        *heap.Heap
	reg      *natives.Registry
	chunk    bytecode.Chunk
	slots    map[string]uint16
	next     uint16
	foreign  map[string]bool
	enclosed *fcomp // lexically enclosing function, nil at the top level
}

func (fc *fcomp) slotFor(name string) uint16 {
	if idx, ok := fc.slots[name]; ok {
		return idx
	}
	idx := fc.next
	fc.slots[name] = idx
	fc.next++
	return idx
}

func (fc *fcomp) markForeign(name string) {
	if fc.foreign == nil {
		fc.foreign = map[string]bool{}
	}
	fc.foreign[name] = true
}

// isForeign reports whether name was declared `foreign fn`, searching
// outward through enclosing function scopes the way the analyzer's symbol
// table walks its parent chain.
func (fc *fcomp) isForeign(name string) bool {
	for f := fc; f != nil; f = f.enclosed {
		if f.foreign[name] {
			return true
		}
	}
	return false
}

func (fc *fcomp) block(b *ast.Block) error {
	for _, s := range b.Stmts {
		if err := fc.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (fc *fcomp) stmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Block:
		return fc.block(n)

	case *ast.ExprStmt:
		if err := fc.expr(n.X); err != nil {
			return err
		}
		fc.chunk.Emit(bytecode.Pop)
		return nil

	case *ast.DefineVariable:
		return fc.defineBinding(n.Name, n.Value)

	case *ast.DefineValue:
		return fc.defineBinding(n.Name, n.Value)

	case *ast.AssignVariable:
		if err := fc.expr(n.Value); err != nil {
			return err
		}
		fc.chunk.EmitU16(bytecode.SetLocal, fc.slotFor(n.Name))
		return nil

	case *ast.If:
		return fc.ifStmt(n)

	case *ast.While:
		return fc.whileStmt(n)

	case *ast.For:
		return fc.forStmt(n)

	case *ast.DefineFunction:
		return fc.defineFunction(n)

	case *ast.Return:
		if n.Value != nil {
			if err := fc.expr(n.Value); err != nil {
				return err
			}
		}
		fc.chunk.Emit(bytecode.Return)
		return nil

	default:
		return fmt.Errorf("compiler: unhandled statement %T", s)
	}
}

// defineBinding compiles the initializer then binds it to a fresh local
// slot: the value is already on the stack in program order, so SetLocal
// simply pins it in place.
func (fc *fcomp) defineBinding(name string, value ast.Expr) error {
	if err := fc.expr(value); err != nil {
		return err
	}
	fc.chunk.EmitU16(bytecode.SetLocal, fc.slotFor(name))
	return nil
}

func (fc *fcomp) ifStmt(n *ast.If) error {
	if err := fc.expr(n.Cond); err != nil {
		return err
	}
	thenJump := fc.chunk.EmitU16(bytecode.JumpIf, 0)
	var elseJump int
	hasElse := n.Else != nil
	skipThen := fc.chunk.EmitU16(bytecode.Jump, 0)
	fc.chunk.PatchU16(thenJump, uint16(len(fc.chunk.Code)))
	if err := fc.stmt(n.Then); err != nil {
		return err
	}
	if hasElse {
		elseJump = fc.chunk.EmitU16(bytecode.Jump, 0)
	}
	fc.chunk.PatchU16(skipThen, uint16(len(fc.chunk.Code)))
	if hasElse {
		if err := fc.stmt(n.Else); err != nil {
			return err
		}
		fc.chunk.PatchU16(elseJump, uint16(len(fc.chunk.Code)))
	}
	return nil
}

func (fc *fcomp) whileStmt(n *ast.While) error {
	loopStart := len(fc.chunk.Code)
	if err := fc.expr(n.Cond); err != nil {
		return err
	}
	bodyJump := fc.chunk.EmitU16(bytecode.JumpIf, 0)
	exitJump := fc.chunk.EmitU16(bytecode.Jump, 0)
	fc.chunk.PatchU16(bodyJump, uint16(len(fc.chunk.Code)))
	if err := fc.stmt(n.Body); err != nil {
		return err
	}
	fc.chunk.EmitU16(bytecode.Jump, uint16(loopStart))
	fc.chunk.PatchU16(exitJump, uint16(len(fc.chunk.Code)))
	return nil
}

// forStmt lowers `for x in iter body` to a counted while loop over the
// range's bounds: the loop variable occupies its own slot, pre-initialized
// to the range start the way every other binding is.
func (fc *fcomp) forStmt(n *ast.For) error {
	rangeExpr, ok := n.Iter.(*ast.Binary)
	if !ok || rangeExpr.Op != token.DOTDOT {
		return fmt.Errorf("compiler: for-loop iterator must be a range expression")
	}

	slot := fc.slotFor(n.Name)
	if err := fc.expr(rangeExpr.LHS); err != nil {
		return err
	}
	fc.chunk.EmitU16(bytecode.SetLocal, slot)

	loopStart := len(fc.chunk.Code)
	fc.chunk.EmitU16(bytecode.GetLocal, slot)
	if err := fc.expr(rangeExpr.RHS); err != nil {
		return err
	}
	fc.chunk.Emit(bytecode.Eq)
	exitJump := fc.chunk.EmitU16(bytecode.JumpIf, 0)

	if err := fc.stmt(n.Body); err != nil {
		return err
	}

	fc.chunk.EmitU16(bytecode.GetLocal, slot)
	idx := fc.chunk.AddConstant(bytecode.Int(1))
	fc.chunk.EmitU16(bytecode.Constant, idx)
	fc.chunk.Emit(bytecode.Add)
	fc.chunk.EmitU16(bytecode.SetLocal, slot)
	fc.chunk.EmitU16(bytecode.Jump, uint16(loopStart))
	fc.chunk.PatchU16(exitJump, uint16(len(fc.chunk.Code)))
	return nil
}

// defineFunction compiles the body into a fresh chunk, wraps it as a
// heap-allocated Function object, and records the handle as a constant of
// the enclosing chunk so later references (the symbol the analyzer bound in
// the outer scope) resolve to it via GetLocal of the defining binding.
func (fc *fcomp) defineFunction(n *ast.DefineFunction) error {
	slot := fc.slotFor(n.Name)

	if n.Kind == ast.FuncForeign {
		rec, ok := fc.reg.Lookup(n.Name)
		if !ok {
			return fmt.Errorf("compiler: foreign function %q has no matching native", n.Name)
		}
		handle := fc.h.Allocate(heap.Object{
			Kind: heap.KindNativeFunction,
			NativeFunction: &heap.NativeFunction{
				Name:         rec.Name,
				Arity:        rec.Arity,
				ReturnsValue: rec.ReturnsValue,
				Call:         rec.Fn,
			},
		})
		idx := fc.chunk.AddConstant(bytecode.Obj(handle))
		fc.chunk.EmitU16(bytecode.Constant, idx)
		fc.chunk.EmitU16(bytecode.SetLocal, slot)
		fc.markForeign(n.Name)
		return nil
	}

	inner := &fcomp{h: fc.h, reg: fc.reg, enclosed: fc}
	inner.slots = map[string]uint16{}
	for _, p := range n.Inputs {
		inner.slotFor(p.Name)
	}
	if err := inner.stmt(n.Body); err != nil {
		return err
	}
	inner.chunk.Emit(bytecode.Return)

	handle := fc.h.Allocate(heap.Object{
		Kind: heap.KindFunction,
		Function: &heap.Function{
			Name:         n.Name,
			Arity:        len(n.Inputs),
			ReturnsValue: n.Output != nil,
			Chunk:        &inner.chunk,
		},
	})

	idx := fc.chunk.AddConstant(bytecode.Obj(handle))
	fc.chunk.EmitU16(bytecode.Constant, idx)
	fc.chunk.EmitU16(bytecode.SetLocal, slot)
	return nil
}

func (fc *fcomp) expr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Literal:
		return fc.literal(n)

	case *ast.Grouping:
		return fc.expr(n.Inner)

	case *ast.Identifier:
		fc.chunk.EmitU16(bytecode.GetLocal, fc.slotFor(n.Name))
		return nil

	case *ast.Unary:
		if n.Op == token.MINUS {
			// The 0 of 0 - x goes below the operand.
			fc.chunk.EmitU16(bytecode.Constant, fc.chunk.AddConstant(bytecode.Int(0)))
		}
		if err := fc.expr(n.Value); err != nil {
			return err
		}
		return fc.unaryOp(n.Op)

	case *ast.Binary:
		return fc.binary(n)

	case *ast.Call:
		return fc.call(n)

	case *ast.ArrayLiteral:
		return fc.arrayLiteral(n)

	default:
		return fmt.Errorf("compiler: unhandled expression %T", e)
	}
}

func (fc *fcomp) literal(n *ast.Literal) error {
	var c bytecode.Primitive
	switch n.Value.Kind {
	case ast.LitInt:
		c = bytecode.Int(n.Value.Int)
	case ast.LitFloat:
		c = bytecode.Flt(n.Value.Float)
	case ast.LitBool:
		c = bytecode.Boolean(n.Value.Bool)
	case ast.LitString, ast.LitChar:
		handle := fc.h.Allocate(heap.Object{Kind: heap.KindString, Str: n.Value.String})
		c = bytecode.Obj(handle)
	default:
		return fmt.Errorf("compiler: unhandled literal kind %v", n.Value.Kind)
	}
	idx := fc.chunk.AddConstant(c)
	fc.chunk.EmitU16(bytecode.Constant, idx)
	return nil
}

func (fc *fcomp) unaryOp(op token.Token) error {
	switch op {
	case token.MINUS:
		// No dedicated Neg opcode: 0 - x reuses Sub, matching the
		// constant-folding-free "no optimization passes" rule. expr has
		// already pushed the 0 before the operand.
		fc.chunk.Emit(bytecode.Sub)
		return nil
	case token.BANG:
		// !x as x == false.
		idx := fc.chunk.AddConstant(bytecode.Boolean(false))
		fc.chunk.EmitU16(bytecode.Constant, idx)
		fc.chunk.Emit(bytecode.Eq)
		return nil
	default:
		return fmt.Errorf("compiler: unhandled unary operator %s", op)
	}
}

func (fc *fcomp) binary(n *ast.Binary) error {
	if err := fc.expr(n.LHS); err != nil {
		return err
	}
	if err := fc.expr(n.RHS); err != nil {
		return err
	}
	switch n.Op {
	case token.PLUS, token.PLUSPLUS:
		fc.chunk.Emit(bytecode.Add)
	case token.MINUS:
		fc.chunk.Emit(bytecode.Sub)
	case token.STAR:
		fc.chunk.Emit(bytecode.Mul)
	case token.SLASH:
		fc.chunk.Emit(bytecode.Div)
	case token.PERCENT:
		fc.chunk.Emit(bytecode.Mod)
	case token.EQEQ:
		fc.chunk.Emit(bytecode.Eq)
	case token.BANGEQ:
		fc.chunk.Emit(bytecode.Ne)
	case token.LT, token.GT, token.LTEQ, token.GTEQ, token.ANDAND, token.OROR, token.DOTDOT:
		return fmt.Errorf("compiler: operator %s has no bytecode lowering yet", n.Op)
	default:
		return fmt.Errorf("compiler: unhandled binary operator %s", n.Op)
	}
	return nil
}

// call evaluates arguments left-to-right, pushes the callee's object handle
// last, then emits Call or CallNative depending on whether the callee names
// a foreign binding.
func (fc *fcomp) call(n *ast.Call) error {
	for _, a := range n.Args {
		if err := fc.expr(a); err != nil {
			return err
		}
	}
	if err := fc.expr(n.Callee); err != nil {
		return err
	}
	if ident, ok := n.Callee.(*ast.Identifier); ok && fc.isForeign(ident.Name) {
		fc.chunk.Emit(bytecode.CallNative)
		return nil
	}
	fc.chunk.Emit(bytecode.Call)
	return nil
}

func (fc *fcomp) arrayLiteral(n *ast.ArrayLiteral) error {
	elems := make([]bytecode.Primitive, 0, len(n.Elems))
	// Only Integer, Float and Boolean literal elements are folded into the
	// list object at compile time; any other element (an identifier, a
	// computed expression, a string or char literal) is a compile error.
	for _, el := range n.Elems {
		if lit, ok := el.(*ast.Literal); ok {
			switch lit.Value.Kind {
			case ast.LitInt:
				elems = append(elems, bytecode.Int(lit.Value.Int))
				continue
			case ast.LitFloat:
				elems = append(elems, bytecode.Flt(lit.Value.Float))
				continue
			case ast.LitBool:
				elems = append(elems, bytecode.Boolean(lit.Value.Bool))
				continue
			}
		}
		break
	}
	if len(elems) != len(n.Elems) {
		return fmt.Errorf("compiler: array literal with non-literal elements is not yet supported")
	}
	handle := fc.h.Allocate(heap.Object{Kind: heap.KindList, List: elems})
	idx := fc.chunk.AddConstant(bytecode.Obj(handle))
	fc.chunk.EmitU16(bytecode.Constant, idx)
	return nil
}
