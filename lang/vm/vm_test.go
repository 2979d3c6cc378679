package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slothlang/sloth/lang/bytecode"
	"github.com/slothlang/sloth/lang/heap"
	"github.com/slothlang/sloth/lang/natives"
)

func runToHalt(t *testing.T, chunk *bytecode.Chunk) (*VM, error) {
	t.Helper()
	h := heap.New()
	m := New(chunk, h, natives.Standard())
	return m, m.Run()
}

func topOfStack(t *testing.T, m *VM) bytecode.Primitive {
	t.Helper()
	require.NotEmpty(t, m.stack)
	return m.stack[len(m.stack)-1]
}

func TestIntegerAddViaDup(t *testing.T) {
	var c bytecode.Chunk
	idx := c.AddConstant(bytecode.Int(7))
	c.EmitU16(bytecode.Constant, idx)
	c.Emit(bytecode.Dup)
	c.Emit(bytecode.Add)
	c.Emit(bytecode.Halt)

	m, err := runToHalt(t, &c)
	require.NoError(t, err)
	require.Equal(t, bytecode.Int(14), topOfStack(t, m))
}

func TestIntegerAddTwoConstants(t *testing.T) {
	var c bytecode.Chunk
	i0 := c.AddConstant(bytecode.Int(2))
	i1 := c.AddConstant(bytecode.Int(11))
	c.EmitU16(bytecode.Constant, i0)
	c.EmitU16(bytecode.Constant, i1)
	c.Emit(bytecode.Add)
	c.Emit(bytecode.Halt)

	m, err := runToHalt(t, &c)
	require.NoError(t, err)
	require.Equal(t, bytecode.Int(13), topOfStack(t, m))
}

func TestDivideByZeroFaults(t *testing.T) {
	var c bytecode.Chunk
	i0 := c.AddConstant(bytecode.Int(10))
	i1 := c.AddConstant(bytecode.Int(0))
	c.EmitU16(bytecode.Constant, i0)
	c.EmitU16(bytecode.Constant, i1)
	c.Emit(bytecode.Div)
	c.Emit(bytecode.Halt)

	_, err := runToHalt(t, &c)
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, DivideByZero, fault.Kind)
}

func TestConditionalJumpTrueBranch(t *testing.T) {
	var c bytecode.Chunk
	i0 := c.AddConstant(bytecode.Boolean(true))
	i1 := c.AddConstant(bytecode.Int(99))
	c.EmitU16(bytecode.Constant, i0) // pc 0..2
	jmp := c.EmitU16(bytecode.JumpIf, 0) // pc 3..5
	c.EmitU16(bytecode.Constant, i1) // pc 6..8
	c.Emit(bytecode.Halt)            // pc 9
	haltAt := len(c.Code)
	c.Emit(bytecode.Halt)
	c.PatchU16(jmp, uint16(haltAt))

	m, err := runToHalt(t, &c)
	require.NoError(t, err)
	require.Empty(t, m.stack, "jumping past the Constant must leave nothing pushed")
}

func TestConditionalJumpFalseBranch(t *testing.T) {
	var c bytecode.Chunk
	i0 := c.AddConstant(bytecode.Boolean(false))
	i1 := c.AddConstant(bytecode.Int(99))
	c.EmitU16(bytecode.Constant, i0)
	jmp := c.EmitU16(bytecode.JumpIf, 0)
	c.EmitU16(bytecode.Constant, i1)
	c.Emit(bytecode.Halt)
	haltAt := len(c.Code)
	c.Emit(bytecode.Halt)
	c.PatchU16(jmp, uint16(haltAt))

	m, err := runToHalt(t, &c)
	require.NoError(t, err)
	require.Equal(t, bytecode.Int(99), topOfStack(t, m))
}

func TestCallReturningValue(t *testing.T) {
	h := heap.New()

	var body bytecode.Chunk
	body.EmitU16(bytecode.GetLocal, 0)
	body.EmitU16(bytecode.GetLocal, 1)
	body.Emit(bytecode.Add)
	body.Emit(bytecode.Return)

	handle := h.Allocate(heap.Object{
		Kind: heap.KindFunction,
		Function: &heap.Function{
			Name: "add", Arity: 2, ReturnsValue: true, Chunk: &body,
		},
	})

	var root bytecode.Chunk
	i6 := root.AddConstant(bytecode.Int(6))
	i3 := root.AddConstant(bytecode.Int(3))
	ifn := root.AddConstant(bytecode.Obj(handle))
	root.EmitU16(bytecode.Constant, i6)
	root.EmitU16(bytecode.Constant, i3)
	root.EmitU16(bytecode.Constant, ifn)
	root.Emit(bytecode.Call)
	root.Emit(bytecode.Halt)

	m := New(&root, h, natives.Standard())
	require.NoError(t, m.Run())
	require.Equal(t, bytecode.Int(9), topOfStack(t, m))
}

// TestIterativeFibonacci mirrors the VM scenario from the spec: two local
// slots hold the running pair, updated across 10 loop iterations, jumping
// on an equality comparison against the iteration count.
func TestIterativeFibonacci(t *testing.T) {
	var c bytecode.Chunk
	// slots: 0 = a, 1 = b, 2 = i
	zero := c.AddConstant(bytecode.Int(0))
	one := c.AddConstant(bytecode.Int(1))
	ten := c.AddConstant(bytecode.Int(10))

	c.EmitU16(bytecode.Constant, zero)
	c.EmitU16(bytecode.SetLocal, 0) // a = 0
	c.EmitU16(bytecode.Constant, one)
	c.EmitU16(bytecode.SetLocal, 1) // b = 1
	c.EmitU16(bytecode.Constant, zero)
	c.EmitU16(bytecode.SetLocal, 2) // i = 0

	loopStart := len(c.Code)
	c.EmitU16(bytecode.GetLocal, 2)
	c.EmitU16(bytecode.Constant, ten)
	c.Emit(bytecode.Eq)
	exitJump := c.EmitU16(bytecode.JumpIf, 0)

	// tmp = a + b; a = b; b = tmp
	c.EmitU16(bytecode.GetLocal, 0)
	c.EmitU16(bytecode.GetLocal, 1)
	c.Emit(bytecode.Add)
	c.EmitU16(bytecode.GetLocal, 1)
	c.EmitU16(bytecode.SetLocal, 0)
	c.EmitU16(bytecode.SetLocal, 1)

	c.EmitU16(bytecode.GetLocal, 2)
	c.EmitU16(bytecode.Constant, one)
	c.Emit(bytecode.Add)
	c.EmitU16(bytecode.SetLocal, 2)
	c.EmitU16(bytecode.Jump, uint16(loopStart))

	c.PatchU16(exitJump, uint16(len(c.Code)))
	c.EmitU16(bytecode.GetLocal, 0)
	c.Emit(bytecode.Halt)

	m, err := runToHalt(t, &c)
	require.NoError(t, err)
	require.Equal(t, bytecode.Int(55), topOfStack(t, m))
}

func TestCallNativeDispatchesRegisteredFunction(t *testing.T) {
	h := heap.New()
	reg := natives.Standard()
	rec, ok := reg.Lookup("random")
	require.True(t, ok)

	handle := h.Allocate(heap.Object{
		Kind: heap.KindNativeFunction,
		NativeFunction: &heap.NativeFunction{
			Name: rec.Name, Arity: rec.Arity, ReturnsValue: rec.ReturnsValue, Call: rec.Fn,
		},
	})

	var c bytecode.Chunk
	idx := c.AddConstant(bytecode.Obj(handle))
	c.EmitU16(bytecode.Constant, idx)
	c.Emit(bytecode.CallNative)
	c.Emit(bytecode.Halt)

	m := New(&c, h, reg)
	require.NoError(t, m.Run())
	top := topOfStack(t, m)
	require.Equal(t, bytecode.PrimFloat, top.Kind)
}

func TestStackUnderflowIsFault(t *testing.T) {
	var c bytecode.Chunk
	c.Emit(bytecode.Pop)
	c.Emit(bytecode.Halt)

	_, err := runToHalt(t, &c)
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, StackUnderflow, fault.Kind)
}

func TestUnknownOpcodeIsFault(t *testing.T) {
	var c bytecode.Chunk
	c.Code = append(c.Code, 0x7f)

	_, err := runToHalt(t, &c)
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, UnknownOpcode, fault.Kind)
}

func TestMaxStepsExceededIsFault(t *testing.T) {
	var c bytecode.Chunk
	loopStart := len(c.Code)
	c.EmitU16(bytecode.Jump, uint16(loopStart))

	h := heap.New()
	m := New(&c, h, natives.Standard(), WithMaxSteps(5))
	err := m.Run()
	require.Error(t, err)
}
