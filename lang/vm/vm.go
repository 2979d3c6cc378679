// Package vm implements Sloth's stack machine: a fixed-capacity operand
// stack and call-frame stack executed against an object heap until Halt is
// observed.
package vm

import (
	"github.com/slothlang/sloth/lang/bytecode"
	"github.com/slothlang/sloth/lang/heap"
	"github.com/slothlang/sloth/lang/natives"
)

const (
	defaultStackSize  = 1024
	defaultCallFrames = 1024
)

// VM owns the operand stack, call-frame stack, and object heap for a single
// run. It is not safe for concurrent use: the toolchain is single-threaded
// and synchronous by design (the spec explicitly rules out a cooperative
// suspension point in the dispatch loop).
type VM struct {
	stack  []bytecode.Primitive
	frames []Frame

	stackCap int
	frameCap int
	maxSteps int
	steps    int

	heap    *heap.Heap
	natives *natives.Registry

	halted bool
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStackSize overrides the default 1024-slot operand stack capacity.
func WithStackSize(n int) Option { return func(v *VM) { v.stackCap = n } }

// WithCallFrames overrides the default 1024-deep call-frame capacity.
func WithCallFrames(n int) Option { return func(v *VM) { v.frameCap = n } }

// WithMaxSteps bounds the number of dispatch-loop iterations Run will
// perform before returning a Fault; 0 (the default) means unbounded.
func WithMaxSteps(n int) Option { return func(v *VM) { v.maxSteps = n } }

// New allocates root (the top-level compiled chunk) as a Function object in
// h, appends Halt to its code to guarantee termination, and pushes a single
// frame referencing it with stack_base=0.
func New(root *bytecode.Chunk, h *heap.Heap, reg *natives.Registry, opts ...Option) *VM {
	v := &VM{
		stackCap: defaultStackSize,
		frameCap: defaultCallFrames,
		heap:     h,
		natives:  reg,
	}
	for _, opt := range opts {
		opt(v)
	}

	if len(root.Code) == 0 || bytecode.Op(root.Code[len(root.Code)-1]) != bytecode.Halt {
		root.Emit(bytecode.Halt)
	}
	h.Allocate(heap.Object{Kind: heap.KindFunction, Function: &heap.Function{Chunk: root}})

	v.stack = make([]bytecode.Primitive, 0, v.stackCap)
	v.frames = make([]Frame, 0, v.frameCap)
	v.frames = append(v.frames, Frame{chunk: root, stackBase: 0})
	return v
}

// AllocString satisfies natives.VM: it boxes s as a heap String object.
func (vm *VM) AllocString(s string) uint32 {
	return vm.heap.Allocate(heap.Object{Kind: heap.KindString, Str: s})
}

// ReadString satisfies natives.VM: it resolves a String object handle back
// to its Go string.
func (vm *VM) ReadString(handle uint32) (string, bool) {
	obj, ok := vm.heap.Get(handle)
	if !ok || obj.Kind != heap.KindString {
		return "", false
	}
	return obj.Str, true
}

func (vm *VM) push(p bytecode.Primitive) *Fault {
	if len(vm.stack) >= vm.stackCap {
		return vm.fault(StackOverflow, "operand stack exceeds capacity %d", vm.stackCap)
	}
	vm.stack = append(vm.stack, p)
	return nil
}

func (vm *VM) pop() (bytecode.Primitive, *Fault) {
	if len(vm.stack) == 0 {
		return bytecode.Empty, vm.fault(StackUnderflow, "pop on empty operand stack")
	}
	top := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return top, nil
}

// Run drives Step until it returns false, returning the first Fault
// encountered (nil on a clean Halt).
func (vm *VM) Run() error {
	for {
		cont, err := vm.Step()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// Step executes a single instruction of the top frame. It returns true to
// continue, false on Halt (err is nil in that case) or on a Fault.
func (vm *VM) Step() (bool, error) {
	if vm.halted {
		return false, nil
	}
	if vm.maxSteps > 0 && vm.steps >= vm.maxSteps {
		return false, vm.fault(StepLimitExceeded, "exceeded max step count %d", vm.maxSteps)
	}
	vm.steps++

	frame := &vm.frames[len(vm.frames)-1]
	if frame.pc >= len(frame.chunk.Code) {
		return false, vm.fault(IndexOutOfRange, "program counter %d past end of chunk", frame.pc)
	}
	op := bytecode.Op(frame.chunk.Code[frame.pc])
	frame.pc++

	var operand uint16
	if op.HasU16Operand() {
		if frame.pc+2 > len(frame.chunk.Code) {
			return false, vm.fault(IndexOutOfRange, "truncated operand for %s", op)
		}
		operand = frame.chunk.ReadU16(frame.pc)
		frame.pc += 2
	}

	switch op {
	case bytecode.Constant:
		if int(operand) >= len(frame.chunk.Constants) {
			return false, vm.fault(IndexOutOfRange, "constant index %d out of range", operand)
		}
		if f := vm.push(frame.chunk.Constants[operand]); f != nil {
			return false, f
		}

	case bytecode.Dup:
		if len(vm.stack) == 0 {
			return false, vm.fault(StackUnderflow, "dup on empty operand stack")
		}
		if f := vm.push(vm.stack[len(vm.stack)-1]); f != nil {
			return false, f
		}

	case bytecode.Pop:
		if _, f := vm.pop(); f != nil {
			return false, f
		}

	case bytecode.GetLocal:
		idx := frame.stackBase + int(operand)
		if idx < 0 || idx >= len(vm.stack) {
			return false, vm.fault(IndexOutOfRange, "local slot %d out of range", operand)
		}
		if f := vm.push(vm.stack[idx]); f != nil {
			return false, f
		}

	case bytecode.SetLocal:
		v, f := vm.pop()
		if f != nil {
			return false, f
		}
		idx := frame.stackBase + int(operand)
		for idx >= len(vm.stack) {
			vm.stack = append(vm.stack, bytecode.Empty)
		}
		vm.stack[idx] = v

	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Mod:
		if f := vm.arith(op); f != nil {
			return false, f
		}

	case bytecode.Eq, bytecode.Ne:
		rhs, f := vm.pop()
		if f != nil {
			return false, f
		}
		lhs, f := vm.pop()
		if f != nil {
			return false, f
		}
		eq := lhs.Equal(rhs)
		if op == bytecode.Ne {
			eq = !eq
		}
		if f := vm.push(bytecode.Boolean(eq)); f != nil {
			return false, f
		}

	case bytecode.Jump:
		frame.pc = int(operand)

	case bytecode.JumpIf:
		cond, f := vm.pop()
		if f != nil {
			return false, f
		}
		if cond.Kind != bytecode.PrimBool {
			return false, vm.fault(BadOperandType, "JumpIf requires a Bool operand, got %v", cond)
		}
		if cond.Bool {
			frame.pc = int(operand)
		}

	case bytecode.Call:
		if f := vm.call(); f != nil {
			return false, f
		}

	case bytecode.CallNative:
		if f := vm.callNative(); f != nil {
			return false, f
		}

	case bytecode.Return:
		if f := vm.ret(); f != nil {
			return false, f
		}
		if len(vm.frames) == 0 {
			vm.halted = true
			return false, nil
		}

	case bytecode.Halt:
		vm.halted = true
		return false, nil

	case bytecode.VMReturn, bytecode.VMPrint:
		// Debug-only opcodes: never emitted by the compiler for ordinary
		// programs; the VM executes them as no-ops.

	default:
		return false, vm.fault(UnknownOpcode, "unknown opcode 0x%02x", byte(op))
	}

	return true, nil
}

func (vm *VM) arith(op bytecode.Op) *Fault {
	rhs, f := vm.pop()
	if f != nil {
		return f
	}
	lhs, f := vm.pop()
	if f != nil {
		return f
	}

	switch {
	case lhs.Kind == bytecode.PrimInteger && rhs.Kind == bytecode.PrimInteger:
		a, b := lhs.Integer, rhs.Integer
		var result int64
		switch op {
		case bytecode.Add:
			result = a + b
		case bytecode.Sub:
			result = a - b
		case bytecode.Mul:
			result = a * b
		case bytecode.Div:
			if b == 0 {
				return vm.fault(DivideByZero, "integer division by zero")
			}
			result = a / b
		case bytecode.Mod:
			if b == 0 {
				return vm.fault(DivideByZero, "integer modulo by zero")
			}
			result = a % b
		}
		return vm.push(bytecode.Int(result))

	case lhs.Kind == bytecode.PrimFloat && rhs.Kind == bytecode.PrimFloat:
		a, b := lhs.Float, rhs.Float
		var result float64
		switch op {
		case bytecode.Add:
			result = a + b
		case bytecode.Sub:
			result = a - b
		case bytecode.Mul:
			result = a * b
		case bytecode.Div:
			result = a / b
		case bytecode.Mod:
			result = mathMod(a, b)
		}
		return vm.push(bytecode.Flt(result))

	default:
		return vm.fault(BadOperandType, "%s requires matching Integer or Float operands, got %v and %v", op, lhs, rhs)
	}
}

func mathMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}
