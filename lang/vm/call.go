package vm

import (
	"github.com/slothlang/sloth/lang/bytecode"
	"github.com/slothlang/sloth/lang/heap"
)

// call implements the Call opcode: pop the callee (must be an Object
// handle pointing to a Function), then push a new frame whose locals begin
// where the already-pushed arguments sit on the operand stack.
func (vm *VM) call() *Fault {
	callee, f := vm.pop()
	if f != nil {
		return f
	}
	if callee.Kind != bytecode.PrimObject {
		return vm.fault(NotCallable, "call target is not an object: %v", callee)
	}
	obj, ok := vm.heap.Get(callee.Object)
	if !ok || obj.Kind != heap.KindFunction {
		return vm.fault(NotCallable, "call target does not reference a function")
	}
	fn := obj.Function

	base := len(vm.stack) - fn.Arity
	if base < 0 {
		return vm.fault(StackUnderflow, "call to %s expects %d arguments", fn.Name, fn.Arity)
	}
	if len(vm.frames) >= vm.frameCap {
		return vm.fault(CallStackOverflow, "call stack exceeds capacity %d", vm.frameCap)
	}

	vm.frames = append(vm.frames, Frame{
		chunk:        fn.Chunk,
		stackBase:    base,
		returnsValue: fn.ReturnsValue,
	})
	return nil
}

// callNative implements the CallNative opcode: pop the callee (must
// reference a NativeFunction), slice its arity arguments directly off the
// operand stack in the left-to-right order the compiler emitted them in,
// invoke the native, and push its result unless it doesn't return one.
func (vm *VM) callNative() *Fault {
	callee, f := vm.pop()
	if f != nil {
		return f
	}
	if callee.Kind != bytecode.PrimObject {
		return vm.fault(NotCallable, "native call target is not an object: %v", callee)
	}
	obj, ok := vm.heap.Get(callee.Object)
	if !ok || obj.Kind != heap.KindNativeFunction {
		return vm.fault(NotCallable, "call target does not reference a native function")
	}
	nf := obj.NativeFunction

	if len(vm.stack) < nf.Arity {
		return vm.fault(StackUnderflow, "native call to %s expects %d arguments", nf.Name, nf.Arity)
	}
	args := make([]bytecode.Primitive, nf.Arity)
	copy(args, vm.stack[len(vm.stack)-nf.Arity:])
	vm.stack = vm.stack[:len(vm.stack)-nf.Arity]

	result, err := nf.Call(vm, args)
	if err != nil {
		return vm.fault(BadOperandType, "native call to %s failed: %s", nf.Name, err)
	}
	if nf.ReturnsValue {
		return vm.push(result)
	}
	return nil
}

// ret implements the Return opcode: if the frame's function returns a
// value, pop it; truncate the stack to the frame's base; push the saved
// value back (if any); pop the frame.
func (vm *VM) ret() *Fault {
	frame := vm.frames[len(vm.frames)-1]

	var saved bytecode.Primitive
	hasSaved := false
	if frame.returnsValue {
		v, f := vm.pop()
		if f != nil {
			return f
		}
		saved = v
		hasSaved = true
	}

	if frame.stackBase > len(vm.stack) {
		return vm.fault(StackUnderflow, "return truncates below current stack depth")
	}
	vm.stack = vm.stack[:frame.stackBase]
	if hasSaved {
		if f := vm.push(saved); f != nil {
			return f
		}
	}
	vm.frames = vm.frames[:len(vm.frames)-1]
	return nil
}
