// Package heap implements Sloth's object store: a free-list-backed arena of
// Objects addressed by stable 32-bit handles, allocating in O(1) and never
// reusing a handle while its object is alive.
package heap

import (
	"fmt"

	"github.com/slothlang/sloth/lang/bytecode"
	"github.com/slothlang/sloth/lang/natives"
)

// Kind identifies which variant of Object a slot holds.
type Kind int

const (
	KindFree Kind = iota
	KindBoxed
	KindString
	KindList
	KindFunction
	KindNativeFunction
)

// Object is a single heap slot. Exactly one of the Kind-specific payload
// fields is meaningful at a time; Free uses Next to chain into the free
// list.
type Object struct {
	Marked bool
	Kind   Kind

	Next uint32 // KindFree

	Boxed bytecode.Primitive // KindBoxed

	Str string // KindString

	List []bytecode.Primitive // KindList

	Function       *Function       // KindFunction
	NativeFunction *NativeFunction // KindNativeFunction
}

// Function is a compiled function object: its chunk plus the arity and
// whether it produces a value.
type Function struct {
	Name         string
	Arity        int
	ReturnsValue bool
	Chunk        *bytecode.Chunk
}

// NativeFunction is a host function object, boxing a lang/natives Record so
// the VM can dispatch CallNative the same way it dispatches Call: by
// resolving a heap handle.
type NativeFunction struct {
	Name         string
	Arity        int
	ReturnsValue bool
	Call         natives.Func
}

// Heap is the free-list-backed object arena.
type Heap struct {
	slots []Object
	free  uint32 // index of the next free slot, or len(slots) to grow
}

// New creates an empty Heap.
func New() *Heap {
	return &Heap{}
}

// Allocate stores obj and returns its handle. O(1): if the free cursor
// points past the end of the arena, one new Free slot is appended; the
// slot at the cursor is then overwritten with obj and the cursor advances
// to what was that slot's Next.
func (h *Heap) Allocate(obj Object) uint32 {
	if int(h.free) == len(h.slots) {
		h.slots = append(h.slots, Object{Kind: KindFree, Next: uint32(len(h.slots) + 1)})
	}
	handle := h.free
	next := h.slots[handle].Next
	h.slots[handle] = obj
	h.free = next
	return handle
}

// Free returns handle's slot to the free list, splicing it in front of the
// current free cursor.
func (h *Heap) Free(handle uint32) {
	h.slots[handle] = Object{Kind: KindFree, Next: h.free}
	h.free = handle
}

// Get returns the object at handle, bounds-checked.
func (h *Heap) Get(handle uint32) (*Object, bool) {
	if int(handle) >= len(h.slots) {
		return nil, false
	}
	obj := &h.slots[handle]
	if obj.Kind == KindFree {
		return nil, false
	}
	return obj, true
}

// GetMut is an alias for Get returning a mutable pointer; Go has no
// separate mutable/immutable borrow distinction, so this exists only to
// mirror the two-accessor contract described by the spec.
func (h *Heap) GetMut(handle uint32) (*Object, bool) { return h.Get(handle) }

// Len returns the number of slots in the arena, including free ones.
func (h *Heap) Len() int { return len(h.slots) }

func (o *Object) String() string {
	switch o.Kind {
	case KindBoxed:
		return fmt.Sprintf("boxed(%v)", o.Boxed)
	case KindString:
		return fmt.Sprintf("%q", o.Str)
	case KindList:
		return fmt.Sprintf("list[%d]", len(o.List))
	case KindFunction:
		return fmt.Sprintf("function %s/%d", o.Function.Name, o.Function.Arity)
	case KindNativeFunction:
		return fmt.Sprintf("native %s/%d", o.NativeFunction.Name, o.NativeFunction.Arity)
	default:
		return "free"
	}
}
