// Package natives implements Sloth's native function registry: a
// name-keyed table of host functions loaded once at VM start, backed by a
// swiss-table hash map the way the teacher backs its own runtime maps.
package natives

import (
	"github.com/dolthub/swiss"

	"github.com/slothlang/sloth/lang/bytecode"
)

// ErrKind distinguishes the two native-call failure shapes.
type ErrKind int

const (
	InvalidArgument ErrKind = iota
	UnknownErr
)

// Error is the error type returned by a native function call.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// VM is the slice of virtual-machine functionality a native function may
// need, kept narrow to avoid this package importing lang/vm.
type VM interface {
	// AllocString boxes s as a heap String object and returns its handle.
	AllocString(s string) uint32
	// ReadString resolves a String object handle back to its Go string.
	ReadString(handle uint32) (string, bool)
}

// Func is the signature every native function implements: a mutable VM
// reference and the call's arguments, returning a result primitive or an
// *Error.
type Func func(vm VM, args []bytecode.Primitive) (bytecode.Primitive, error)

// Record is a single entry in the registry: the function pointer plus its
// arity, whether it produces a value, and an optional one-line doc string.
type Record struct {
	Name         string
	Arity        int
	ReturnsValue bool
	Doc          string
	Fn           Func
}

// Registry maps native function names to their Record.
type Registry struct {
	m *swiss.Map[string, Record]
}

// NewRegistry builds an empty registry with room for size entries.
func NewRegistry(size int) *Registry {
	return &Registry{m: swiss.NewMap[string, Record](uint32(size))}
}

// Register adds r to the registry, keyed by r.Name.
func (r *Registry) Register(rec Record) {
	r.m.Put(rec.Name, rec)
}

// Lookup resolves name to its Record.
func (r *Registry) Lookup(name string) (Record, bool) {
	return r.m.Get(name)
}

// Standard builds the registry populated with Sloth's standard natives.
func Standard() *Registry {
	r := NewRegistry(len(stdlibRecords))
	for _, rec := range stdlibRecords {
		r.Register(rec)
	}
	return r
}
