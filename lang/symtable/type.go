// Package symtable implements Sloth's lexically scoped symbol tables and its
// static type representation.
package symtable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dolthub/swiss"
)

// Kind identifies which variant of Type a value holds.
type Kind int

const (
	Void Kind = iota
	Integer
	Float
	Boolean
	String
	Iterator
	Array
	Function
	Struct
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Iterator:
		return "iterator"
	case Array:
		return "array"
	case Function:
		return "function"
	case Struct:
		return "struct"
	default:
		return "unknown"
	}
}

// Type is Sloth's static type representation: a tagged union with payload
// fields used only by the variant they belong to.
//
//   - Void, Integer, Float, Boolean, String carry no payload.
//   - Iterator and Array carry Elem, the element type.
//   - Function carries Inputs and Output.
//   - Struct carries Fields, a name to field-type table backed by the same
//     swiss-table map the native registry uses, since both are a
//     compile-time-built, read-hot-at-runtime name lookup.
type Type struct {
	Kind   Kind
	Elem   *Type
	Inputs []Type
	Output *Type
	Fields *swiss.Map[string, Type]
}

// Basic type constructors for the payload-free kinds.
var (
	TypeVoid    = Type{Kind: Void}
	TypeInteger = Type{Kind: Integer}
	TypeFloat   = Type{Kind: Float}
	TypeBoolean = Type{Kind: Boolean}
	TypeString  = Type{Kind: String}
)

// NewIterator builds an Iterator(elem) type.
func NewIterator(elem Type) Type { return Type{Kind: Iterator, Elem: &elem} }

// NewArray builds an Array(elem) type.
func NewArray(elem Type) Type { return Type{Kind: Array, Elem: &elem} }

// NewFunction builds a Function{inputs, output} type.
func NewFunction(inputs []Type, output Type) Type {
	return Type{Kind: Function, Inputs: inputs, Output: &output}
}

// NewStruct builds a Struct{fields} type. Sloth's grammar has no syntax to
// construct a struct literal or declare a struct type, so this constructor
// exists for completeness of the type system and for a future grammar
// extension to plug into; nothing in the current parser calls it.
func NewStruct(fields map[string]Type) Type {
	m := swiss.NewMap[string, Type](uint32(len(fields)))
	for name, ft := range fields {
		m.Put(name, ft)
	}
	return Type{Kind: Struct, Fields: m}
}

// Equal reports whether t and other describe the same type, recursing into
// payloads structurally.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Iterator, Array:
		return t.Elem.Equal(*other.Elem)
	case Function:
		if len(t.Inputs) != len(other.Inputs) {
			return false
		}
		for i := range t.Inputs {
			if !t.Inputs[i].Equal(other.Inputs[i]) {
				return false
			}
		}
		return t.Output.Equal(*other.Output)
	case Struct:
		if t.Fields.Count() != other.Fields.Count() {
			return false
		}
		equal := true
		t.Fields.Iter(func(name string, ft Type) bool {
			oft, ok := other.Fields.Get(name)
			if !ok || !ft.Equal(oft) {
				equal = false
				return true
			}
			return false
		})
		return equal
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case Iterator:
		return fmt.Sprintf("Iterator(%s)", t.Elem)
	case Array:
		return fmt.Sprintf("Array(%s)", t.Elem)
	case Function:
		parts := make([]string, len(t.Inputs))
		for i, in := range t.Inputs {
			parts[i] = in.String()
		}
		return fmt.Sprintf("Function(%s) -> %s", strings.Join(parts, ", "), t.Output)
	case Struct:
		names := make([]string, 0, t.Fields.Count())
		t.Fields.Iter(func(name string, _ Type) bool {
			names = append(names, name)
			return false
		})
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			ft, _ := t.Fields.Get(name)
			parts[i] = fmt.Sprintf("%s: %s", name, ft)
		}
		return fmt.Sprintf("Struct{%s}", strings.Join(parts, ", "))
	default:
		return t.Kind.String()
	}
}
