package symtable

// SymbolKind distinguishes a type binding from a value binding.
type SymbolKind int

const (
	// SymType binds a name to a Type, as introduced by a function's
	// parameter-type or return-type position. Sloth's grammar never lets
	// source declare a type alias; neither the parser nor the analyzer
	// creates symbols of this kind.
	SymType SymbolKind = iota
	// SymValue binds a name to a runtime value: a variable, a value
	// (immutable binding), or a function.
	SymValue
)

// Symbol is an entry in a SymbolTable: either a Type binding or a Value
// binding carrying the value's type, its unique id, and whether it is
// mutable (declared with `var` rather than `val`/`const`).
type Symbol struct {
	Kind    SymbolKind
	Type    Type
	ID      int
	Mutable bool
}

// NewTypeSymbol builds a Type-kind symbol.
func NewTypeSymbol(t Type) Symbol {
	return Symbol{Kind: SymType, Type: t}
}

// NewValueSymbol builds a Value-kind symbol with a freshly assigned id.
func NewValueSymbol(t Type, id int, mutable bool) Symbol {
	return Symbol{Kind: SymValue, Type: t, ID: id, Mutable: mutable}
}
