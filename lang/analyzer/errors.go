// Package analyzer decorates a parsed *ast.Block with symbols and types: a
// symbol-population pass, a bottom-up type-propagation pass, and a final
// usage-check pass over identifier and assignment references.
package analyzer

import (
	"fmt"

	"github.com/slothlang/sloth/lang/token"
)

// ErrKind identifies which of the three analyzer error shapes occurred.
type ErrKind int

const (
	TypeMismatch ErrKind = iota
	UnknownIdentifier
	Unknown
)

// Error is a single analyzer diagnostic.
type Error struct {
	Kind ErrKind
	Line int
	Name string // set for UnknownIdentifier
	Hint string // set for Unknown
}

func (e *Error) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("line %d: type mismatch", e.Line)
	case UnknownIdentifier:
		return fmt.Sprintf("line %d: unknown identifier %q", e.Line, e.Name)
	default:
		return fmt.Sprintf("line %d: %s", e.Line, e.Hint)
	}
}

func (e *Error) loc() token.Location { return token.Location{Row: e.Line, Col: 1} }
