// Package diag implements the compile-time diagnostics shared by the lexer,
// parser, analyzer and compiler: positioned errors collected into a single
// sortable batch, modeled on the teacher's lang/scanner.ErrorList (itself
// built on go/scanner.ErrorList).
package diag

import (
	"fmt"
	"sort"

	"github.com/slothlang/sloth/lang/token"
)

// Error is a single diagnostic at a source location.
type Error struct {
	Loc token.Location
	Msg string
}

func (e Error) Error() string {
	if e.Loc.Unknown() {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Loc.Row, e.Msg)
}

// ErrorList is a list of *Error, sorted by Add in position order once
// Sort is called. It satisfies the error interface once non-empty, and its
// Unwrap exposes every entry so errors.Is/errors.As work over the batch.
type ErrorList []*Error

// Add appends a new diagnostic at loc with the given message.
func (l *ErrorList) Add(loc token.Location, msg string) {
	*l = append(*l, &Error{Loc: loc, Msg: msg})
}

// Addf is like Add but formats msg with args.
func (l *ErrorList) Addf(loc token.Location, format string, args ...interface{}) {
	l.Add(loc, fmt.Sprintf(format, args...))
}

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	if l[i].Loc.Row != l[j].Loc.Row {
		return l[i].Loc.Row < l[j].Loc.Row
	}
	return l[i].Loc.Col < l[j].Loc.Col
}

// Sort sorts the list by source position.
func (l ErrorList) Sort() { sort.Sort(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
	}
}

// Unwrap exposes every entry in the list as a plain []error, so that
// errors.Is and errors.As traverse the whole batch.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns nil if l is empty, else l itself as an error.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
