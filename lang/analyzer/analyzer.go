package analyzer

import (
	"github.com/slothlang/sloth/lang/ast"
	"github.com/slothlang/sloth/lang/diag"
)

// Analyze runs all three passes over root in order, returning a
// diag.ErrorList accumulating every pass's diagnostics. A later pass still
// runs even if an earlier one reported errors, so a single Analyze call
// surfaces as many problems as possible in one shot.
func Analyze(root *ast.Block) error {
	var errs diag.ErrorList

	for _, e := range populate(root) {
		errs.Add(e.loc(), e.Error())
	}
	for _, e := range propagate(root) {
		errs.Add(e.loc(), e.Error())
	}
	for _, e := range checkUsage(root) {
		errs.Add(e.loc(), e.Error())
	}

	errs.Sort()
	return errs.Err()
}
