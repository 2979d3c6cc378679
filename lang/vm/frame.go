package vm

import "github.com/slothlang/sloth/lang/bytecode"

// Frame is one call-frame entry: the function being executed, the program
// counter within its chunk, and the operand-stack index its locals begin
// at.
type Frame struct {
	chunk     *bytecode.Chunk
	pc        int
	stackBase int
	// returnsValue mirrors the function object's own flag so Return knows
	// whether to carry a value across the frame boundary.
	returnsValue bool
}
