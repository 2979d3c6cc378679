package bytecode

import "encoding/binary"

// Chunk is a compiled function body: a flat instruction stream plus the
// constant pool it indexes into. Jump targets are absolute 16-bit byte
// offsets into Code.
type Chunk struct {
	Code      []byte
	Constants []Primitive
}

// AddConstant appends v to the constant pool and returns its index.
func (c *Chunk) AddConstant(v Primitive) uint16 {
	c.Constants = append(c.Constants, v)
	return uint16(len(c.Constants) - 1)
}

// Emit appends a bare opcode with no operand.
func (c *Chunk) Emit(op Op) int {
	pos := len(c.Code)
	c.Code = append(c.Code, byte(op))
	return pos
}

// EmitU16 appends an opcode followed by a big-endian 16-bit immediate.
func (c *Chunk) EmitU16(op Op, operand uint16) int {
	pos := len(c.Code)
	c.Code = append(c.Code, byte(op))
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], operand)
	c.Code = append(c.Code, buf[:]...)
	return pos
}

// PatchU16 overwrites the 16-bit immediate at pos+1 (pos being the position
// returned by the original Emit/EmitU16 call for the instruction).
func (c *Chunk) PatchU16(pos int, operand uint16) {
	binary.BigEndian.PutUint16(c.Code[pos+1:pos+3], operand)
}

// ReadU16 reads a big-endian 16-bit immediate at offset pos in Code.
func (c *Chunk) ReadU16(pos int) uint16 {
	return binary.BigEndian.Uint16(c.Code[pos : pos+2])
}
