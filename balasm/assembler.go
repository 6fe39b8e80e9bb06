// Package balasm is a minimal test aide: a single-writer assembler that
// emits the MOV-wide family (MOVZ/MOVK/MOVN) into a 4-byte-aligned word
// buffer, for constructing guest code without round-tripping through a full
// ARM64 assembler. It uses the same latched-status discipline as
// balengine.
package balasm

import "github.com/poundemu/ballistic/balerrors"

// validShifts is the set of legal LSL shift amounts for the MOV-wide
// family: 0, 16, 32, 48 (hw values 0..3).
var validShifts = map[uint32]bool{0: true, 16: true, 32: true, 48: true}

// Assembler appends 32-bit ARM64 words into a caller-supplied buffer,
// validating arguments and capacity as it goes. Once Status is non-success,
// every Emit* call is a silent no-op.
type Assembler struct {
	buffer []uint32
	count  int
	Status balerrors.Code
}

// New wraps buffer for append-only emission, bounding writes to the first
// capacityInWords elements (which must not exceed len(buffer)). Passing a
// nil buffer or a non-positive capacity is an error.
func New(buffer []uint32, capacityInWords int) (*Assembler, balerrors.Code) {
	if buffer == nil || capacityInWords <= 0 || capacityInWords > len(buffer) {
		return nil, balerrors.InvalidArgument
	}
	return &Assembler{buffer: buffer[:capacityInWords]}, balerrors.Success
}

// Words returns the words written so far.
func (a *Assembler) Words() []uint32 {
	return a.buffer[:a.count]
}

func (a *Assembler) fail(code balerrors.Code) {
	if a.Status == balerrors.Success {
		a.Status = code
	}
}

func (a *Assembler) ok() bool {
	return a.Status == balerrors.Success
}

// validate checks the shared MOV-wide argument constraints: rd in [0,31]
// and shift in {0,16,32,48}. imm16 is a uint16 and needs no range check.
func (a *Assembler) validate(rd uint32, shift uint32) bool {
	if !a.ok() {
		return false
	}
	if rd > 31 {
		a.fail(balerrors.InvalidArgument)
		return false
	}
	if !validShifts[shift] {
		a.fail(balerrors.InvalidArgument)
		return false
	}
	return true
}

// encode packs the MOV-wide family's common bit layout: sf=1 (64-bit
// form), the given opc, hw = shift/16, imm16, and rd.
func encode(opc uint32, rd, imm16, shift uint32) uint32 {
	hw := shift / 16
	const sf = 1
	return (sf << 31) | (opc << 29) | (0x25 << 23) | (hw << 21) | (imm16 << 5) | rd
}

func (a *Assembler) emit(word uint32) {
	if a.count >= len(a.buffer) {
		a.fail(balerrors.InstructionOverflow)
		return
	}
	a.buffer[a.count] = word
	a.count++
}

// EmitMOVZ appends a MOVZ rd, #imm16, LSL #shift instruction.
func (a *Assembler) EmitMOVZ(rd uint32, imm16 uint16, shift uint32) {
	if !a.validate(rd, shift) {
		return
	}
	a.emit(encode(0b10, rd, uint32(imm16), shift))
}

// EmitMOVN appends a MOVN rd, #imm16, LSL #shift instruction.
func (a *Assembler) EmitMOVN(rd uint32, imm16 uint16, shift uint32) {
	if !a.validate(rd, shift) {
		return
	}
	a.emit(encode(0b00, rd, uint32(imm16), shift))
}

// EmitMOVK appends a MOVK rd, #imm16, LSL #shift instruction.
func (a *Assembler) EmitMOVK(rd uint32, imm16 uint16, shift uint32) {
	if !a.validate(rd, shift) {
		return
	}
	a.emit(encode(0b11, rd, uint32(imm16), shift))
}
