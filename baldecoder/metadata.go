// Package baldecoder implements the ARM64 decoder: a perfect-hash-bucketed
// classifier mapping a 32-bit instruction word to static metadata, or
// rejecting it as undefined. The package holds no instruction data of its
// own — see baldecodetable for the generated table this decoder consumes.
package baldecoder

import "math/bits"

// OperandType classifies a decoded operand field.
type OperandType uint8

const (
	OperandNone OperandType = iota
	OperandRegister32
	OperandRegister64
	OperandRegister128
	OperandImmediate
	OperandCondition
)

// OperandField describes how to extract one operand from an instruction
// word: the raw value is (instruction >> BitPosition) & ((1 << BitWidth) - 1).
type OperandField struct {
	Type        OperandType
	BitPosition uint8
	BitWidth    uint8
}

// Extract pulls this field's raw value out of instruction. A Type of
// OperandNone always extracts to zero.
func (f OperandField) Extract(instruction uint32) uint32 {
	if f.Type == OperandNone || f.BitWidth == 0 {
		return 0
	}
	mask := uint32(1)<<f.BitWidth - 1
	return (instruction >> f.BitPosition) & mask
}

// Metadata is the static description of one ARM64 encoding: its mnemonic,
// the bits that must match, and the IR opcode it maps to. Metadata values
// are produced offline by tools/gendecode and never mutated at runtime.
type Metadata struct {
	// Name is the mnemonic, e.g. "MOVZ". Its 4th character (index 3)
	// disambiguates the MOV-wide family ('Z', 'N', 'K').
	Name string

	// Mask is the bitmask of significant (fixed) bits in the encoding.
	Mask uint32

	// Expected is the pattern those fixed bits must equal:
	// (instruction & Mask) == Expected.
	Expected uint32

	// IROpcode is the Ballistic IR opcode this mnemonic maps to. Mnemonics
	// the translator does not yet implement still carry a best-effort
	// IROpcode value; the translator decides whether to emit IR for it
	// (spec.md §4.2's staged-implementation skip path).
	IROpcode uint16

	// Operands holds up to 4 field descriptors. Unused slots are the zero
	// OperandField (Type: OperandNone).
	Operands [4]OperandField
}

// Matches reports whether instruction satisfies this metadata's mask and
// expected pattern.
func (m *Metadata) Matches(instruction uint32) bool {
	return instruction&m.Mask == m.Expected
}

// Specificity is popcount(mask): the number of fixed bits in the encoding.
// A higher value means a more specific match, used to break ties between
// overlapping encodings within the same bucket.
func (m *Metadata) Specificity() int {
	return bits.OnesCount32(m.Mask)
}
