// Hand-curated sample decode table, in the shape tools/gendecode emits.
//
// This snapshot is a representative sample, not the full ~3,600-entry
// AArch64 table: every IR opcode in balir's closed enumeration has at least
// one covering mnemonic here, plus NOP, which decodes to no IR opcode and
// exercises the translator's staged-implementation skip without an IR
// handler. A production build regenerates
// this file from a complete ISA XML; the shape does not change.
package baldecodetable

import (
	"github.com/poundemu/ballistic/baldecoder"
	"github.com/poundemu/ballistic/balir"
)

func reg(pos, width uint8, is64 bool) baldecoder.OperandField {
	t := baldecoder.OperandRegister32
	if is64 {
		t = baldecoder.OperandRegister64
	}
	return baldecoder.OperandField{Type: t, BitPosition: pos, BitWidth: width}
}

func imm(pos, width uint8) baldecoder.OperandField {
	return baldecoder.OperandField{Type: baldecoder.OperandImmediate, BitPosition: pos, BitWidth: width}
}

func cond(pos, width uint8) baldecoder.OperandField {
	return baldecoder.OperandField{Type: baldecoder.OperandCondition, BitPosition: pos, BitWidth: width}
}

// instructions is the hand-curated source array BuildTable buckets and
// sorts at init(). Mask/Expected values below are the real AArch64
// encodings for each mnemonic. Several (the MOV-wide family's hw selector,
// the shifted-register ALU ops' shift-type field, branch immediates) leave
// some of the top 11 bucketing bits unconstrained by design — those are
// operand bits, not opcode bits — and BuildTable replicates them across
// every bucket those free bits are consistent with.
var instructions = []baldecoder.Metadata{
	// CONST: the MOV-wide family, 64-bit (sf=1) form. opc field at bits
	// 30..29 selects MOVN(00)/MOVZ(10)/MOVK(11); hw at 22..21; imm16 at
	// 20..5; rd at 4..0.
	{
		Name:     "MOVZ",
		Mask:     0xFF800000,
		Expected: 0xD2800000,
		IROpcode: uint16(balir.OpConst),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), imm(5, 16), imm(21, 2), {}},
	},
	{
		Name:     "MOVN",
		Mask:     0xFF800000,
		Expected: 0x92800000,
		IROpcode: uint16(balir.OpConst),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), imm(5, 16), imm(21, 2), {}},
	},
	{
		Name:     "MOVK",
		Mask:     0xFF800000,
		Expected: 0xF2800000,
		IROpcode: uint16(balir.OpConst),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), imm(5, 16), imm(21, 2), {}},
	},

	// GET_REGISTER has no ARM64 encoding of its own; the translator
	// synthesizes it internally for the SSA cold-start path (spec.md §9). It
	// is listed here only so the IR opcode enumeration has a decode-table
	// entry to cross-reference in tests; it never matches a real word.
	{
		Name:     "GET_REGISTER",
		Mask:     0xFFFFFFFF,
		Expected: 0xFFFFFFFF,
		IROpcode: uint16(balir.OpGetRegister),
	},

	// MOV (register), 64-bit: an alias encoding of ORR (shifted register)
	// with Rn == 31 (ORR Xd, XZR, Xm).
	{
		Name:     "MOV",
		Mask:     0xFFE0FFE0,
		Expected: 0xAA0003E0,
		IROpcode: uint16(balir.OpMov),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(16, 5, true), {}, {}},
	},

	// ADD (shifted register), 64-bit.
	{
		Name:     "ADD",
		Mask:     0xFF200000,
		Expected: 0x8B000000,
		IROpcode: uint16(balir.OpAdd),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// SUB (shifted register), 64-bit.
	{
		Name:     "SUB",
		Mask:     0xFF200000,
		Expected: 0xCB000000,
		IROpcode: uint16(balir.OpSub),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// MUL, 64-bit: alias of MADD with Ra == XZR.
	{
		Name:     "MUL",
		Mask:     0xFFE0FC00,
		Expected: 0x9B007C00,
		IROpcode: uint16(balir.OpMul),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// UDIV, 64-bit.
	{
		Name:     "DIV",
		Mask:     0xFFE0FC00,
		Expected: 0x9AC00800,
		IROpcode: uint16(balir.OpDiv),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// AND (shifted register), 64-bit.
	{
		Name:     "AND",
		Mask:     0xFF200000,
		Expected: 0x8A000000,
		IROpcode: uint16(balir.OpAnd),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// EOR (shifted register), 64-bit.
	{
		Name:     "XOR",
		Mask:     0xFF200000,
		Expected: 0xCA000000,
		IROpcode: uint16(balir.OpXor),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// ORN (shifted register), 64-bit: Rd = Rn | ~Rm.
	{
		Name:     "OR_NOT",
		Mask:     0xFF200000,
		Expected: 0xAA200000,
		IROpcode: uint16(balir.OpOrNot),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// LSL (register), 64-bit: alias of LSLV.
	{
		Name:     "SHIFT",
		Mask:     0xFFE0FC00,
		Expected: 0x9AC02000,
		IROpcode: uint16(balir.OpShift),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), reg(16, 5, true), {}},
	},

	// LDR (immediate, unsigned offset), 64-bit.
	{
		Name:     "LOAD",
		Mask:     0xFFC00000,
		Expected: 0xF9400000,
		IROpcode: uint16(balir.OpLoad),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), imm(10, 12), {}},
	},

	// STR (immediate, unsigned offset), 64-bit.
	{
		Name:     "STORE",
		Mask:     0xFFC00000,
		Expected: 0xF9000000,
		IROpcode: uint16(balir.OpStore),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), reg(5, 5, true), imm(10, 12), {}},
	},

	// B (unconditional branch, immediate).
	{
		Name:     "JUMP",
		Mask:     0xFC000000,
		Expected: 0x14000000,
		IROpcode: uint16(balir.OpJump),
		Operands: [4]baldecoder.OperandField{imm(0, 26), {}, {}, {}},
	},

	// BL (branch with link, immediate).
	{
		Name:     "CALL",
		Mask:     0xFC000000,
		Expected: 0x94000000,
		IROpcode: uint16(balir.OpCall),
		Operands: [4]baldecoder.OperandField{imm(0, 26), {}, {}, {}},
	},

	// RET.
	{
		Name:     "RETURN",
		Mask:     0xFFFFFC1F,
		Expected: 0xD65F0000,
		IROpcode: uint16(balir.OpReturn),
		Operands: [4]baldecoder.OperandField{reg(5, 5, true), {}, {}, {}},
	},

	// CBZ, 64-bit.
	{
		Name:     "BRANCH_ZERO",
		Mask:     0xFF000000,
		Expected: 0xB4000000,
		IROpcode: uint16(balir.OpBranchZero),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), imm(5, 19), {}, {}},
	},

	// CBNZ, 64-bit.
	{
		Name:     "BRANCH_NOT_ZERO",
		Mask:     0xFF000000,
		Expected: 0xB5000000,
		IROpcode: uint16(balir.OpBranchNotZero),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), imm(5, 19), {}, {}},
	},

	// TBZ, bit position encoded across b5 and b40.
	{
		Name:     "TEST_BIT_ZERO",
		Mask:     0x7F000000,
		Expected: 0x36000000,
		IROpcode: uint16(balir.OpTestBitZero),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), imm(19, 5), imm(5, 14), {}},
	},

	// CMP (shifted register), 64-bit: alias of SUBS with Rd == XZR.
	{
		Name:     "CMP",
		Mask:     0xFFE0001F,
		Expected: 0xEB00001F,
		IROpcode: uint16(balir.OpCmp),
		Operands: [4]baldecoder.OperandField{reg(5, 5, true), reg(16, 5, true), {}, {}},
	},

	// CSET, 64-bit: alias of CSINC with Rn == Rm == XZR (bits 20-16 and
	// 9-5), op2 == 01 (bits 11-10), cond at bits 15-12, Rd at bits 4-0.
	{
		Name:     "CMP_COND",
		Mask:     0xFFFF0FE0,
		Expected: 0x9A9F07E0,
		IROpcode: uint16(balir.OpCmpCond),
		Operands: [4]baldecoder.OperandField{reg(0, 5, true), cond(12, 4), {}, {}},
	},

	// SVC, the supervisor call used to trap into the host.
	{
		Name:     "TRAP",
		Mask:     0xFFE0001F,
		Expected: 0xD4000001,
		IROpcode: uint16(balir.OpTrap),
		Operands: [4]baldecoder.OperandField{imm(5, 16), {}, {}, {}},
	},

	// NOP: decodes, but has no IR opcode of its own — exercises the
	// translator's TRACE-and-skip path (spec.md §4.2 step 3). noIROpcode is
	// a sentinel outside balir's closed enumeration; the translator only
	// special-cases OpConst, so any other value takes the skip path.
	{
		Name:     "NOP",
		Mask:     0xFFFFFFFF,
		Expected: 0xD503201F,
		IROpcode: noIROpcode,
	},

	// UDF: the architecturally-reserved permanently-undefined encoding.
	// Deliberately absent from this table, so the decoder rejects it as
	// "undefined" rather than matching it to a handler.
}

// noIROpcode marks a decoded mnemonic that maps to no IR opcode yet.
const noIROpcode = 0xFFFF

// Table is the package-level decode table, built once at init() from the
// instructions slice above. All consumers (baltranslate, the CLI drivers,
// tests) share this single built table.
var Table = baldecoder.BuildTable(instructions)
