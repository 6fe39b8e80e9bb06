// Package baltranslate implements the per-instruction fetch/decode/extract/
// emit loop: it consumes a guest ARM64 byte stream one 32-bit word at a
// time, decodes each via baldecoder, and dispatches to an IR-opcode handler
// that emits into a balengine.Engine. Only the CONST handler (the MOV-wide
// family) is implemented; every other decoded mnemonic advances the cursor
// without emitting IR, a staged-implementation decision, not an error.
package baltranslate

import (
	"encoding/binary"

	"github.com/poundemu/ballistic/baldecoder"
	"github.com/poundemu/ballistic/baldecodetable"
	"github.com/poundemu/ballistic/balengine"
	"github.com/poundemu/ballistic/balerrors"
	"github.com/poundemu/ballistic/balir"
	"github.com/poundemu/ballistic/balmemory"
)

// xzrIndex is the register number reserved for the zero register: reads as
// zero, writes are discarded.
const xzrIndex = 31

// undefinedSSAIndex mirrors balengine's cold-start sentinel: a register
// that has never been defined in the current unit.
const undefinedSSAIndex = 0xFFFFFFFF

// Translate consumes up to guestByteCount/4 32-bit words from guestCode,
// decoding and emitting into engine until the guest range is exhausted, the
// IR buffer fills, or engine.Status latches an error. memoryInterface is
// reserved for future fetch-via-callback use; the current core reads
// directly from guestCode. Translate returns engine.Status.
//
// Preconditions: engine is initialized and engine.Status == Success;
// guestCode's length must be a multiple of 4 (ARM64 instructions are fixed
// 4-byte words).
func Translate(engine *balengine.Engine, memoryInterface *balmemory.MemoryInterface, guestCode []byte, guestByteCount int) balerrors.Code {
	_ = memoryInterface

	if guestByteCount > len(guestCode) {
		guestByteCount = len(guestCode)
	}
	wordCount := guestByteCount / 4

	for i := 0; i < wordCount; i++ {
		if !engine.OK() {
			break
		}
		instr := binary.LittleEndian.Uint32(guestCode[i*4 : i*4+4])
		step(engine, instr)
	}
	return engine.Status
}

// step decodes and dispatches a single guest instruction word.
func step(engine *balengine.Engine, instr uint32) {
	meta, ok := baldecoder.Decode(baldecodetable.Table, instr)
	if !ok {
		engine.Fail(balerrors.UnknownInstruction)
		return
	}

	switch balir.Opcode(meta.IROpcode) {
	case balir.OpConst:
		handleConst(engine, meta, instr)
	default:
		engine.Logger().Tracef("skipping %s (ir_opcode=%d): no handler implemented", meta.Name, meta.IROpcode)
	}
}

// handleConst implements the MOV-wide family: MOVZ, MOVN, MOVK. The
// mnemonic's 4th character (index 3) selects the variant.
func handleConst(engine *balengine.Engine, meta *baldecoder.Metadata, instr uint32) {
	rd := meta.Operands[0].Extract(instr)
	imm16 := uint64(meta.Operands[1].Extract(instr))
	hw := meta.Operands[2].Extract(instr)
	shift := hw * 16

	// Operand 0's register width (32-bit Wd vs 64-bit Xd form) selects the
	// mask the immediate and its complement are confined to.
	var wordMask uint64 = 0xFFFFFFFFFFFFFFFF
	if meta.Operands[0].Type == baldecoder.OperandRegister32 {
		wordMask = 0xFFFFFFFF
	}

	value := (imm16 << shift) & wordMask

	switch meta.Name[3] {
	case 'Z':
		emitConst(engine, rd, value)
	case 'N':
		value = (^value) & wordMask
		emitConst(engine, rd, value)
	case 'K':
		movk(engine, rd, value, shift, wordMask)
	}
}

// emitConst interns value and emits CONST src1=<const>, the shared tail of
// the MOVZ and MOVN variants.
func emitConst(engine *balengine.Engine, rd uint32, value uint64) {
	c := engine.Intern(value)
	if !engine.OK() {
		return
	}
	idx := engine.Emit(balir.OpConst, c, balir.Source{}, balir.Source{})
	if !engine.OK() {
		return
	}
	updateDestination(engine, rd, idx)
}

// movk performs the read-modify-write MOVK sequence: AND the prior value of
// rd against a cleared 16-bit field, then OR (via ADD, the prior value
// having already had that field cleared) in the new immediate.
func movk(engine *balengine.Engine, rd uint32, value uint64, shift uint32, wordMask uint64) {
	prior := priorValue(engine, rd)
	if !engine.OK() {
		return
	}

	clearMask := (^(uint64(0xFFFF) << shift)) & wordMask
	clearConst := engine.Intern(clearMask)
	if !engine.OK() {
		return
	}
	andIdx := engine.Emit(balir.OpAnd, prior, clearConst, balir.Source{})
	if !engine.OK() {
		return
	}

	valueConst := engine.Intern(value)
	if !engine.OK() {
		return
	}
	addIdx := engine.Emit(balir.OpAdd, balir.SSA(andIdx), valueConst, balir.Source{})
	if !engine.OK() {
		return
	}

	updateDestination(engine, rd, addIdx)
}

// priorValue resolves the source for rd's current value. XZR reads as a
// freshly-interned zero constant directly — no CONST instruction is
// emitted, since the constant itself already is the prior value. An
// undefined register (cold start) materializes a GET_REGISTER read instead
// of exposing the sentinel index to a consumer.
func priorValue(engine *balengine.Engine, rd uint32) balir.Source {
	if rd == xzrIndex {
		return engine.Intern(0)
	}

	current := engine.SourceVariables[rd].CurrentSSAIndex
	if current == undefinedSSAIndex {
		regNum := engine.Intern(uint64(rd))
		if !engine.OK() {
			return balir.Source{}
		}
		idx := engine.Emit(balir.OpGetRegister, regNum, balir.Source{}, balir.Source{})
		if !engine.OK() {
			return balir.Source{}
		}
		return balir.SSA(idx)
	}
	return balir.SSA(current)
}

// updateDestination records definingIdx as rd's current SSA definition,
// unless rd is XZR: writes to the zero register are discarded.
func updateDestination(engine *balengine.Engine, rd uint32, definingIdx uint32) {
	if rd == xzrIndex {
		return
	}
	engine.SourceVariables[rd].CurrentSSAIndex = definingIdx
}
