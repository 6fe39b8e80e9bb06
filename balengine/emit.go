package balengine

import (
	"github.com/poundemu/ballistic/balerrors"
	"github.com/poundemu/ballistic/balir"
)

// Intern appends value to the constant pool and returns a balir.Source
// referring to it. Interning is append-only and non-deduplicating: every
// call allocates a fresh slot, even for a value already present. A full
// pool latches InstructionOverflow and returns the zero Source; callers
// must check OK() before using the result.
func (e *Engine) Intern(value uint64) balir.Source {
	if !e.OK() {
		return balir.Source{}
	}
	if int(e.ConstantCount) >= e.capacities.ConstantCapacity {
		e.Fail(balerrors.InstructionOverflow)
		return balir.Source{}
	}
	idx := e.ConstantCount
	e.Constants[idx] = value
	e.ConstantCount++
	return balir.Const(idx)
}

// Emit packs opcode and its source operands into the next IR word, defining
// a fresh SSA id equal to the pre-emission InstructionCount. A full
// instruction buffer latches InstructionOverflow and leaves InstructionCount
// unchanged; callers must check OK() before relying on the returned index.
func (e *Engine) Emit(opcode balir.Opcode, src1, src2, src3 balir.Source) uint32 {
	if !e.OK() {
		return undefinedSSAIndex
	}
	if int(e.InstructionCount) >= e.capacities.InstructionCapacity {
		e.Fail(balerrors.InstructionOverflow)
		return undefinedSSAIndex
	}
	idx := e.InstructionCount
	e.Instructions[idx] = balir.Encode(opcode, src1, src2, src3)
	e.SSABitWidths[idx] = poisonByte
	e.InstructionCount++
	return idx
}
