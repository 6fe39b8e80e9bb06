package baltranslate

import (
	"encoding/binary"
	"testing"

	"github.com/poundemu/ballistic/balengine"
	"github.com/poundemu/ballistic/balerrors"
	"github.com/poundemu/ballistic/balir"
	"github.com/poundemu/ballistic/balmemory"
)

func newTestEngine(t *testing.T) *balengine.Engine {
	t.Helper()
	e, code := balengine.New(balmemory.DefaultAllocator(), nil, nil)
	if code != balerrors.Success {
		t.Fatalf("engine init failed: %v", code)
	}
	return e
}

func wordsToBytes(words ...uint32) []byte {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// Scenario 1: MOVZ X0, #42.
func TestMOVZEmitsSingleConst(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	code := wordsToBytes(0xD2800540)
	status := Translate(e, nil, code, len(code))
	if status != balerrors.Success {
		t.Fatalf("status = %v", status)
	}
	if e.ConstantCount != 1 || e.Constants[0] != 42 {
		t.Fatalf("constants = %v, want [42]", e.Constants[:e.ConstantCount])
	}
	if e.InstructionCount != 1 {
		t.Fatalf("InstructionCount = %d, want 1", e.InstructionCount)
	}
	if e.Instructions[0].Opcode() != balir.OpConst {
		t.Error("expected a CONST instruction")
	}
	if e.SourceVariables[0].CurrentSSAIndex != 0 {
		t.Errorf("X0 SSA index = %d, want 0", e.SourceVariables[0].CurrentSSAIndex)
	}
}

// Scenario 2: MOVZ X0, #0.
func TestMOVZZeroImmediate(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	code := wordsToBytes(0xD2800000)
	Translate(e, nil, code, len(code))
	if e.Constants[0] != 0 {
		t.Errorf("constant = %d, want 0", e.Constants[0])
	}
}

// Scenario 3: MOVZ X0,#42 ; MOVZ X0,#1 — same register, redefined.
func TestMOVZTwiceSameRegister(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	code := wordsToBytes(0xD2800540, 0xD2800020)
	Translate(e, nil, code, len(code))
	if e.ConstantCount != 2 || e.Constants[0] != 42 || e.Constants[1] != 1 {
		t.Fatalf("constants = %v, want [42 1]", e.Constants[:e.ConstantCount])
	}
	if e.SourceVariables[0].CurrentSSAIndex != 1 {
		t.Errorf("X0 SSA index = %d, want 1", e.SourceVariables[0].CurrentSSAIndex)
	}
}

// Scenario 4: MOVN X0, #0 -> value becomes all-ones.
func TestMOVNInvertsImmediate(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	code := wordsToBytes(0x92800000)
	Translate(e, nil, code, len(code))
	if e.Constants[0] != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("constant = %#x, want all-ones", e.Constants[0])
	}
}

// Scenario 5: MOVZ X0,#0x1234 ; MOVK X0, #0xAAAA, LSL #0.
func TestMOVKReadModifyWrite(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	movz := uint32(0xD2800000) | (0x1234 << 5)
	movk := uint32(0xF2800000) | (0xAAAA << 5)
	code := wordsToBytes(movz, movk)
	status := Translate(e, nil, code, len(code))
	if status != balerrors.Success {
		t.Fatalf("status = %v", status)
	}

	// v0 = CONST C(0x1234)
	if e.Constants[0] != 0x1234 {
		t.Fatalf("constants[0] = %#x, want 0x1234", e.Constants[0])
	}
	// v1 = AND src1=v0 src2=C(clear-mask)
	if e.Instructions[1].Opcode() != balir.OpAnd {
		t.Fatalf("instruction 1 opcode = %v, want AND", e.Instructions[1].Opcode())
	}
	clearMaskIdx := e.Instructions[1].Source2()
	if !clearMaskIdx.IsConstant || e.Constants[clearMaskIdx.Index] != 0xFFFFFFFFFFFF0000 {
		t.Fatalf("clear mask = %#x, want 0xFFFFFFFFFFFF0000", e.Constants[clearMaskIdx.Index])
	}
	// v2 = ADD src1=v1 src2=C(0xAAAA)
	if e.Instructions[2].Opcode() != balir.OpAdd {
		t.Fatalf("instruction 2 opcode = %v, want ADD", e.Instructions[2].Opcode())
	}
	addImmIdx := e.Instructions[2].Source2()
	if !addImmIdx.IsConstant || e.Constants[addImmIdx.Index] != 0xAAAA {
		t.Fatalf("add immediate = %#x, want 0xAAAA", e.Constants[addImmIdx.Index])
	}
	if e.SourceVariables[0].CurrentSSAIndex != 2 {
		t.Errorf("X0 SSA index = %d, want 2", e.SourceVariables[0].CurrentSSAIndex)
	}
}

// Scenario 7 (overflow): feeding more MOVZ instructions than capacity
// latches INSTRUCTION_OVERFLOW and stops advancing InstructionCount.
func TestOverflowLatches(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	words := make([]uint32, balengine.InstructionCapacity+1)
	for i := range words {
		words[i] = 0xD2800000 // MOVZ X0, #0
	}
	code := wordsToBytes(words...)
	status := Translate(e, nil, code, len(code))
	if status != balerrors.InstructionOverflow {
		t.Fatalf("status = %v, want InstructionOverflow", status)
	}
	if e.InstructionCount != balengine.InstructionCapacity {
		t.Errorf("InstructionCount = %d, want %d", e.InstructionCount, balengine.InstructionCapacity)
	}
}

// XZR write is silent: MOVZ XZR, #42 must not alter any SSA map slot.
func TestMOVZToXZRIsSilent(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	movzXZR := uint32(0xD2800000) | (42 << 5) | 31 // rd = 31 = XZR
	code := wordsToBytes(movzXZR)
	Translate(e, nil, code, len(code))

	for i, sv := range e.SourceVariables {
		if sv.CurrentSSAIndex != 0xFFFFFFFF {
			t.Errorf("SourceVariables[%d] was modified by a write to XZR", i)
		}
	}
}

// SSA-map cold start: MOVK on a never-defined register materializes a
// GET_REGISTER read rather than treating the undefined sentinel as an SSA
// id (the resolved Open Question in spec.md §9).
func TestMOVKColdStartEmitsGetRegister(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	movk := uint32(0xF2800000) | (0xAAAA << 5) | 3 // MOVK X3, #0xAAAA — X3 never defined
	code := wordsToBytes(movk)
	status := Translate(e, nil, code, len(code))
	if status != balerrors.Success {
		t.Fatalf("status = %v", status)
	}
	if e.Instructions[0].Opcode() != balir.OpGetRegister {
		t.Fatalf("instruction 0 opcode = %v, want GET_REGISTER", e.Instructions[0].Opcode())
	}
	if e.Instructions[1].Opcode() != balir.OpAnd {
		t.Fatalf("instruction 1 opcode = %v, want AND", e.Instructions[1].Opcode())
	}
	if src1 := e.Instructions[1].Source1(); src1.IsConstant || src1.Index != 0 {
		t.Errorf("AND src1 = %+v, want SSA 0 (the GET_REGISTER result)", src1)
	}
}

// MOVK on XZR: the prior value is XZR's zero constant directly, not a
// CONST instruction emitted to materialize it — spec.md §4.2 step 1 says
// the interned constant 0 *is* the prior value for rd == 31. The first
// emitted instruction must therefore be AND, never CONST.
func TestMOVKOnXZRDoesNotEmitConst(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	movk := uint32(0xF2800000) | (0xAAAA << 5) | 31 // MOVK XZR, #0xAAAA
	code := wordsToBytes(movk)
	status := Translate(e, nil, code, len(code))
	if status != balerrors.Success {
		t.Fatalf("status = %v", status)
	}
	if e.Instructions[0].Opcode() != balir.OpAnd {
		t.Fatalf("instruction 0 opcode = %v, want AND", e.Instructions[0].Opcode())
	}
	if src1 := e.Instructions[0].Source1(); !src1.IsConstant || e.Constants[src1.Index] != 0 {
		t.Errorf("AND src1 = %+v, want a constant reference to 0", src1)
	}
	for i, sv := range e.SourceVariables {
		if sv.CurrentSSAIndex != 0xFFFFFFFF {
			t.Errorf("SourceVariables[%d] was modified by a write to XZR", i)
		}
	}
}

// SSA monotonicity: no instruction references an SSA source with index >=
// its own position. Unused operand fields are the zero Source (which reads
// back as SSA 0), so only the operands each opcode actually uses are checked.
func TestSSAMonotonicity(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	movz := uint32(0xD2800000) | (0x1234 << 5)
	movk := uint32(0xF2800000) | (0xAAAA << 5)
	code := wordsToBytes(movz, movk)
	Translate(e, nil, code, len(code))

	operandCount := map[balir.Opcode]int{
		balir.OpConst: 1, balir.OpGetRegister: 1, balir.OpAnd: 2, balir.OpAdd: 2,
	}
	for n := uint32(0); n < e.InstructionCount; n++ {
		w := e.Instructions[n]
		used, known := operandCount[w.Opcode()]
		if !known {
			used = 3
		}
		for _, src := range []balir.Source{w.Source1(), w.Source2(), w.Source3()}[:used] {
			if !src.IsConstant && src.Index >= n {
				t.Errorf("instruction %d references SSA source %d (>= its own index)", n, src.Index)
			}
		}
	}
}

// Reset round-trip: translating the same code after a reset produces
// identical IR and constant-pool contents.
func TestResetRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	movz := uint32(0xD2800000) | (0x1234 << 5)
	movk := uint32(0xF2800000) | (0xAAAA << 5)
	code := wordsToBytes(movz, movk)

	Translate(e, nil, code, len(code))
	firstInstrs := append([]balir.Word(nil), e.Instructions[:e.InstructionCount]...)
	firstConsts := append([]uint64(nil), e.Constants[:e.ConstantCount]...)

	e.Reset()
	Translate(e, nil, code, len(code))
	secondInstrs := e.Instructions[:e.InstructionCount]
	secondConsts := e.Constants[:e.ConstantCount]

	if len(firstInstrs) != len(secondInstrs) {
		t.Fatalf("instruction counts differ: %d vs %d", len(firstInstrs), len(secondInstrs))
	}
	for i := range firstInstrs {
		if firstInstrs[i] != secondInstrs[i] {
			t.Errorf("instruction %d differs across reset: %v vs %v", i, firstInstrs[i], secondInstrs[i])
		}
	}
	for i := range firstConsts {
		if firstConsts[i] != secondConsts[i] {
			t.Errorf("constant %d differs across reset: %v vs %v", i, firstConsts[i], secondConsts[i])
		}
	}
}

// Unknown instruction latches UnknownInstruction and stops translation.
func TestUnknownInstructionLatches(t *testing.T) {
	e := newTestEngine(t)
	defer e.Destroy()

	code := wordsToBytes(0x00000000)
	status := Translate(e, nil, code, len(code))
	if status != balerrors.UnknownInstruction {
		t.Fatalf("status = %v, want UnknownInstruction", status)
	}
}
