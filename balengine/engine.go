// Package balengine owns the translation arena: a single aligned
// allocation subdivided into the SSA source-variable map, the IR
// instruction stream, the SSA bit-width sidecar, and the constant pool.
// See balir for the packed instruction word format this engine writes.
package balengine

import (
	"unsafe"

	"github.com/poundemu/ballistic/balerrors"
	"github.com/poundemu/ballistic/balir"
	"github.com/poundemu/ballistic/ballog"
	"github.com/poundemu/ballistic/balmemory"
)

const (
	// ArenaAlignment is the default alignment of the arena allocation and of
	// every sub-region start offset within it, used when New is given no
	// Capacities override.
	ArenaAlignment = 64

	// SourceVariableCapacity is the default number of SSA-map entries
	// reserved per engine (X0..X30, XZR, plus headroom for system
	// registers).
	SourceVariableCapacity = 128

	// InstructionCapacity is the default number of 64-bit IR words a single
	// translation unit may emit.
	InstructionCapacity = 65536

	// ConstantCapacity is the default number of constant-pool slots. It
	// shares the instruction capacity's order of magnitude because MOVK
	// pessimistically interns two constants per guest instruction.
	ConstantCapacity = 65536

	// poisonByte fills newly-allocated or reset arena bytes not yet written
	// by emission.
	poisonByte = 0xFF

	// undefinedSSAIndex is the sentinel current_ssa_index value meaning "this
	// register has never been defined in the current unit."
	undefinedSSAIndex = 0xFFFFFFFF
)

// Capacities overrides the arena's sub-region sizes and alignment. A zero
// field falls back to the package default of the same name (ArenaAlignment,
// SourceVariableCapacity, InstructionCapacity, ConstantCapacity): a caller
// that only wants a bigger instruction buffer need not repeat the other
// three. Passing a nil *Capacities to New is equivalent to a zero-valued one
// — every field takes its package default.
type Capacities struct {
	InstructionCapacity    int
	ConstantCapacity       int
	SourceVariableCapacity int
	ArenaAlignment         int
}

// resolve fills zero fields with their package-default counterpart.
func (c Capacities) resolve() Capacities {
	if c.ArenaAlignment == 0 {
		c.ArenaAlignment = ArenaAlignment
	}
	if c.SourceVariableCapacity == 0 {
		c.SourceVariableCapacity = SourceVariableCapacity
	}
	if c.InstructionCapacity == 0 {
		c.InstructionCapacity = InstructionCapacity
	}
	if c.ConstantCapacity == 0 {
		c.ConstantCapacity = ConstantCapacity
	}
	return c
}

// SourceVariable is one SSA-map entry, tracking the guest register's most
// recent definition.
type SourceVariable struct {
	// CurrentSSAIndex is the index of the most recent defining IR
	// instruction, or undefinedSSAIndex if never defined in this unit.
	CurrentSSAIndex uint32

	// OriginalVariableIndex is the definition live at the start of the
	// current block. Reserved for future block-merge logic; write-only in
	// the current core.
	OriginalVariableIndex uint32
}

// Engine owns one translation arena. The first field group is touched on
// every emitted IR instruction ("hot"); the allocator bookkeeping below it
// is touched only at New/Reset/Destroy ("cold") and is kept on a separate
// cache line.
type Engine struct {
	// --- hot: touched per emitted IR instruction ---
	SourceVariables  []SourceVariable
	Instructions     []balir.Word
	SSABitWidths     []byte
	Constants        []uint64
	InstructionCount uint32
	ConstantCount    uint32
	Status           balerrors.Code

	_ [cacheLinePad]byte

	// --- cold: touched only at init/reset/destroy ---
	allocator  balmemory.Allocator
	arena      []byte
	logger     *ballog.Logger
	capacities Capacities
}

// cacheLinePad separates the hot and cold field groups onto distinct cache
// lines; 64 bytes covers every mainstream cache line size.
const cacheLinePad = 64

// alignUp rounds n up to the next multiple of alignment.
func alignUp(n, alignment uintptr) uintptr {
	return (n + alignment - 1) &^ (alignment - 1)
}

// arenaLayout computes the byte size of each sub-region and their offsets
// within the arena, each re-aligned to ArenaAlignment.
type arenaLayout struct {
	sourceVarsOff, sourceVarsSize uintptr
	instrOff, instrSize           uintptr
	widthsOff, widthsSize         uintptr
	constsOff, constsSize         uintptr
	total                         uintptr
}

func computeLayout(caps Capacities) arenaLayout {
	var l arenaLayout
	var sv SourceVariable
	var w balir.Word
	align := uintptr(caps.ArenaAlignment)

	l.sourceVarsOff = 0
	l.sourceVarsSize = uintptr(caps.SourceVariableCapacity) * unsafe.Sizeof(sv)

	l.instrOff = alignUp(l.sourceVarsOff+l.sourceVarsSize, align)
	l.instrSize = uintptr(caps.InstructionCapacity) * unsafe.Sizeof(w)

	l.widthsOff = alignUp(l.instrOff+l.instrSize, align)
	l.widthsSize = uintptr(caps.InstructionCapacity)

	l.constsOff = alignUp(l.widthsOff+l.widthsSize, align)
	l.constsSize = uintptr(caps.ConstantCapacity) * unsafe.Sizeof(uint64(0))

	l.total = alignUp(l.constsOff+l.constsSize, align)
	return l
}

// New allocates a fresh Engine backed by a single arena obtained from
// allocator, and logger for TRACE/DEBUG output during translation. Passing
// a nil logger installs ballog.Discard(). capacities overrides the arena's
// sub-region sizes and alignment; a nil capacities is equivalent to a
// zero-valued Capacities, which takes every package default. cmd/ drivers
// translate a loaded balconfig.Config's Engine section into a Capacities
// here to size the arena from a config file instead of the built-in
// defaults.
func New(allocator balmemory.Allocator, logger *ballog.Logger, capacities *Capacities) (*Engine, balerrors.Code) {
	if allocator == nil {
		return nil, balerrors.InvalidArgument
	}
	if logger == nil {
		logger = ballog.Discard()
	}
	var caps Capacities
	if capacities != nil {
		caps = *capacities
	}
	caps = caps.resolve()

	layout := computeLayout(caps)
	arena := allocator.Allocate(uintptr(caps.ArenaAlignment), layout.total)
	if arena == nil {
		return nil, balerrors.AllocationFailed
	}
	if !balmemory.IsAligned(arena, uintptr(caps.ArenaAlignment)) {
		return nil, balerrors.MemoryAlignment
	}

	e := &Engine{
		allocator:  allocator,
		arena:      arena,
		logger:     logger,
		capacities: caps,
	}
	e.rebind(layout)
	e.poisonSourceVariables()
	e.poisonConstants()
	return e, balerrors.Success
}

// rebind re-slices the hot arrays over the arena using the given layout.
func (e *Engine) rebind(layout arenaLayout) {
	e.SourceVariables = unsafe.Slice(
		(*SourceVariable)(unsafe.Pointer(&e.arena[layout.sourceVarsOff])),
		e.capacities.SourceVariableCapacity,
	)
	e.Instructions = unsafe.Slice(
		(*balir.Word)(unsafe.Pointer(&e.arena[layout.instrOff])),
		e.capacities.InstructionCapacity,
	)
	e.SSABitWidths = e.arena[layout.widthsOff : layout.widthsOff+layout.widthsSize]
	e.Constants = unsafe.Slice(
		(*uint64)(unsafe.Pointer(&e.arena[layout.constsOff])),
		e.capacities.ConstantCapacity,
	)
}

func (e *Engine) poisonSourceVariables() {
	for i := range e.SourceVariables {
		e.SourceVariables[i] = SourceVariable{
			CurrentSSAIndex:       undefinedSSAIndex,
			OriginalVariableIndex: undefinedSSAIndex,
		}
	}
	for i := range e.SSABitWidths {
		e.SSABitWidths[i] = poisonByte
	}
}

// poisonWord is an all-0xFF 64-bit word, the Constants-array equivalent of
// poisonByte.
const poisonWord = uint64(0xFFFFFFFFFFFFFFFF)

func (e *Engine) poisonConstants() {
	for i := range e.Constants {
		e.Constants[i] = poisonWord
	}
}

// Reset zeros InstructionCount and Status, re-poisons the SSA map and
// constant pool, and leaves the IR array's prior contents intact (they are
// overwritten on next emission, not read before being written). Reset does
// not release the arena.
func (e *Engine) Reset() {
	e.InstructionCount = 0
	e.ConstantCount = 0
	e.Status = balerrors.Success
	e.poisonSourceVariables()
	e.poisonConstants()
}

// Destroy frees the arena through the original allocator and nulls the
// engine's slices. It does not free the Engine struct itself: the caller
// may have stack- or heap-allocated it independently of the arena.
func (e *Engine) Destroy() {
	if e.arena == nil {
		return
	}
	e.allocator.Free(e.arena)
	e.arena = nil
	e.SourceVariables = nil
	e.Instructions = nil
	e.SSABitWidths = nil
	e.Constants = nil
}

// Fail latches code into Status if the engine is not already in a failed
// state. Once latched, Status remains non-success until Reset; callers
// should check OK() before every emit or intern.
func (e *Engine) Fail(code balerrors.Code) {
	if e.Status == balerrors.Success {
		e.Status = code
	}
}

// OK reports whether the engine's Status is still Success.
func (e *Engine) OK() bool {
	return e.Status == balerrors.Success
}

// Logger returns the engine's logger handle.
func (e *Engine) Logger() *ballog.Logger {
	return e.logger
}
