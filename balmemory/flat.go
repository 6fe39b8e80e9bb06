package balmemory

import "github.com/poundemu/ballistic/balerrors"

// Translator maps a guest virtual address to a host-readable byte slice. It
// returns the remaining readable extent starting at that address, or ok=false
// if the address is unmapped or invalid. This is the Go shape of spec.md
// §6's guest-memory translation contract.
type Translator func(guestAddress uint64) (host []byte, ok bool)

// MemoryInterface bundles a Translator with whatever backing state it
// closes over. The translator engine (baltranslate) accepts one as a
// reserved-for-future-use fetch path; the current core reads directly from
// a guest byte slice (spec.md §4.2).
type MemoryInterface struct {
	Translate Translator
}

// flatTranslator closes over a contiguous host buffer and implements guest
// address a -> base+a for 0 < a < len(buffer).
type flatTranslator struct {
	buffer []byte
}

func (f *flatTranslator) translate(guestAddress uint64) ([]byte, bool) {
	if guestAddress == 0 || guestAddress >= uint64(len(f.buffer)) {
		return nil, false
	}
	return f.buffer[guestAddress:], true
}

// NewFlatInterface returns a MemoryInterface backed by a single contiguous
// host buffer: guest address a resolves to buffer[a:] whenever 0 < a <
// len(buffer). The caller retains ownership of buffer; NewFlatInterface
// neither copies it nor frees it.
//
// buffer must be 16-byte aligned (ABI-ready, per spec.md §4.4). Passing a nil
// or empty buffer, or a misaligned one, is an error.
func NewFlatInterface(buffer []byte) (*MemoryInterface, balerrors.Code) {
	if len(buffer) == 0 {
		return nil, balerrors.InvalidArgument
	}
	if !IsAligned(buffer, 16) {
		return nil, balerrors.MemoryAlignment
	}
	ft := &flatTranslator{buffer: buffer}
	return &MemoryInterface{Translate: ft.translate}, balerrors.Success
}
