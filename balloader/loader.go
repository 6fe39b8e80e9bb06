// Package balloader reads a guest ARM64 binary off disk into a host buffer
// suitable for balmemory.NewFlatInterface: 16-byte aligned and padded up to
// a multiple of 4 bytes (the instruction word size).
package balloader

import (
	"fmt"
	"os"

	"github.com/poundemu/ballistic/balmemory"
)

// LoadFile reads path into a freshly allocated, 16-byte aligned buffer. The
// buffer is padded with zero bytes up to the next multiple of 4 so that a
// translator reading whole 32-bit words never runs past the allocation.
func LoadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- caller-supplied guest binary path
	if err != nil {
		return nil, fmt.Errorf("failed to read guest binary %q: %w", path, err)
	}
	return LoadBytes(raw)
}

// LoadBytes copies raw into a freshly allocated, 16-byte aligned,
// word-padded buffer. The caller may discard raw afterward.
func LoadBytes(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("guest binary is empty")
	}

	padded := (len(raw) + 3) &^ 3
	buf := balmemory.DefaultAllocator().Allocate(16, uintptr(padded))
	if buf == nil {
		return nil, fmt.Errorf("failed to allocate %d-byte guest buffer", padded)
	}
	copy(buf, raw)
	return buf, nil
}
