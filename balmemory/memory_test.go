package balmemory

import (
	"testing"

	"github.com/poundemu/ballistic/balerrors"
)

func alignedBuffer(n int) []byte {
	raw := DefaultAllocator().Allocate(16, uintptr(n))
	return raw
}

func TestDefaultAllocatorAlignment(t *testing.T) {
	buf := DefaultAllocator().Allocate(64, 256)
	if buf == nil {
		t.Fatal("allocation failed")
	}
	if !IsAligned(buf, 64) {
		t.Error("buffer not 64-byte aligned")
	}
	if len(buf) != 256 {
		t.Errorf("len = %d, want 256", len(buf))
	}
}

func TestDefaultAllocatorZeroSize(t *testing.T) {
	if buf := DefaultAllocator().Allocate(64, 0); buf != nil {
		t.Errorf("expected nil for zero-size allocation, got %v", buf)
	}
}

func TestNewFlatInterfaceRejectsEmpty(t *testing.T) {
	if _, code := NewFlatInterface(nil); code != balerrors.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", code)
	}
}

func TestNewFlatInterfaceRejectsMisaligned(t *testing.T) {
	buf := alignedBuffer(32)
	misaligned := buf[1:]
	if _, code := NewFlatInterface(misaligned); code != balerrors.MemoryAlignment {
		t.Errorf("code = %v, want MemoryAlignment", code)
	}
}

func TestFlatInterfaceTranslate(t *testing.T) {
	buf := alignedBuffer(32)
	for i := range buf {
		buf[i] = byte(i)
	}
	mi, code := NewFlatInterface(buf)
	if code != balerrors.Success {
		t.Fatalf("unexpected error: %v", code)
	}

	if _, ok := mi.Translate(0); ok {
		t.Error("address 0 should not translate")
	}
	host, ok := mi.Translate(4)
	if !ok {
		t.Fatal("expected address 4 to translate")
	}
	if len(host) != 28 || host[0] != 4 {
		t.Errorf("unexpected host slice: len=%d first=%d", len(host), host[0])
	}
	if _, ok := mi.Translate(32); ok {
		t.Error("address == len(buffer) should not translate")
	}
	if _, ok := mi.Translate(1000); ok {
		t.Error("out-of-range address should not translate")
	}
}
