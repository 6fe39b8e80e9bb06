package baldecoder

import "testing"

func movzLike() Metadata {
	return Metadata{
		Name:     "MOVZ",
		Mask:     0xFF800000,
		Expected: 0x52800000,
		IROpcode: 2,
	}
}

func movnLike() Metadata {
	return Metadata{
		Name:     "MOVN",
		Mask:     0xFF800000,
		Expected: 0x12800000,
		IROpcode: 2,
	}
}

// A narrower encoding nested inside a wider one, same bucket: higher
// Specificity (more fixed bits) must win the tie-break.
func movzHw0() Metadata {
	m := movzLike()
	m.Name = "MOVZ.hw0"
	m.Mask |= 0x00600000
	m.Expected |= 0x00000000
	return m
}

func TestBuildTableRoutesByTopBits(t *testing.T) {
	tbl := BuildTable([]Metadata{movzLike(), movnLike()})
	movzBucket := movzLike().Expected >> bucketShift
	movnBucket := movnLike().Expected >> bucketShift
	if movzBucket == movnBucket {
		t.Fatal("test fixture expects distinct buckets")
	}
	if tbl.Buckets[movzBucket].Count != 1 {
		t.Errorf("MOVZ bucket count = %d, want 1", tbl.Buckets[movzBucket].Count)
	}
	if tbl.Buckets[movnBucket].Count != 1 {
		t.Errorf("MOVN bucket count = %d, want 1", tbl.Buckets[movnBucket].Count)
	}
}

func TestDecodeSoundness(t *testing.T) {
	tbl := BuildTable([]Metadata{movzLike(), movnLike()})
	instr := uint32(0x52800040) // MOVZ W0, #2
	got, ok := Decode(tbl, instr)
	if !ok {
		t.Fatal("expected a match")
	}
	if !got.Matches(instr) {
		t.Error("decoder returned a non-matching candidate")
	}
	if got.Name != "MOVZ" {
		t.Errorf("Name = %q, want MOVZ", got.Name)
	}
}

func TestDecodeSpecificityTieBreak(t *testing.T) {
	general := movzLike()
	narrow := movzHw0()
	tbl := BuildTable([]Metadata{general, narrow})

	instr := uint32(0x52800040) // hw field == 0, matches both
	got, ok := Decode(tbl, instr)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Specificity() != narrow.Specificity() {
		t.Errorf("expected the more specific candidate to win, got %q", got.Name)
	}
}

func TestDecodeRejectsUnknownInstruction(t *testing.T) {
	tbl := BuildTable([]Metadata{movzLike(), movnLike()})
	if _, ok := Decode(tbl, 0xFFFFFFFF); ok {
		t.Error("expected no match for an unrecognized encoding")
	}
}

func TestDecodeEmptyTableIsTotal(t *testing.T) {
	tbl := BuildTable(nil)
	for _, instr := range []uint32{0, 1, 0x52800000, 0xFFFFFFFF} {
		if _, ok := Decode(tbl, instr); ok {
			t.Errorf("empty table matched instruction 0x%08X", instr)
		}
	}
}

func TestBuildTableSortsDescendingSpecificity(t *testing.T) {
	general := movzLike()
	narrow := movzHw0()
	tbl := BuildTable([]Metadata{general, narrow})
	b := tbl.Buckets[general.Expected>>bucketShift]
	if b.Count != 2 {
		t.Fatalf("bucket count = %d, want 2", b.Count)
	}
	first := tbl.Candidates[b.Start]
	second := tbl.Candidates[b.Start+1]
	if first.Specificity() < second.Specificity() {
		t.Error("candidates not sorted by descending specificity")
	}
}
