package baldecoder

import "sort"

// BucketCount is the size of the top-level lookup table: instructions are
// bucketed by their top 11 bits (instruction >> 21).
const BucketCount = 2048

// bucketShift is the number of low bits discarded to compute a bucket index.
const bucketShift = 21

// topBitsMask is the set of bits a bucket index is derived from.
const topBitsMask = top11Mask << bucketShift

// top11Mask isolates the 11 meaningful bucket-index bits after shifting.
const top11Mask = uint32(0x7FF)

// Bucket names a contiguous range of a Table's candidate slice: all
// metadata records that can match instructions routed to this bucket,
// pre-sorted by descending Specificity so the first match in a linear scan
// is also the most specific one.
type Bucket struct {
	Start int
	Count int
}

// Table is the decoder's bucketed lookup structure: a flat candidate array
// plus a BucketCount-sized index into it.
type Table struct {
	Candidates []Metadata
	Buckets    [BucketCount]Bucket
}

// BuildTable groups instructions into buckets by their top 11 bits and
// sorts each bucket's candidates by descending popcount(mask), breaking
// ties by the order instructions were given in. The file tools/gendecode
// emits calls BuildTable on its flat instruction array, so a decode table
// (including the hand-curated baldecodetable sample) derives its buckets at
// package init instead of shipping hand-sorted literal bucket data.
//
// Most AArch64 encodings fix all 11 of their top bits, giving each
// instruction exactly one bucket. Some legitimately don't: MOV-wide's hw
// selector, a shifted-register's shift-type field, and several branch
// immediates all occupy bit positions inside that top-11 window. Such a
// candidate matches every instruction word regardless of what's in its free
// bit positions, so it is replicated into every bucket consistent with its
// fixed bits (see bucketsFor) — a single bucket-per-candidate assignment
// would silently miss those instructions at decode time.
func BuildTable(instructions []Metadata) *Table {
	byBucket := make([][]Metadata, BucketCount)
	for _, inst := range instructions {
		for _, b := range bucketsFor(inst) {
			byBucket[b] = append(byBucket[b], inst)
		}
	}

	t := &Table{}
	for b, candidates := range byBucket {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Specificity() > candidates[j].Specificity()
		})
		t.Buckets[b] = Bucket{Start: len(t.Candidates), Count: len(candidates)}
		t.Candidates = append(t.Candidates, candidates...)
	}
	return t
}

// bucketsFor enumerates every bucket index a candidate matches: one for
// each combination of its top-11 bits left unconstrained by mask. A fully
// fixed top 11 bits yields exactly one bucket.
func bucketsFor(inst Metadata) []int {
	fixedTop := (inst.Mask >> bucketShift) & top11Mask
	baseTop := (inst.Expected >> bucketShift) & top11Mask & fixedTop
	freeMask := (^fixedTop) & top11Mask

	var buckets []int
	for sub := freeMask; ; sub = (sub - 1) & freeMask {
		buckets = append(buckets, int(baseTop|sub))
		if sub == 0 {
			break
		}
	}
	return buckets
}
