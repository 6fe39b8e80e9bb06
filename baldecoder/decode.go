package baldecoder

// Decode classifies instruction against t and returns the most specific
// matching Metadata, or ok=false if no candidate in the instruction's
// bucket matches. Candidates within a bucket are pre-sorted by descending
// Specificity, so the first match found is the correct one.
func Decode(t *Table, instruction uint32) (*Metadata, bool) {
	b := t.Buckets[instruction&topBitsMask>>bucketShift]
	for i := 0; i < b.Count; i++ {
		cand := &t.Candidates[b.Start+i]
		if cand.Matches(instruction) {
			return cand, true
		}
	}
	return nil, false
}
