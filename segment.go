package gref

// Section describes one named segment: a vertex of the bidirected graph, in
// both its forward and reverse-complement orientation. Immutable once Freeze
// has completed.
type Section struct {
	// ID is allocated densely in order of first mention, starting at 0.
	ID uint32
	// Name is the user-supplied segment name.
	Name []byte
	// Base is the offset into the shared sequence buffer where this
	// segment's bases begin.
	Base int
	// Len is the segment's length in bases (<= maxSegmentLen).
	Len int

	// fwLinkBase and rvLinkBase delimit this segment's forward-edge slice
	// in the compacted link table: [fwLinkBase, rvLinkBase) is the forward
	// vertex's outgoing edges, [rvLinkBase, nextFwLinkBase) is the reverse
	// vertex's. Undefined until Freeze.
	fwLinkBase int
	rvLinkBase int

	// hasSeq is false for a segment that was only mentioned by AppendLink
	// and has not yet had AppendSegment fill in its sequence.
	hasSeq bool

	// sentinel marks the synthetic tail segment Freeze appends to
	// terminate the link_base and kmer_bucket arrays.
	sentinel bool
}
