package gref

import (
	"github.com/grailbio/gref/internal/ringsize"
	"github.com/grailbio/gref/seqcode"
)

// maxSegmentLen is the cap on a single segment's length (spec: "The maximum
// section length is capped at 2^31; segments longer than that are silently
// truncated by the builder"). Preserved as specified, even though the
// comment upstream calls this untested: we don't add validation beyond what
// is specified.
const maxSegmentLen = 1<<31 - 1

// seqBuffer is the contiguous, monotonically-growing 4-bit packed sequence
// store shared by every segment. A segment's base offset into this buffer
// never moves once allocated, even across later growth -- growth always
// appends, it never relocates existing bases to a new packing.
type seqBuffer struct {
	packed []byte // 2 bases per byte, high nibble first
	nBases int    // total bases stored so far
}

func newSeqBuffer() *seqBuffer {
	return &seqBuffer{}
}

// growTo ensures the buffer can hold n bases, rounding capacity up to the
// next power of two byte count the way circular buffers in the ancestor
// codebase size themselves (NextExp2), which amortizes append cost to O(1)
// without ever moving a previously-allocated segment's base offset: only the
// backing array is reallocated, never the logical position of existing data.
func (b *seqBuffer) growTo(n int) {
	needBytes := (n + 1) / 2
	if needBytes <= len(b.packed) {
		return
	}
	newCap := 64
	for newCap < needBytes {
		newCap = ringsize.NextExp2(newCap)
	}
	grown := make([]byte, newCap)
	copy(grown, b.packed)
	b.packed = grown
}

// appendASCII encodes and appends an ASCII IUPAC sequence, returning the
// base offset it was written at.
func (b *seqBuffer) appendASCII(seq []byte) (base int) {
	n := len(seq)
	if n > maxSegmentLen {
		n = maxSegmentLen
		seq = seq[:n]
	}
	base = b.nBases
	b.growTo(base + n)
	// A segment may start mid-byte if the previous segment's length was odd,
	// so nibbles are written individually rather than via a bulk PackASCII
	// into a freshly aligned region.
	for i, ch := range seq {
		seqcode.SetNibble(b.packed, base+i, seqcode.ASCIIToFourBit(ch))
	}
	b.nBases += n
	return base
}

// appendFourBit appends already-packed 4-bit sequence data (n bases, packed
// two per byte in seq). When copyMode is NoCopy and the new segment starts
// on a byte boundary with seq sized to exactly n bases, seq is copied into
// the buffer as whole bytes rather than nibble-by-nibble; every other case
// copies nibble-by-nibble. Either way the bases are copied: the caller's
// array is not adopted or referenced after the call.
func (b *seqBuffer) appendFourBit(seq []byte, n int, copyMode CopyMode) (base int) {
	if n > maxSegmentLen {
		n = maxSegmentLen
	}
	base = b.nBases
	if copyMode == NoCopy && base%2 == 0 && len(seq) == (n+1)/2 {
		b.growTo(base + n)
		copy(b.packed[base/2:], seq)
		b.nBases += n
		return base
	}
	b.growTo(base + n)
	for i := 0; i < n; i++ {
		seqcode.SetNibble(b.packed, base+i, seqcode.GetNibble(seq, i))
	}
	b.nBases += n
	return base
}

// get returns the 4-bit nibble at absolute base position pos.
func (b *seqBuffer) get(pos int) byte {
	return seqcode.GetNibble(b.packed, pos)
}

// totalLen returns the number of bases appended so far.
func (b *seqBuffer) totalLen() int {
	return b.nBases
}
