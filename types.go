// Package gref implements a k-mer index over a bidirected string graph of
// nucleotide sequences. Vertices are named segments carrying IUPAC-ambiguous
// DNA; edges connect oriented segment ends, always paired with their
// complementary dual. The index enumerates every k-long walk starting at
// every segment position, expanding ambiguity codes into concrete A/C/G/T
// combinations, and answers exact k-mer lookups in O(1).
//
// A Graph moves through three lifecycle states -- Pool, Archive, Index --
// each a strict refinement of the one before. See State for details.
package gref

// GID is an oriented vertex id: segment id * 2 + orientation bit (0 =
// forward, 1 = reverse complement). Every segment owns exactly two GIDs.
type GID uint32

// Rev returns the GID of the opposite orientation of the same segment.
func (g GID) Rev() GID { return g ^ 1 }

// Segment returns the segment id this GID refers to, discarding orientation.
func (g GID) Segment() uint32 { return uint32(g) >> 1 }

// Forward reports whether this GID refers to the forward orientation.
func (g GID) Forward() bool { return g&1 == 0 }

// segmentGID returns the forward GID for a segment id.
func segmentGID(id uint32) GID { return GID(id) << 1 }

// State identifies which of the three lifecycle stages a Graph handle is in.
// Every exported operation checks its preconditions against this tag and
// fails with an InvalidState error on mismatch, rather than relying on
// undefined behavior from reinterpreting storage that some fields don't
// apply to yet.
type State int

const (
	// Pool accepts AppendSegment/AppendLink; nothing else is defined.
	Pool State = iota
	// Archive has a compacted, sorted link table and supports k-mer
	// enumeration via NewIterator.
	Archive
	// Index additionally has a sorted, bucket-indexed k-mer table and
	// supports O(1) Match/MatchPacked.
	Index
)

func (s State) String() string {
	switch s {
	case Pool:
		return "Pool"
	case Archive:
		return "Archive"
	case Index:
		return "Index"
	default:
		return "unknown state"
	}
}

// SeqFormat selects how sequence bytes are interpreted by AppendSegment.
type SeqFormat int

const (
	// ASCIIFormat means AppendSegment's seq argument holds one IUPAC
	// character per byte.
	ASCIIFormat SeqFormat = iota
	// FourBitFormat means AppendSegment's seq argument is already packed
	// two bases per byte, high nibble first. The segment gets 2*len(seq)
	// bases; a pad nibble in the last byte is stored as a base.
	FourBitFormat
)

// CopyMode selects how AppendSegment moves its input into the Graph's
// sequence buffer. Both modes copy; the Graph never keeps a reference to
// the caller's array.
type CopyMode int

const (
	// Copy copies sequence bytes into the Graph's own buffer.
	Copy CopyMode = iota
	// NoCopy is accepted only when SeqFormat is FourBitFormat. The bytes are
	// still copied into the Graph's own buffer (as one bulk copy when the
	// segment starts on a byte boundary); the caller's array is not adopted.
	NoCopy
)

// IndexMode selects the lookup strategy Build constructs.
type IndexMode int

const (
	// HashIndexMode builds the sorted prefix-bucket table described in the
	// package overview, giving O(1) Match.
	HashIndexMode IndexMode = iota
	// IterOnlyIndexMode skips the bucket table; Build only sorts and stages
	// the tuple table, and Match/MatchPacked are unavailable -- only
	// iteration via NewIterator is.
	IterOnlyIndexMode
)
