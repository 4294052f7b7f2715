package gref

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/gref/seqcode"
)

// Graph is the single handle type for all three lifecycle states (Pool,
// Archive, Index). Rather than reinterpreting one C struct's fields across
// states, every field here is always valid for its state and the methods
// below check State explicitly and reject mismatches with an InvalidState
// error -- the re-architecture the package overview calls for in place of
// unsafe pointer reinterpretation.
type Graph struct {
	opts  Opts
	state State

	names *nameMap
	seq   *seqBuffer
	sec   []Section

	maxID    uint32
	sawAnyID bool

	// links holds (from,to) pairs in Pool state; Freeze replaces it with
	// compactLinks, the (to)-only table used in Archive and Index state
	// (see link.go for the compaction).
	links        []linkPair
	compactLinks []GID

	// Index-only state.
	kmerBucket []uint64
	kmerTable  []kmerPosition
}

// kmerPosition is the (gid,pos) pair retained by an Index after Build
// drops the kmer key column. The type itself is unexported -- callers never
// need to name it, only to range over what Match/MatchPacked return and call
// its exported accessors.
type kmerPosition struct {
	gid GID
	pos int32
}

// Segment returns the id of the segment this hit occurred in.
func (p kmerPosition) Segment() uint32 { return p.gid.Segment() }

// OrientationString returns "+" for a forward-strand hit, "-" for a
// reverse-complement hit.
func (p kmerPosition) OrientationString() string {
	if p.gid.Forward() {
		return "+"
	}
	return "-"
}

// Pos returns the 0-based offset of the hit's first base within its
// segment, in the hit's own orientation.
func (p kmerPosition) Pos() int { return int(p.pos) }

// New allocates an empty Pool with the given configuration.
func New(opts Opts) (*Graph, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	g := &Graph{
		opts:  opts,
		state: Pool,
		names: newNameMap(opts.HashBucketHint),
		seq:   newSeqBuffer(),
	}
	return g, nil
}

// State returns the graph's current lifecycle state.
func (g *Graph) State() State { return g.state }

func (g *Graph) requireState(op string, want State) error {
	if g.state != want {
		return invalidState(op, g.state, want)
	}
	return nil
}

// ensureSection makes g.sec[id] exist for the given segment id, growing
// g.sec (with placeholder Sections) if this is a name seen for the first
// time via AppendLink before any AppendSegment call. It records name on a
// record that has none yet and updates the maximum id seen.
func (g *Graph) ensureSection(id uint32, name []byte) {
	for uint32(len(g.sec)) <= id {
		g.sec = append(g.sec, Section{ID: uint32(len(g.sec))})
	}
	if g.sec[id].Name == nil {
		g.sec[id].Name = name
		g.sec[id].ID = id
	}
	if !g.sawAnyID || id > g.maxID {
		g.maxID = id
		g.sawAnyID = true
	}
}

// AppendSegment resolves or allocates an id for name and records its
// sequence. A name may already have been introduced by AppendLink, in which
// case this fills in the existing record's base/len rather than allocating
// a new id. Order of AppendSegment and AppendLink calls is unconstrained.
func (g *Graph) AppendSegment(name []byte, seq []byte) (uint32, error) {
	if err := g.requireState("AppendSegment", Pool); err != nil {
		return 0, err
	}
	id := g.names.internOrLookup(name)
	g.ensureSection(id, name)

	var base int
	n := len(seq)
	switch g.opts.SeqFormat {
	case ASCIIFormat:
		base = g.seq.appendASCII(seq)
	case FourBitFormat:
		n = 2 * len(seq) // packed two bases per byte
		base = g.seq.appendFourBit(seq, n, g.opts.CopyMode)
	default:
		return 0, badParam("unknown SeqFormat", g.opts.SeqFormat)
	}
	if n > maxSegmentLen {
		n = maxSegmentLen
	}
	g.sec[id].Base = base
	g.sec[id].Len = n
	g.sec[id].hasSeq = true
	return id, nil
}

// AppendLink records a directed edge from (src,srcForward) to
// (dst,dstForward), along with its canonical dual. Endpoints are resolved or
// allocated by name, exactly as AppendSegment does.
func (g *Graph) AppendLink(src []byte, srcForward bool, dst []byte, dstForward bool) error {
	if err := g.requireState("AppendLink", Pool); err != nil {
		return err
	}
	srcID := g.names.internOrLookup(src)
	g.ensureSection(srcID, src)
	dstID := g.names.internOrLookup(dst)
	g.ensureSection(dstID, dst)

	from := gidFor(srcID, srcForward)
	to := gidFor(dstID, dstForward)
	g.links = append(g.links, linkPair{from: from, to: to})
	g.links = append(g.links, linkPair{from: to.Rev(), to: from.Rev()})
	return nil
}

// gidFor builds the oriented vertex id for a segment id and orientation.
func gidFor(id uint32, forward bool) GID {
	g := segmentGID(id)
	if !forward {
		g = g.Rev()
	}
	return g
}

// AppendSNP is declared by the public facade but not implemented -- the
// package overview lists it as "declared but not required in scope".
func (g *Graph) AppendSNP(segmentID uint32, pos int, alt byte) error {
	return notSupported("AppendSNP is not supported")
}

// SplitSection is declared by the public facade but not implemented, same
// as AppendSNP.
func (g *Graph) SplitSection(segmentID uint32, pos int) error {
	return notSupported("SplitSection is not supported")
}

// Clean releases all storage held by g, regardless of lifecycle state.
func (g *Graph) Clean() {
	log.Debug.Printf("gref: releasing graph (state=%v, sections=%d)", g.state, len(g.sec))
	g.names = nil
	g.seq = nil
	g.sec = nil
	g.links = nil
	g.compactLinks = nil
	g.kmerBucket = nil
	g.kmerTable = nil
	g.state = Pool
}

// GetSectionCount returns the number of user-visible segments (excluding the
// tail sentinel Freeze adds).
func (g *Graph) GetSectionCount() int {
	n := len(g.sec)
	if n > 0 && g.sec[n-1].sentinel {
		n--
	}
	return n
}

// GetSection returns a copy of the section record for id.
func (g *Graph) GetSection(id uint32) (Section, error) {
	if int(id) >= len(g.sec) {
		return Section{}, badParam("no such section", id)
	}
	return g.sec[id], nil
}

// GetName returns the name bytes registered for id.
func (g *Graph) GetName(id uint32) ([]byte, error) {
	sec, err := g.GetSection(id)
	if err != nil {
		return nil, err
	}
	return sec.Name, nil
}

// GetTotalLen returns the total number of bases appended across every
// segment.
func (g *Graph) GetTotalLen() int {
	return g.seq.totalLen()
}

// EachUserLink visits every link as originally passed to AppendLink, one
// call per link, skipping the synthesized duals AppendLink also recorded.
// Valid only in Pool state (links are compacted away by Freeze).
func (g *Graph) EachUserLink(fn func(srcID uint32, srcForward bool, dstID uint32, dstForward bool) error) error {
	if err := g.requireState("EachUserLink", Pool); err != nil {
		return err
	}
	for i := 0; i+1 < len(g.links); i += 2 {
		from := g.links[i].from
		to := g.links[i].to
		if err := fn(from.Segment(), from.Forward(), to.Segment(), to.Forward()); err != nil {
			return err
		}
	}
	return nil
}

// ReadASCII renders segment id's sequence (forward orientation, in g's own
// coordinate space) as one IUPAC character per byte, for diagnostics,
// serialization (encoding/gfa's WriteGFA) and tests.
func (g *Graph) ReadASCII(id uint32) ([]byte, error) {
	sec, err := g.GetSection(id)
	if err != nil {
		return nil, err
	}
	out := make([]byte, sec.Len)
	for i := range out {
		out[i] = seqcode.FourBitToASCII(g.seq.get(sec.Base + i))
	}
	return out, nil
}
