package gref

import (
	"github.com/grailbio/base/traverse"
)

// Build transitions an Archive to an Index: walk every segment to produce
// (kmer,gid,pos) tuples, sort them by kmer value, and compact them into a
// prefix bucket array plus a position-only table.
//
// Unlike the public Iterator (which must stay single-threaded per spec.md
// §5), Build's internal walk is sharded one goroutine per segment via
// traverse.Each -- the same bounded fan-out encoding/converter uses for
// per-shard BAM conversion. This is safe because the termination-order
// guarantee (spec.md §4.3) is scoped to "for a given segment": each
// goroutine owns one segment's full expansion and emits its tuples in
// order, and per-segment results are concatenated back in segment-id
// order before the final sequential sort.
func (g *Graph) Build() error {
	if err := g.requireState("Build", Archive); err != nil {
		return err
	}
	sentinelID := g.sentinelID()
	perSegment := make([][]kmerTuple, sentinelID)
	err := traverse.Each(int(sentinelID), func(i int) error {
		t, err := g.walkSegment(uint32(i))
		if err != nil {
			return err
		}
		perSegment[i] = t
		return nil
	})
	if err != nil {
		g.Clean()
		return err
	}
	var tuples []kmerTuple
	for _, t := range perSegment {
		tuples = append(tuples, t...)
	}

	if err := sortKmerTuplesByKey(tuples, g.opts.NumThreads); err != nil {
		g.Clean()
		return sortFailure(err)
	}

	table := make([]kmerPosition, len(tuples))
	for i, t := range tuples {
		table[i] = kmerPosition{gid: t.gid, pos: t.pos}
	}
	g.kmerTable = table

	if g.opts.IndexMode == HashIndexMode {
		numBuckets := uint64(1) << uint(2*g.opts.K) // 4^k
		bucket := make([]uint64, numBuckets+1)
		var ti int
		for v := uint64(0); v < numBuckets; v++ {
			bucket[v] = uint64(ti)
			for ti < len(tuples) && uint64(tuples[ti].kmer) == v {
				ti++
			}
		}
		bucket[numBuckets] = uint64(len(tuples))
		g.kmerBucket = bucket
	}

	g.state = Index
	return nil
}

// Match encodes the first k ASCII bases of seq via the 2-bit IUPAC table
// (N, and any byte outside A/C/G/T, maps to A -- behaviour preservation,
// not validation, per the package overview) and looks up the resulting
// word.
func (g *Graph) Match(seq []byte) ([]kmerPosition, error) {
	if err := g.requireState("Match", Index); err != nil {
		return nil, err
	}
	if len(seq) < g.opts.K {
		return nil, badParam("Match: seq shorter than k", len(seq), g.opts.K)
	}
	return g.MatchPacked(packTwoBitKmer(seq, g.opts.K))
}

// MatchPacked looks up an already 2-bit-packed k-mer directly, skipping
// the ASCII encoding step.
func (g *Graph) MatchPacked(word Kmer) ([]kmerPosition, error) {
	if err := g.requireState("MatchPacked", Index); err != nil {
		return nil, err
	}
	if g.opts.IndexMode != HashIndexMode {
		return nil, badParam("MatchPacked requires HashIndexMode, graph was built with IterOnlyIndexMode")
	}
	v := uint64(word) & kmerMask(g.opts.K)
	return g.kmerTable[g.kmerBucket[v]:g.kmerBucket[v+1]], nil
}

// Disable releases the bucket and position arrays and flips back to
// Archive, retaining the link table.
func (g *Graph) Disable() error {
	if err := g.requireState("Disable", Index); err != nil {
		return err
	}
	g.kmerBucket = nil
	g.kmerTable = nil
	g.state = Archive
	return nil
}
