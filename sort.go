package gref

import (
	"runtime"
	"sort"

	"github.com/grailbio/base/traverse"
)

// chunkThreshold is the link/kmer-tuple count at or below which a parallel
// chunk-sort isn't worth the merge overhead and a single sort.SliceStable is
// used instead.
const chunkThreshold = 1 << 16

// sortLinksByFrom sorts links in place by ascending source gid. numThreads
// <= 0 uses runtime.NumCPU, matching the ancestor's Parallelism<=0 handling
// in cmd/bio-bam-sort/sorter.
//
// Large lists are split into contiguous chunks, each chunk sorted
// concurrently via traverse.Each (the same bounded fan-out the ancestor
// uses for per-shard BAM conversion in encoding/converter), then merged
// back pairwise -- the in-memory analogue of the ancestor's external
// sortshard merge, minus the temp files.
func sortLinksByFrom(links []linkPair, numThreads int) error {
	if len(links) <= chunkThreshold {
		sort.SliceStable(links, func(i, j int) bool { return links[i].from < links[j].from })
		return nil
	}
	chunks := splitRanges(len(links), effectiveThreads(numThreads))
	if err := traverse.Each(len(chunks), func(i int) error {
		lo, hi := chunks[i][0], chunks[i][1]
		sub := links[lo:hi]
		sort.SliceStable(sub, func(i, j int) bool { return sub[i].from < sub[j].from })
		return nil
	}); err != nil {
		return err
	}
	for len(chunks) > 1 {
		chunks = mergeAdjacent(chunks, func(lo, mid, hi int) {
			mergeLinksInPlace(links, lo, mid, hi)
		})
	}
	return nil
}

// sortKmerTuplesByKey sorts tuples in place by ascending packed kmer value,
// the same chunk-and-merge strategy as sortLinksByFrom.
func sortKmerTuplesByKey(tuples []kmerTuple, numThreads int) error {
	if len(tuples) <= chunkThreshold {
		sort.SliceStable(tuples, func(i, j int) bool { return tuples[i].kmer < tuples[j].kmer })
		return nil
	}
	chunks := splitRanges(len(tuples), effectiveThreads(numThreads))
	if err := traverse.Each(len(chunks), func(i int) error {
		lo, hi := chunks[i][0], chunks[i][1]
		sub := tuples[lo:hi]
		sort.SliceStable(sub, func(i, j int) bool { return sub[i].kmer < sub[j].kmer })
		return nil
	}); err != nil {
		return err
	}
	for len(chunks) > 1 {
		chunks = mergeAdjacent(chunks, func(lo, mid, hi int) {
			mergeKmerTuplesInPlace(tuples, lo, mid, hi)
		})
	}
	return nil
}

func effectiveThreads(numThreads int) int {
	if numThreads <= 0 {
		return runtime.NumCPU()
	}
	return numThreads
}

func splitRanges(n, parts int) [][2]int {
	if parts > n {
		parts = n
	}
	if parts < 1 {
		parts = 1
	}
	ranges := make([][2]int, 0, parts)
	base, rem := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		sz := base
		if i < rem {
			sz++
		}
		hi := lo + sz
		ranges = append(ranges, [2]int{lo, hi})
		lo = hi
	}
	return ranges
}

// mergeAdjacent merges chunks pairwise, halving the chunk count; mergeRange
// is called with (lo,mid,hi) for each adjacent pair still to combine.
func mergeAdjacent(chunks [][2]int, mergeRange func(lo, mid, hi int)) [][2]int {
	merged := make([][2]int, 0, (len(chunks)+1)/2)
	for i := 0; i < len(chunks); i += 2 {
		if i+1 >= len(chunks) {
			merged = append(merged, chunks[i])
			continue
		}
		lo, mid, hi := chunks[i][0], chunks[i][1], chunks[i+1][1]
		mergeRange(lo, mid, hi)
		merged = append(merged, [2]int{lo, hi})
	}
	return merged
}

// mergeLinksInPlace merges the sorted runs links[lo:mid] and links[mid:hi]
// into a single sorted run via a scratch buffer.
func mergeLinksInPlace(links []linkPair, lo, mid, hi int) {
	left := append([]linkPair(nil), links[lo:mid]...)
	right := append([]linkPair(nil), links[mid:hi]...)
	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		if left[i].from <= right[j].from {
			links[k] = left[i]
			i++
		} else {
			links[k] = right[j]
			j++
		}
		k++
	}
	copy(links[k:hi], left[i:])
	k += len(left) - i
	copy(links[k:hi], right[j:])
}

// mergeKmerTuplesInPlace is mergeLinksInPlace's analogue for kmerTuple.
func mergeKmerTuplesInPlace(tuples []kmerTuple, lo, mid, hi int) {
	left := append([]kmerTuple(nil), tuples[lo:mid]...)
	right := append([]kmerTuple(nil), tuples[mid:hi]...)
	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		if left[i].kmer <= right[j].kmer {
			tuples[k] = left[i]
			i++
		} else {
			tuples[k] = right[j]
			j++
		}
		k++
	}
	copy(tuples[k:hi], left[i:])
	k += len(left) - i
	copy(tuples[k:hi], right[j:])
}
