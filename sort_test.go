package gref

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortLinksByFromSmall(t *testing.T) {
	links := []linkPair{
		{from: 3, to: 1},
		{from: 1, to: 2},
		{from: 2, to: 9},
		{from: 1, to: 0},
	}
	require.NoError(t, sortLinksByFrom(links, 0))
	require.True(t, sort.SliceIsSorted(links, func(i, j int) bool { return links[i].from < links[j].from }))
	// Stable: the two from=1 entries keep their relative order.
	require.Equal(t, GID(2), links[0].to)
	require.Equal(t, GID(0), links[1].to)
}

func TestSortLinksByFromLargeChunked(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := chunkThreshold*2 + 137
	links := make([]linkPair, n)
	for i := range links {
		links[i] = linkPair{from: GID(rng.Intn(1000)), to: GID(i)}
	}
	require.NoError(t, sortLinksByFrom(links, 4))
	require.True(t, sort.SliceIsSorted(links, func(i, j int) bool { return links[i].from < links[j].from }))
	require.Len(t, links, n)
}

func TestSortKmerTuplesByKeyLargeChunked(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := chunkThreshold*2 + 41
	tuples := make([]kmerTuple, n)
	for i := range tuples {
		tuples[i] = kmerTuple{kmer: Kmer(rng.Intn(4096)), pos: int32(i)}
	}
	require.NoError(t, sortKmerTuplesByKey(tuples, 3))
	require.True(t, sort.SliceIsSorted(tuples, func(i, j int) bool { return tuples[i].kmer < tuples[j].kmer }))
	require.Len(t, tuples, n)
}

func TestSplitRanges(t *testing.T) {
	ranges := splitRanges(10, 3)
	require.Equal(t, [][2]int{{0, 4}, {4, 7}, {7, 10}}, ranges)

	ranges = splitRanges(2, 5)
	require.Len(t, ranges, 2)
}
