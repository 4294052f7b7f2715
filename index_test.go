package gref

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildS1(t *testing.T, opts Opts) *Graph {
	t.Helper()
	g, err := New(opts)
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec0"), []byte("ACGT"))
	require.NoError(t, err)
	require.NoError(t, g.Freeze())
	require.NoError(t, g.Build())
	return g
}

func TestBuildAndMatchS1(t *testing.T) {
	opts := DefaultOpts
	opts.K = 3
	g := buildS1(t, opts)
	require.Equal(t, Index, g.State())

	hits, err := g.Match([]byte("ACG"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, uint32(0), hits[0].Segment())
	require.Equal(t, 0, hits[0].Pos())
	require.Equal(t, "+", hits[0].OrientationString())

	hits, err = g.Match([]byte("CGT"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, 1, hits[0].Pos())

	hits, err = g.Match([]byte("GTA"))
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestMatchRejectsShortQuery(t *testing.T) {
	opts := DefaultOpts
	opts.K = 3
	g := buildS1(t, opts)
	_, err := g.Match([]byte("AC"))
	require.Error(t, err)
}

func TestIterOnlyIndexModeDisablesMatch(t *testing.T) {
	opts := DefaultOpts
	opts.K = 3
	opts.IndexMode = IterOnlyIndexMode
	g := buildS1(t, opts)
	require.Equal(t, Index, g.State())
	require.Nil(t, g.kmerBucket)
	require.NotEmpty(t, g.kmerTable)

	_, err := g.Match([]byte("ACG"))
	require.Error(t, err)
}

func TestDisableReturnsToArchive(t *testing.T) {
	opts := DefaultOpts
	opts.K = 3
	g := buildS1(t, opts)
	require.NoError(t, g.Disable())
	require.Equal(t, Archive, g.State())
	require.Nil(t, g.kmerBucket)
	require.Nil(t, g.kmerTable)

	_, err := g.Match([]byte("ACG"))
	require.Error(t, err)
}

func TestBuildDiamondGraphMatch(t *testing.T) {
	opts := DefaultOpts
	opts.K = 3
	g := buildDiamond(t, opts)
	require.NoError(t, g.Freeze())
	require.NoError(t, g.Build())

	for _, seq := range []string{"GAC", "GTC"} {
		hits, err := g.Match([]byte(seq))
		require.NoError(t, err)
		require.Len(t, hits, 1, "seq=%s", seq)
		require.Equal(t, uint32(0), hits[0].Segment())
		require.Equal(t, 1, hits[0].Pos())
	}
}
