package gref

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildDiamond constructs the S4 diamond graph: sec0="GG", sec1="A",
// sec2="T", sec3="CC", with sec0->sec1, sec0->sec2, sec1->sec3, sec2->sec3.
func buildDiamond(t *testing.T, opts Opts) *Graph {
	t.Helper()
	g, err := New(opts)
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec0"), []byte("GG"))
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec1"), []byte("A"))
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec2"), []byte("T"))
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec3"), []byte("CC"))
	require.NoError(t, err)
	require.NoError(t, g.AppendLink([]byte("sec0"), true, []byte("sec1"), true))
	require.NoError(t, g.AppendLink([]byte("sec0"), true, []byte("sec2"), true))
	require.NoError(t, g.AppendLink([]byte("sec1"), true, []byte("sec3"), true))
	require.NoError(t, g.AppendLink([]byte("sec2"), true, []byte("sec3"), true))
	return g
}

func TestFreezeSentinelAndEdges(t *testing.T) {
	g := buildDiamond(t, DefaultOpts)
	require.NoError(t, g.Freeze())
	require.Equal(t, Archive, g.State())

	sentinelID := g.sentinelID()
	require.Equal(t, uint32(4), sentinelID)
	require.True(t, g.sec[sentinelID].sentinel)

	fwd0 := g.forwardEdges(segmentGID(0))
	require.ElementsMatch(t, []GID{segmentGID(1), segmentGID(2)}, fwd0)

	fwd1 := g.forwardEdges(segmentGID(1))
	require.Equal(t, []GID{segmentGID(3)}, fwd1)

	// The dual of sec0->sec1 is sec1.Rev()->sec0.Rev().
	rev1 := g.forwardEdges(segmentGID(1).Rev())
	require.Equal(t, []GID{segmentGID(0).Rev()}, rev1)
	rev3 := g.forwardEdges(segmentGID(3).Rev())
	require.ElementsMatch(t, []GID{segmentGID(1).Rev(), segmentGID(2).Rev()}, rev3)
}

func TestMeltRoundTrip(t *testing.T) {
	g := buildDiamond(t, DefaultOpts)

	origLinks := append([]linkPair(nil), g.links...)
	require.NoError(t, g.Freeze())
	require.NoError(t, g.Melt())
	require.Equal(t, Pool, g.State())

	sortLinks := func(ls []linkPair) {
		sort.Slice(ls, func(i, j int) bool {
			if ls[i].from != ls[j].from {
				return ls[i].from < ls[j].from
			}
			return ls[i].to < ls[j].to
		})
	}
	sortLinks(origLinks)
	gotLinks := append([]linkPair(nil), g.links...)
	sortLinks(gotLinks)
	require.Equal(t, origLinks, gotLinks)
}
