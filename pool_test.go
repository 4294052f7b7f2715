package gref

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendSegmentAndLink(t *testing.T) {
	g, err := New(DefaultOpts)
	require.NoError(t, err)
	require.Equal(t, Pool, g.State())

	id0, err := g.AppendSegment([]byte("sec0"), []byte("ACGT"))
	require.NoError(t, err)
	require.Equal(t, uint32(0), id0)

	id1, err := g.AppendSegment([]byte("sec1"), []byte("CCC"))
	require.NoError(t, err)
	require.Equal(t, uint32(1), id1)

	require.NoError(t, g.AppendLink([]byte("sec0"), true, []byte("sec1"), true))
	require.Equal(t, 2, g.GetSectionCount())
	require.Equal(t, 7, g.GetTotalLen())

	name, err := g.GetName(0)
	require.NoError(t, err)
	require.Equal(t, "sec0", string(name))
}

func TestAppendLinkBeforeSegment(t *testing.T) {
	// AppendLink may introduce a name before its AppendSegment call arrives;
	// the section record is pre-allocated and filled in later.
	g, err := New(DefaultOpts)
	require.NoError(t, err)

	require.NoError(t, g.AppendLink([]byte("a"), true, []byte("b"), true))
	_, err = g.AppendSegment([]byte("a"), []byte("AAA"))
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("b"), []byte("TTT"))
	require.NoError(t, err)

	seq, err := g.ReadASCII(0)
	require.NoError(t, err)
	require.Equal(t, "AAA", string(seq))
}

func TestWrongStateRejected(t *testing.T) {
	g, err := New(DefaultOpts)
	require.NoError(t, err)

	_, err = g.Match([]byte("ACGT"))
	require.Error(t, err)

	_, err = g.AppendSegment([]byte("sec0"), []byte("ACGT"))
	require.NoError(t, err)
	require.NoError(t, g.Freeze())

	// AppendSegment is a Pool-only operation.
	_, err = g.AppendSegment([]byte("sec1"), []byte("TTTT"))
	require.Error(t, err)
}

func TestOptsValidation(t *testing.T) {
	bad := DefaultOpts
	bad.K = 0
	_, err := New(bad)
	require.Error(t, err)

	bad = DefaultOpts
	bad.K = 33
	_, err = New(bad)
	require.Error(t, err)

	bad = DefaultOpts
	bad.SeqFormat = ASCIIFormat
	bad.CopyMode = NoCopy
	_, err = New(bad)
	require.Error(t, err)
}

func TestClean(t *testing.T) {
	g, err := New(DefaultOpts)
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec0"), []byte("ACGT"))
	require.NoError(t, err)
	g.Clean()
	require.Equal(t, Pool, g.State())
	require.Equal(t, 0, g.GetSectionCount())
}
