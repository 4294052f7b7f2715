package gfa_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/gref"
	"github.com/grailbio/gref/encoding/gfa"
	"github.com/stretchr/testify/require"
)

const diamondGFA = `H	VN:Z:1.0
S	sec0	GG
S	sec1	A
S	sec2	T
S	sec3	CC
L	sec0	+	sec1	+	0M
L	sec0	+	sec2	+	0M
L	sec1	+	sec3	+	0M
L	sec2	+	sec3	+	0M
`

func TestReadGFABuildsGraph(t *testing.T) {
	opts := gref.DefaultOpts
	opts.K = 3
	g, err := gref.New(opts)
	require.NoError(t, err)

	require.NoError(t, gfa.ReadGFA(strings.NewReader(diamondGFA), g))
	require.Equal(t, 4, g.GetSectionCount())
	require.Equal(t, 6, g.GetTotalLen())

	require.NoError(t, g.Freeze())
	require.NoError(t, g.Build())

	hits, err := g.Match([]byte("GAC"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestReadGFARejectsUnknownRecord(t *testing.T) {
	opts := gref.DefaultOpts
	g, err := gref.New(opts)
	require.NoError(t, err)
	err = gfa.ReadGFA(strings.NewReader("X\tnonsense\n"), g)
	require.Error(t, err)
}

func TestWriteGFARoundTrip(t *testing.T) {
	opts := gref.DefaultOpts
	g, err := gref.New(opts)
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec0"), []byte("ACGT"))
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec1"), []byte("TTTT"))
	require.NoError(t, err)
	require.NoError(t, g.AppendLink([]byte("sec0"), true, []byte("sec1"), true))

	var buf bytes.Buffer
	require.NoError(t, gfa.WriteGFA(&buf, g))

	g2, err := gref.New(opts)
	require.NoError(t, err)
	require.NoError(t, gfa.ReadGFA(bytes.NewReader(buf.Bytes()), g2))
	require.Equal(t, g.GetSectionCount(), g2.GetSectionCount())
	require.Equal(t, g.GetTotalLen(), g2.GetTotalLen())

	var links [][2]string
	require.NoError(t, g2.EachUserLink(func(srcID uint32, srcFwd bool, dstID uint32, dstFwd bool) error {
		srcName, _ := g2.GetName(srcID)
		dstName, _ := g2.GetName(dstID)
		links = append(links, [2]string{string(srcName), string(dstName)})
		return nil
	}))
	require.Equal(t, [][2]string{{"sec0", "sec1"}}, links)
}

func TestGzipRoundTrip(t *testing.T) {
	opts := gref.DefaultOpts
	opts.K = 3
	g, err := gref.New(opts)
	require.NoError(t, err)
	_, err = g.AppendSegment([]byte("sec0"), []byte("ACGT"))
	require.NoError(t, err)

	var gz bytes.Buffer
	require.NoError(t, gfa.WriteGFAGzip(&gz, g))

	g2, err := gref.New(opts)
	require.NoError(t, err)
	require.NoError(t, gfa.ReadGFAGzip(bytes.NewReader(gz.Bytes()), g2))
	require.Equal(t, g.GetSectionCount(), g2.GetSectionCount())
	require.Equal(t, g.GetTotalLen(), g2.GetTotalLen())
}

func TestReadGFAGzipRejectsPlainText(t *testing.T) {
	opts := gref.DefaultOpts
	g, err := gref.New(opts)
	require.NoError(t, err)
	err = gfa.ReadGFAGzip(strings.NewReader(diamondGFA), g)
	require.Error(t, err)
}
