package gref

import (
	"encoding/binary"
	"io"

	farm "github.com/dgryski/go-farm"
	"github.com/golang/snappy"
)

// DumpIndex is declared by the public facade but not implemented -- on-disk
// index serialization is an explicit package Non-goal. See DumpSequenceDebug
// for the one supported debug-only dump format.
func DumpIndex(w io.Writer, g *Graph) error {
	return notSupported("DumpIndex is not supported")
}

// LoadIndex is declared by the public facade but not implemented, same as
// DumpIndex.
func LoadIndex(r io.Reader, opts Opts) (*Graph, error) {
	return nil, notSupported("LoadIndex is not supported")
}

// debugDumpMagic identifies a gref sequence debug dump.
const debugDumpMagic = 0x67726566 // "gref"

// DumpSequenceDebug writes g's packed sequence buffer (and nothing else --
// no links, no k-mer table) to w as a snappy-compressed block guarded by a
// farm.Hash64 checksum, grounded in fusion/kmer_index.go's use of the same
// hash for kmer lookups. It exists purely to let tooling inspect or diff a
// graph's raw bases across runs; the block it writes cannot reconstruct an
// Archive or Index, so it is not a substitute for the unsupported
// DumpIndex/LoadIndex pair above.
func DumpSequenceDebug(w io.Writer, g *Graph) error {
	if g.state == Pool {
		return invalidState("DumpSequenceDebug", g.state, Archive)
	}
	seqBytes := g.seq.packed
	checksum := farm.Hash64(seqBytes)
	compressed := snappy.Encode(nil, seqBytes)

	if err := binary.Write(w, binary.LittleEndian, uint32(debugDumpMagic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(g.seq.nBases)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, checksum); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(compressed))); err != nil {
		return err
	}
	_, err := w.Write(compressed)
	return err
}

// LoadSequenceDebug reads back a stream written by DumpSequenceDebug,
// returning the packed sequence bytes and the total base count.
func LoadSequenceDebug(r io.Reader) (packed []byte, nBases int, err error) {
	var magic, n, compressedLen uint32
	var checksum uint64
	if err = binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return
	}
	if magic != debugDumpMagic {
		err = badParam("LoadSequenceDebug: bad magic", magic)
		return
	}
	if err = binary.Read(r, binary.LittleEndian, &n); err != nil {
		return
	}
	if err = binary.Read(r, binary.LittleEndian, &checksum); err != nil {
		return
	}
	if err = binary.Read(r, binary.LittleEndian, &compressedLen); err != nil {
		return
	}
	compressed := make([]byte, compressedLen)
	if _, err = io.ReadFull(r, compressed); err != nil {
		return
	}
	packed, err = snappy.Decode(nil, compressed)
	if err != nil {
		err = badParam("LoadSequenceDebug: corrupt block", err)
		return
	}
	if farm.Hash64(packed) != checksum {
		err = badParam("LoadSequenceDebug: checksum mismatch")
		return
	}
	nBases = int(n)
	return
}
