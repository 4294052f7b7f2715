// Package gfa reads and writes the GFA1 interchange format into a Pool
// (github.com/grailbio/gref). This covers graph *input* only: segments (S
// lines) map onto AppendSegment, links (L lines) onto AppendLink. Index
// persistence (DumpIndex/LoadIndex) is a separate, unsupported concern --
// see the root package's DESIGN.md.
//
// Only the subset of GFA1 this project's graph model can represent is
// parsed: H (header) lines are skipped, S and L lines are handled, and any
// other record type is rejected rather than silently dropped, matching
// encoding/fasta's posture of failing loudly on malformed input rather than
// guessing.
package gfa

import (
	"bufio"
	"io"
	"strings"

	"github.com/grailbio/gref"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ReadGFA parses r as GFA1 and populates pool via AppendSegment/AppendLink.
// pool must be in Pool state.
func ReadGFA(r io.Reader, pool *gref.Graph) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 64*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "H":
			continue
		case "S":
			if len(fields) < 3 {
				return errors.Errorf("gfa:%d: malformed S line: %q", lineNo, line)
			}
			if _, err := pool.AppendSegment([]byte(fields[1]), []byte(fields[2])); err != nil {
				return errors.Wrapf(err, "gfa:%d: AppendSegment", lineNo)
			}
		case "L":
			if len(fields) < 5 {
				return errors.Errorf("gfa:%d: malformed L line: %q", lineNo, line)
			}
			srcFwd, err := parseOrient(fields[2])
			if err != nil {
				return errors.Wrapf(err, "gfa:%d", lineNo)
			}
			dstFwd, err := parseOrient(fields[4])
			if err != nil {
				return errors.Wrapf(err, "gfa:%d", lineNo)
			}
			if err := pool.AppendLink([]byte(fields[1]), srcFwd, []byte(fields[3]), dstFwd); err != nil {
				return errors.Wrapf(err, "gfa:%d: AppendLink", lineNo)
			}
		default:
			return errors.Errorf("gfa:%d: unsupported record type %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "gfa: couldn't read GFA data")
	}
	return nil
}

// ReadGFAGzip is ReadGFA for a gzip-compressed GFA1 stream, for the .gfa.gz
// files most assemblers emit, grounded in cmd/bio-bam-gindex's gzip index
// writing idiom applied here to graph input rather than index persistence.
func ReadGFAGzip(r io.Reader, pool *gref.Graph) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrap(err, "gfa: not a gzip stream")
	}
	defer gz.Close()
	return ReadGFA(gz, pool)
}

func parseOrient(s string) (forward bool, err error) {
	switch s {
	case "+":
		return true, nil
	case "-":
		return false, nil
	default:
		return false, errors.Errorf("invalid orientation %q", s)
	}
}

// WriteGFA renders pool (a Pool-state Graph) as GFA1: one H line, one S
// line per segment, and one L line per user-supplied link. Since the
// Graph no longer distinguishes a user link from its synthesized dual once
// both are in the link list, WriteGFA must be called before Freeze --
// after Freeze the distinction is gone and melt's round-trip no longer
// carries "which half was user-supplied".
func WriteGFA(w io.Writer, pool *gref.Graph) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("H\tVN:Z:1.0\n"); err != nil {
		return errors.Wrap(err, "gfa: write header")
	}
	n := pool.GetSectionCount()
	for id := uint32(0); id < uint32(n); id++ {
		name, err := pool.GetName(id)
		if err != nil {
			return errors.Wrap(err, "gfa: GetName")
		}
		seq, err := pool.ReadASCII(id)
		if err != nil {
			return errors.Wrap(err, "gfa: ReadASCII")
		}
		if _, err := bw.WriteString("S\t" + string(name) + "\t" + string(seq) + "\n"); err != nil {
			return errors.Wrap(err, "gfa: write segment")
		}
	}

	writeErr := pool.EachUserLink(func(srcID uint32, srcFwd bool, dstID uint32, dstFwd bool) error {
		srcName, err := pool.GetName(srcID)
		if err != nil {
			return err
		}
		dstName, err := pool.GetName(dstID)
		if err != nil {
			return err
		}
		_, err = bw.WriteString("L\t" + string(srcName) + "\t" + orientString(srcFwd) + "\t" +
			string(dstName) + "\t" + orientString(dstFwd) + "\t0M\n")
		return err
	})
	if writeErr != nil {
		return errors.Wrap(writeErr, "gfa: write link")
	}
	return bw.Flush()
}

// WriteGFAGzip is WriteGFA writing a gzip-compressed stream.
func WriteGFAGzip(w io.Writer, pool *gref.Graph) error {
	gz := gzip.NewWriter(w)
	if err := WriteGFA(gz, pool); err != nil {
		return err
	}
	return gz.Close()
}

func orientString(forward bool) string {
	if forward {
		return "+"
	}
	return "-"
}
