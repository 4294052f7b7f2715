// gref-build loads a GFA1 graph, builds a k-mer index over it, and answers
// exact-match queries read from stdin, one sequence per line, printing the
// matching (segment,orientation,pos) hits. See doc.go for the query format.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/gref"
	"github.com/grailbio/gref/encoding/fasta"
	"github.com/grailbio/gref/encoding/gfa"
	"github.com/pkg/profile"
)

var (
	gfaPath    = flag.String("gfa", "", "path to a GFA1 file describing the graph (mutually exclusive with -fasta)")
	gfaGzip    = flag.Bool("gfa-gzip", false, "treat -gfa's file as gzip-compressed (.gfa.gz)")
	fastaPath  = flag.String("fasta", "", "path to a FASTA file; each record becomes one unlinked segment (mutually exclusive with -gfa)")
	k          = flag.Int("k", gref.DefaultOpts.K, "k-mer length")
	iterOnly   = flag.Bool("iter-only", false, "build an iteration-only index (no hash bucket table, Match unavailable)")
	numThreads = flag.Int("num-threads", 0, "parallelism hint for the link and k-mer sorts (0: let the implementation decide)")
	cpuProfile = flag.Bool("cpuprofile", false, "profile the whole run (load, build and queries) and write a pprof cpu.pprof on exit")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	flag.Parse()
	if (*gfaPath == "") == (*fastaPath == "") {
		fmt.Fprintln(os.Stderr, "gref-build: exactly one of -gfa or -fasta is required")
		os.Exit(1)
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	var g *gref.Graph
	var err error
	if *gfaPath != "" {
		g, err = buildIndex(*gfaPath)
	} else {
		g, err = buildIndexFromFasta(*fastaPath)
	}
	if err != nil {
		log.Fatalf("gref-build: %v", err)
	}

	if err := serveQueries(g, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("gref-build: %v", err)
	}
}

// buildIndex reads path as GFA1 (optionally gzip-compressed, see -gfa-gzip)
// into a fresh Pool and drives it through Freeze and Build, returning the
// resulting Index.
func buildIndex(path string) (*gref.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := gref.DefaultOpts
	opts.K = *k
	opts.NumThreads = *numThreads
	if *iterOnly {
		opts.IndexMode = gref.IterOnlyIndexMode
	}

	g, err := gref.New(opts)
	if err != nil {
		return nil, err
	}
	if *gfaGzip {
		err = gfa.ReadGFAGzip(f, g)
	} else {
		err = gfa.ReadGFA(f, g)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("gref-build: loaded %d segments, %d bases", g.GetSectionCount(), g.GetTotalLen())
	if err := g.Freeze(); err != nil {
		return nil, err
	}
	if err := g.Build(); err != nil {
		return nil, err
	}
	log.Printf("gref-build: index built, k=%d", opts.K)
	return g, nil
}

// buildIndexFromFasta reads path as FASTA and appends one unlinked segment
// per record, named after the record's sequence name. It is meant for
// quick-and-dirty indexing of a collection of sequences that don't form a
// graph, as opposed to -gfa's linked segments.
func buildIndexFromFasta(path string) (*gref.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fa, err := fasta.New(f, fasta.OptClean)
	if err != nil {
		return nil, err
	}

	opts := gref.DefaultOpts
	opts.K = *k
	opts.NumThreads = *numThreads
	if *iterOnly {
		opts.IndexMode = gref.IterOnlyIndexMode
	}

	g, err := gref.New(opts)
	if err != nil {
		return nil, err
	}
	for _, name := range fa.SeqNames() {
		n, err := fa.Len(name)
		if err != nil {
			return nil, err
		}
		seq, err := fa.Get(name, 0, n)
		if err != nil {
			return nil, err
		}
		if _, err := g.AppendSegment([]byte(name), []byte(seq)); err != nil {
			return nil, err
		}
	}
	log.Printf("gref-build: loaded %d segments, %d bases from FASTA", g.GetSectionCount(), g.GetTotalLen())
	if err := g.Freeze(); err != nil {
		return nil, err
	}
	if err := g.Build(); err != nil {
		return nil, err
	}
	log.Printf("gref-build: index built, k=%d", opts.K)
	return g, nil
}

// serveQueries reads one sequence per line from r and writes its matches to
// w, one line per match, until EOF.
func serveQueries(g *gref.Graph, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		hits, err := g.Match(line)
		if err != nil {
			fmt.Fprintf(bw, "error: %v\n", err)
			continue
		}
		if len(hits) == 0 {
			fmt.Fprintln(bw, "no match")
			continue
		}
		for _, h := range hits {
			fmt.Fprintf(bw, "segment=%d orientation=%s pos=%d\n", h.Segment(), h.OrientationString(), h.Pos())
		}
	}
	return scanner.Err()
}
