// gref-build is a thin driver over package gref: it loads a graph (from GFA1
// or from FASTA), freezes and builds a k-mer index, then answers queries.
// On-disk index persistence (DumpIndex/LoadIndex) is out of scope, so every
// run rebuilds the index from its source file.
//
//	gref-build -gfa graph.gfa -k 16 < queries.txt
//	gref-build -gfa graph.gfa.gz -gfa-gzip -k 16 < queries.txt
//	gref-build -fasta sequences.fa -k 16 < queries.txt
//
// -fasta treats each FASTA record as an unlinked segment, for indexing a
// plain collection of sequences rather than an assembly graph.
//
// Each line of stdin is treated as a raw nucleotide sequence to match
// against the index; for each line, one "segment=... orientation=...
// pos=..." line is printed per hit, or "no match" if the k-mer isn't
// present.
package main
