package gref

import "github.com/grailbio/gref/seqcode"

// Kmer is an unambiguous k-mer packed 2 bits/base, little-endian: base 0
// (the first base encountered by the walk) occupies the low 2 bits. Only
// unambiguous bases (A,C,G,T) are representable; the walker emits a window
// containing an ambiguity code as one Kmer per concrete A/C/G/T expansion.
type Kmer uint64

// kmerMask returns the bitmask covering exactly k packed bases.
func kmerMask(k int) uint64 {
	if k >= 32 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(2*k)) - 1
}

// setKmerBase writes a 2-bit base code at window position i (0 = the
// earliest base fetched), per the little-endian packing in the data model:
// position i occupies bits 2i..2i+1. Unlike a rolling hash, a window being
// built by the walker never needs to shift previously-written bits -- each
// base's final position is known as soon as it's fetched.
func setKmerBase(word Kmer, i int, base byte) Kmer {
	return word | Kmer(uint64(base&3)<<uint(2*i))
}

// packTwoBitKmer encodes the first k ASCII bytes of seq into a Kmer via the
// 2-bit IUPAC table: unrecognized bytes, including ambiguity codes, map to
// A (spec.md §4.4 -- "behaviour preservation, not validation").
func packTwoBitKmer(seq []byte, k int) Kmer {
	var w uint64
	for i := k - 1; i >= 0; i-- {
		w = w<<2 | uint64(seqcode.ASCIIToTwoBit(seq[i]))
	}
	return Kmer(w)
}

// kmerTuple is one emission from the walker before Build sorts and
// compacts the table: the packed kmer key plus the (gid,pos) it occurred
// at. pos is the 0-based offset of the kmer's first base within gid's
// segment, in gid's own orientation.
type kmerTuple struct {
	kmer Kmer
	gid  GID
	pos  int32
}
